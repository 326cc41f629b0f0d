package cli

import (
	"fmt"

	"github.com/healix-app/healix-go/pkg/model"
	"github.com/spf13/cobra"
)

func newRemindCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Manage local reminders",
	}
	cmd.AddCommand(
		newRemindAddCommand(app),
		newRemindListCommand(app),
		newRemindDoneCommand(app),
	)
	return cmd
}

func newRemindAddCommand(app *App) *cobra.Command {
	var reminder model.Reminder
	var kind string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			reminder.Type = model.ReminderType(kind)
			user, err := app.Profile.AddReminder(cmd.Context(), &reminder)
			if err != nil {
				return err
			}
			added := user.Reminders[len(user.Reminders)-1]
			fmt.Printf("Reminder set: %s at %s (id=%s).\n", added.Message, added.Time, added.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&reminder.Message, "message", "", "what to remind about")
	cmd.Flags().StringVar(&reminder.Time, "time", "", "when, e.g. 08:00")
	cmd.Flags().StringVar(&kind, "type", "", "medication, appointment, or test")
	cmd.MarkFlagRequired("message")
	return cmd
}

func newRemindListCommand(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := app.Store.LoadUser(cmd.Context())
			if !ok {
				return fmt.Errorf("no profile stored")
			}
			shown := 0
			for i, r := range user.Reminders {
				if r.Done && !all {
					continue
				}
				status := " "
				if r.Done {
					status = "x"
				}
				fmt.Printf("%d. [%s] %s  %s  (%s)  id=%s\n", i+1, status, r.Time, r.Message, r.Type, r.ID)
				shown++
			}
			if shown == 0 {
				fmt.Println("No pending reminders.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include completed reminders")
	return cmd
}

func newRemindDoneCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a reminder as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Profile.MarkReminderDone(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Done.")
			return nil
		},
	}
}

func newVitalsCommand(app *App) *cobra.Command {
	var height, weight float64

	cmd := &cobra.Command{
		Use:   "vitals",
		Short: "Update height and weight; BMI is recomputed",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Profile.UpdateVitals(cmd.Context(), height, weight)
			if err != nil {
				return err
			}
			if user.BMI > 0 {
				fmt.Printf("Height %.1f cm, weight %.1f kg, BMI %.2f.\n", user.HeightCm, user.WeightKg, user.BMI)
			} else {
				fmt.Printf("Height %.1f cm, weight %.1f kg.\n", user.HeightCm, user.WeightKg)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&height, "height", 0, "height in cm")
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight in kg")
	return cmd
}
