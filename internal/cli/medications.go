package cli

import (
	"fmt"
	"strings"

	"github.com/healix-app/healix-go/pkg/model"
	"github.com/spf13/cobra"
)

func newMedCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "med",
		Short: "Manage medications",
	}
	cmd.AddCommand(
		newMedAddCommand(app),
		newMedListCommand(app),
		newMedRemoveCommand(app),
	)
	return cmd
}

func newMedAddCommand(app *App) *cobra.Command {
	var med model.Medication
	var times []string
	var form string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a medication",
		RunE: func(cmd *cobra.Command, args []string) error {
			med.Times = times
			med.Form = model.MedicationForm(form)
			user, err := app.Profile.AddMedication(cmd.Context(), &med)
			if err != nil {
				return err
			}
			added := user.Medications[len(user.Medications)-1]
			fmt.Printf("Added %s (%s to %s).\n", added.Name, added.StartDate, added.EndDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&med.Name, "name", "", "medication name")
	cmd.Flags().StringVar(&med.BrandName, "brand", "", "brand name")
	cmd.Flags().StringVar(&form, "form", "", "tablet, syrup, capsule, or injection")
	cmd.Flags().StringVar(&med.Strength, "strength", "", "strength, e.g. 500mg")
	cmd.Flags().StringVar(&med.Dosage, "dosage", "", "dosage, e.g. 1 tablet")
	cmd.Flags().IntVar(&med.FrequencyPerDay, "freq", 1, "doses per day")
	cmd.Flags().StringSliceVar(&times, "times", nil, "dose times, e.g. 08:00,20:00")
	cmd.Flags().IntVar(&med.DurationDays, "duration", 1, "course length in days")
	cmd.Flags().StringVar(&med.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&med.Instructions, "instructions", "", "intake instructions")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("start")
	return cmd
}

func newMedListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List medications",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := app.Store.LoadUser(cmd.Context())
			if !ok {
				return fmt.Errorf("no profile stored")
			}
			if len(user.Medications) == 0 {
				fmt.Println("No medications.")
				return nil
			}
			for i, med := range user.Medications {
				line := fmt.Sprintf("%d. %s", i+1, med.Name)
				if med.Strength != "" {
					line += " " + med.Strength
				}
				line += fmt.Sprintf("  %dx/day", med.FrequencyPerDay)
				if len(med.Times) > 0 {
					line += " at " + strings.Join(med.Times, ", ")
				}
				line += fmt.Sprintf("  %s to %s  [%s]", med.StartDate, med.EndDate, med.Status)
				if med.ID != "" {
					line += "  id=" + med.ID
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newMedRemoveCommand(app *App) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a medication by id or --index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) == 1 {
				id = args[0]
			}
			if id == "" && index < 1 {
				return fmt.Errorf("pass a medication id or --index")
			}
			if _, err := app.Profile.DeleteMedication(cmd.Context(), id, index-1); err != nil {
				return err
			}
			fmt.Println("Removed.")
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "1-based position from healix med list")
	return cmd
}
