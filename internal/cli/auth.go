package cli

import (
	"fmt"

	"github.com/healix-app/healix-go/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRegisterCommand(app *App) *cobra.Command {
	var basics service.Basics
	var details service.Details

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and the initial local profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			flow := service.NewRegistrationFlow(app.Store, app.Client, app.Logger)
			if err := flow.SetBasics(basics); err != nil {
				return err
			}
			if err := flow.SetDetails(details); err != nil {
				return err
			}
			user, err := flow.Complete(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Welcome to Healix, %s! Your account has been created.\n", user.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&basics.Name, "name", "", "full name")
	cmd.Flags().StringVar(&basics.Email, "email", "", "email address")
	cmd.Flags().StringVar(&basics.Password, "password", "", "password")
	cmd.Flags().StringVar(&details.DOB, "dob", "", "date of birth (YYYY-MM-DD)")
	cmd.Flags().StringVar(&details.Gender, "gender", "", "gender")
	cmd.Flags().StringVar(&details.BloodGroup, "blood-group", "", "blood group")
	cmd.Flags().StringVar(&details.HeightCm, "height", "", "height in cm")
	cmd.Flags().StringVar(&details.WeightKg, "weight", "", "weight in kg")
	cmd.Flags().StringVar(&details.Allergies, "allergies", "", "comma-separated allergies")
	cmd.Flags().StringVar(&details.KnownConditions, "conditions", "", "comma-separated known conditions")
	cmd.Flags().StringVar(&details.FoodTolerance, "food-tolerance", "", "food tolerance notes")
	cmd.Flags().StringVar(&details.Smoking, "smoking", "", "yes or no")
	cmd.Flags().StringVar(&details.Alcohol, "alcohol", "", "yes or no")
	cmd.Flags().StringVar(&details.PhysicalActivity, "activity", "", "low, moderate, or high")
	cmd.Flags().StringVar(&details.DietType, "diet", "", "veg, nonveg, or vegan")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCommand(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Client.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Println("Signed in.")

			user, err := app.Synchronizer.Sync(cmd.Context())
			if err != nil {
				app.Logger.Warn("initial sync failed", zap.Error(err))
				return nil
			}
			fmt.Printf("Synced profile for %s.\n", user.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the session tokens and local profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Client.Logout(cmd.Context())
			app.Store.ClearUser(cmd.Context())
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := app.Store.LoadUser(cmd.Context())
			if !ok {
				return fmt.Errorf("no profile stored; run healix login or healix register")
			}
			fmt.Printf("%s", formatProfile(user))
			return nil
		},
	}
}
