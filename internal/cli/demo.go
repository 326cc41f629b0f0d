package cli

import (
	"fmt"

	"github.com/healix-app/healix-go/pkg/model"
	"github.com/spf13/cobra"
)

func newDemoCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Seed the local store with a sample profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := app.Store.LoadUser(cmd.Context()); ok {
				return fmt.Errorf("a profile is already stored; run healix logout first")
			}
			user := model.SampleUser()
			if err := app.Store.SaveUser(cmd.Context(), user); err != nil {
				return err
			}
			fmt.Printf("Seeded demo profile for %s.\n", user.Name)
			return nil
		},
	}
}
