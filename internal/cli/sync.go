package cli

import (
	"errors"
	"fmt"

	"github.com/healix-app/healix-go/internal/service"
	"github.com/spf13/cobra"
)

func newSyncCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull the backend's view of the profile into the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Synchronizer.Sync(cmd.Context())
			if errors.Is(err, service.ErrNoSession) {
				return fmt.Errorf("no session and no local profile; run healix login or healix register")
			}
			if err != nil {
				return err
			}
			fmt.Printf("Synced. %d medications, %d prescriptions, %d reports.\n",
				len(user.Medications), len(user.Prescriptions), len(user.Reports))
			if user.LastSync != "" {
				fmt.Printf("Last sync: %s\n", user.LastSync)
			}
			return nil
		},
	}
}
