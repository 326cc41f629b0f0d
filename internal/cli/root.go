// Package cli defines the healix command tree. Commands talk to the
// services, print plain text, and inherit a signal-bound context from
// main so Ctrl-C cancels any in-flight request.
package cli

import (
	"github.com/healix-app/healix-go/internal/api"
	"github.com/healix-app/healix-go/internal/config"
	"github.com/healix-app/healix-go/internal/service"
	"github.com/healix-app/healix-go/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App bundles the wired components every command reaches for
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	Store        *store.Store
	Client       *api.Client
	Synchronizer *service.Synchronizer
	Profile      *service.ProfileService
	Assistant    *service.Assistant
}

// NewRootCommand builds the healix command tree
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "healix",
		Short:         "Healix health-record client",
		Long:          "Command-line client for the Healix record-keeping service: profile, medications, prescriptions, reports, and reminders.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRegisterCommand(app),
		newLoginCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
		newSyncCommand(app),
		newMedCommand(app),
		newRxCommand(app),
		newReportCommand(app),
		newRemindCommand(app),
		newVitalsCommand(app),
		newChatCommand(app),
		newDemoCommand(app),
	)
	return root
}
