package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [question]",
		Short: "Ask the assistant about the stored profile",
		Long:  "With a question argument, answers once and exits. Without one, starts an interactive session; exit with \"quit\" or Ctrl-D.",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, _ := app.Store.LoadUser(cmd.Context())

			if len(args) > 0 {
				fmt.Println(app.Assistant.Reply(user, strings.Join(args, " ")))
				return nil
			}

			fmt.Println("Ask about your medications, reports, allergies, or BMI. Type \"quit\" to leave.")
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "quit" || line == "exit" {
					break
				}
				if cmd.Context().Err() != nil {
					return cmd.Context().Err()
				}
				fmt.Println(app.Assistant.Reply(user, line))
			}
			return scanner.Err()
		},
	}
}
