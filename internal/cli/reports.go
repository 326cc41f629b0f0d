package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/healix-app/healix-go/pkg/model"
	"github.com/spf13/cobra"
)

func newReportCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Manage medical reports",
	}
	cmd.AddCommand(
		newReportAddCommand(app),
		newReportScanCommand(app),
		newReportListCommand(app),
		newReportValuesCommand(app),
		newReportRemoveCommand(app),
	)
	return cmd
}

func newReportAddCommand(app *App) *cobra.Command {
	var report model.Report

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a report; values are parsed from the summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Profile.AddReport(cmd.Context(), &report)
			if err != nil {
				return err
			}
			added := user.Reports[len(user.Reports)-1]
			fmt.Printf("Recorded %s (%d values parsed).\n", added.Name, len(added.Values))
			return nil
		},
	}

	cmd.Flags().StringVar(&report.Name, "name", "", "report name, e.g. \"CBC\"")
	cmd.Flags().StringVar(&report.Date, "date", "", "report date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&report.Summary, "summary", "", "summary text, fragments separated by ';'")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newReportScanCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <file>",
		Short: "Upload a report document for OCR and store the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer file.Close()

			report, err := app.Client.UploadReport(cmd.Context(), filepath.Base(args[0]), file)
			if err != nil {
				return err
			}
			if _, err := app.Profile.AddReport(cmd.Context(), report); err != nil {
				return err
			}
			fmt.Printf("Stored %s (%d values).\n", report.Name, len(report.Values))
			return nil
		},
	}
}

func newReportListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := app.Store.LoadUser(cmd.Context())
			if !ok {
				return fmt.Errorf("no profile stored")
			}
			if len(user.Reports) == 0 {
				fmt.Println("No reports.")
				return nil
			}
			for i, report := range user.Reports {
				fmt.Printf("%d. %s  %s  %d values  id=%s\n",
					i+1, report.Date, report.Name, len(report.Values), report.ID)
			}
			return nil
		},
	}
}

func newReportValuesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "values <id>",
		Short: "Show the measured values of one report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := app.Store.LoadUser(cmd.Context())
			if !ok {
				return fmt.Errorf("no profile stored")
			}
			for _, report := range user.Reports {
				if report.ID != args[0] {
					continue
				}
				fmt.Printf("%s (%s)\n", report.Name, report.Date)
				if report.Summary != "" {
					fmt.Println(report.Summary)
				}
				for _, v := range report.Values {
					line := fmt.Sprintf("  %s: %s", v.Name, v.Value)
					if v.Unit != "" {
						line += " " + v.Unit
					}
					if v.Ref != "" {
						line += "  (ref " + v.Ref + ")"
					}
					if v.Flag != "" && v.Flag != model.ValueFlagNormal {
						line += "  [" + string(v.Flag) + "]"
					}
					fmt.Println(line)
				}
				return nil
			}
			return fmt.Errorf("no report with id %s", args[0])
		},
	}
}

func newReportRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Profile.DeleteReport(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Removed.")
			return nil
		},
	}
}
