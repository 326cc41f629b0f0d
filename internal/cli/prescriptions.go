package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/healix-app/healix-go/pkg/model"
	"github.com/spf13/cobra"
)

func newRxCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rx",
		Short: "Manage prescriptions",
	}
	cmd.AddCommand(
		newRxAddCommand(app),
		newRxScanCommand(app),
		newRxListCommand(app),
		newRxRemoveCommand(app),
	)
	return cmd
}

func newRxAddCommand(app *App) *cobra.Command {
	var rx model.Prescription

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a prescription",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Profile.AddPrescription(cmd.Context(), &rx, nil)
			if err != nil {
				return err
			}
			added := user.Prescriptions[len(user.Prescriptions)-1]
			fmt.Printf("Recorded prescription by %s on %s.\n", added.Doctor, added.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&rx.Doctor, "doctor", "", "prescribing doctor")
	cmd.Flags().StringVar(&rx.Date, "date", "", "prescription date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("doctor")
	cmd.MarkFlagRequired("date")
	return cmd
}

func newRxScanCommand(app *App) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Upload a prescription image for OCR and store the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer file.Close()

			extracted, err := app.Client.UploadPrescription(cmd.Context(), filepath.Base(args[0]), file)
			if err != nil {
				return err
			}
			fmt.Printf("Extracted: doctor %s, date %s, %d medicines.\n",
				extracted.Doctor, extracted.Date, len(extracted.Medicines))

			rx := &model.Prescription{Doctor: extracted.Doctor, Date: extracted.Date}
			meds := make([]model.Medication, 0, len(extracted.Medicines))
			for _, m := range extracted.Medicines {
				meds = append(meds, model.Medication{
					Name:            m.Name,
					Strength:        m.Strength,
					Form:            model.MedicationForm(m.Form),
					Dosage:          m.Dosage,
					FrequencyPerDay: m.FrequencyPerDay,
					DurationDays:    m.DurationDays,
					Instructions:    m.Instructions,
					StartDate:       start,
					Source:          model.MedicationSourcePrescriptionScan,
				})
			}
			if _, err := app.Profile.AddPrescription(cmd.Context(), rx, meds); err != nil {
				return err
			}
			fmt.Println("Prescription stored.")
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date for the extracted medicines (YYYY-MM-DD)")
	return cmd
}

func newRxListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List prescriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := app.Store.LoadUser(cmd.Context())
			if !ok {
				return fmt.Errorf("no profile stored")
			}
			if len(user.Prescriptions) == 0 {
				fmt.Println("No prescriptions.")
				return nil
			}
			for i, rx := range user.Prescriptions {
				fmt.Printf("%d. %s  %s  %d medicines  id=%s\n",
					i+1, rx.Date, rx.Doctor, rx.MedicineCount, rx.ID)
			}
			return nil
		},
	}
}

func newRxRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a prescription and its linked medications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Profile.DeletePrescription(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Removed.")
			return nil
		},
	}
}
