package cli

import (
	"fmt"
	"strings"

	"github.com/healix-app/healix-go/pkg/model"
)

// formatProfile renders the profile summary shown by whoami
func formatProfile(user *model.UserData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", user.Name)
	if user.Age > 0 {
		fmt.Fprintf(&b, "  Age:         %d\n", user.Age)
	}
	if user.Gender != "" {
		fmt.Fprintf(&b, "  Gender:      %s\n", user.Gender)
	}
	if user.BloodGroup != "" {
		fmt.Fprintf(&b, "  Blood group: %s\n", user.BloodGroup)
	}
	if user.HeightCm > 0 {
		fmt.Fprintf(&b, "  Height:      %.1f cm\n", user.HeightCm)
	}
	if user.WeightKg > 0 {
		fmt.Fprintf(&b, "  Weight:      %.1f kg\n", user.WeightKg)
	}
	if user.BMI > 0 {
		fmt.Fprintf(&b, "  BMI:         %.2f\n", user.BMI)
	}
	if len(user.Allergies) > 0 {
		fmt.Fprintf(&b, "  Allergies:   %s\n", strings.Join(user.Allergies, ", "))
	}
	if len(user.Conditions) > 0 {
		fmt.Fprintf(&b, "  Conditions:  %s\n", strings.Join(user.Conditions, ", "))
	}
	fmt.Fprintf(&b, "  Records:     %d medications, %d prescriptions, %d reports, %d reminders\n",
		len(user.Medications), len(user.Prescriptions), len(user.Reports), len(user.Reminders))
	if user.LastSync != "" {
		fmt.Fprintf(&b, "  Last sync:   %s\n", user.LastSync)
	}
	return b.String()
}
