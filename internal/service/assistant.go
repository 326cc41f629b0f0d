package service

import (
	"fmt"
	"strings"

	"github.com/healix-app/healix-go/pkg/model"
)

// assistantRule maps trigger keywords to a response built from the
// stored aggregate. Rules are evaluated in declaration order; the
// first match wins.
type assistantRule struct {
	keywords []string
	respond  func(u *model.UserData) string
}

// Assistant is the rule-based chat assistant. It answers only from the
// locally stored aggregate and never calls the backend.
type Assistant struct {
	rules []assistantRule
}

// NewAssistant creates an Assistant with the standard rule set
func NewAssistant() *Assistant {
	rules := []assistantRule{
		{
			keywords: []string{"bmi", "weight", "height"},
			respond: func(u *model.UserData) string {
				if u.BMI == 0 {
					return "I don't have your height and weight yet. Update your vitals and I can compute your BMI."
				}
				return fmt.Sprintf("Your BMI is %.2f (height %.0f cm, weight %.0f kg).", u.BMI, u.HeightCm, u.WeightKg)
			},
		},
		{
			keywords: []string{"medication", "medicine", "pill", "dose"},
			respond: func(u *model.UserData) string {
				var active []string
				for _, med := range u.Medications {
					if med.Status == model.MedicationStatusActive {
						active = append(active, fmt.Sprintf("%s at %s", med.Name, strings.Join(med.Times, ", ")))
					}
				}
				if len(active) == 0 {
					return "You have no active medications."
				}
				return "Your active medications: " + strings.Join(active, "; ") + "."
			},
		},
		{
			keywords: []string{"allergy", "allergies", "allergic"},
			respond: func(u *model.UserData) string {
				if len(u.Allergies) == 0 {
					return "No allergies are on record."
				}
				return "Recorded allergies: " + strings.Join(u.Allergies, ", ") + "."
			},
		},
		{
			keywords: []string{"condition", "diagnosis"},
			respond: func(u *model.UserData) string {
				if len(u.Conditions) == 0 {
					return "No conditions are on record."
				}
				return "Recorded conditions: " + strings.Join(u.Conditions, ", ") + "."
			},
		},
		{
			keywords: []string{"report", "lab", "test result"},
			respond: func(u *model.UserData) string {
				if len(u.Reports) == 0 {
					return "You have no reports yet."
				}
				latest := u.Reports[len(u.Reports)-1]
				return fmt.Sprintf("Your latest report is %q from %s: %s", latest.Name, latest.Date, latest.Summary)
			},
		},
		{
			keywords: []string{"remind", "reminder"},
			respond: func(u *model.UserData) string {
				var pending []string
				for _, r := range u.Reminders {
					if !r.Done {
						pending = append(pending, fmt.Sprintf("%s (%s)", r.Message, r.Time))
					}
				}
				if len(pending) == 0 {
					return "Nothing pending. All reminders are done."
				}
				return "Pending reminders: " + strings.Join(pending, "; ") + "."
			},
		},
		{
			keywords: []string{"sync", "update"},
			respond: func(u *model.UserData) string {
				if u.LastSync == "" {
					return "Your data has never been synced."
				}
				return "Last synced at " + u.LastSync + "."
			},
		},
		{
			keywords: []string{"hello", "hi", "hey"},
			respond: func(u *model.UserData) string {
				if u.Name != "" {
					return fmt.Sprintf("Hi %s! Ask me about your medications, reports, reminders, or BMI.", firstName(u.Name))
				}
				return "Hi! Ask me about your medications, reports, reminders, or BMI."
			},
		},
	}
	return &Assistant{rules: rules}
}

// Reply answers one chat message from the stored aggregate
func (a *Assistant) Reply(user *model.UserData, message string) string {
	if user == nil {
		return "I can't find your profile. Please sign in first."
	}
	lowered := strings.ToLower(message)
	for _, rule := range a.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.respond(user)
			}
		}
	}
	return "I can tell you about your medications, reports, reminders, allergies, conditions, or BMI."
}

func firstName(full string) string {
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}
