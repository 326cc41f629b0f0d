package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/healix-app/healix-go/internal/api"
	"github.com/healix-app/healix-go/internal/store"
	"github.com/healix-app/healix-go/pkg/model"
	"go.uber.org/zap"
)

// Basics is the first registration step
type Basics struct {
	Name     string
	Email    string
	Password string
}

// Details is the second registration step. Numeric fields stay strings
// until final assembly, matching the form contract.
type Details struct {
	DOB              string
	Gender           string
	BloodGroup       string
	HeightCm         string
	WeightKg         string
	KnownConditions  string
	Allergies        string
	FoodTolerance    string
	Smoking          string
	Alcohol          string
	PhysicalActivity string
	DietType         string
}

// RegistrationFlow carries the two-step draft through the wizard. The
// draft lives on the flow value itself, so validation order is explicit
// in the call chain and nothing leaks past Complete or Reset.
type RegistrationFlow struct {
	store  *store.Store
	client *api.Client
	logger *zap.Logger

	basics  *Basics
	details *Details
}

// NewRegistrationFlow creates an empty RegistrationFlow
func NewRegistrationFlow(st *store.Store, client *api.Client, logger *zap.Logger) *RegistrationFlow {
	return &RegistrationFlow{store: st, client: client, logger: logger}
}

// SetBasics stages the first step
func (f *RegistrationFlow) SetBasics(b Basics) error {
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	if b.Email == "" {
		return fmt.Errorf("email is required")
	}
	if b.Password == "" {
		return fmt.Errorf("password is required")
	}
	f.basics = &b
	return nil
}

// SetDetails stages the second step
func (f *RegistrationFlow) SetDetails(d Details) error {
	if f.basics == nil {
		return fmt.Errorf("basics must be set first")
	}
	if d.DOB != "" {
		if _, err := time.Parse(model.DateLayout, d.DOB); err != nil {
			return fmt.Errorf("dob must be YYYY-MM-DD")
		}
	}
	f.details = &d
	return nil
}

// Complete registers the account, assembles the initial aggregate from
// the draft, persists it, and clears the draft.
func (f *RegistrationFlow) Complete(ctx context.Context) (*model.UserData, error) {
	if f.basics == nil || f.details == nil {
		return nil, fmt.Errorf("registration draft is incomplete")
	}
	basics, details := f.basics, f.details

	if _, err := f.client.Register(ctx, &api.RegisterRequest{
		FullName:         basics.Name,
		Email:            basics.Email,
		Password:         basics.Password,
		DOB:              details.DOB,
		Gender:           details.Gender,
		BloodGroup:       details.BloodGroup,
		HeightCm:         details.HeightCm,
		WeightKg:         details.WeightKg,
		KnownConditions:  details.KnownConditions,
		Allergies:        details.Allergies,
		FoodTolerance:    details.FoodTolerance,
		Smoking:          details.Smoking,
		Alcohol:          details.Alcohol,
		PhysicalActivity: details.PhysicalActivity,
		DietType:         details.DietType,
	}); err != nil {
		return nil, err
	}

	user := &model.UserData{
		Name:          basics.Name,
		Gender:        titleCase(details.Gender),
		BloodGroup:    details.BloodGroup,
		HeightCm:      parseFloat(details.HeightCm),
		WeightKg:      parseFloat(details.WeightKg),
		Allergies:     splitCommaList(details.Allergies),
		Conditions:    splitCommaList(details.KnownConditions),
		Medications:   []model.Medication{},
		Prescriptions: []model.Prescription{},
		Reports:       []model.Report{},
		Reminders:     []model.Reminder{},
		LastSync:      time.Now().UTC().Format(time.RFC3339),
	}
	if age, ok := model.AgeFromDOB(details.DOB, time.Now()); ok {
		user.Age = age
	}
	user.RecomputeBMI()

	if err := f.store.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	f.Reset()

	f.logger.Info("registration completed", zap.String("email", basics.Email))
	return user, nil
}

// Reset discards the staged draft
func (f *RegistrationFlow) Reset() {
	f.basics = nil
	f.details = nil
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
