package service

import (
	"context"
	"testing"

	"github.com/healix-app/healix-go/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProfileService(t *testing.T) (*ProfileService, *syncFixture) {
	t.Helper()
	f := newSyncFixture(t)
	return NewProfileService(f.store, f.client, zap.NewNop()), f
}

func TestAddMedication_Validation(t *testing.T) {
	p, _ := newProfileService(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		medication  *model.Medication
		expectedErr string
	}{
		{
			name:        "missing name",
			medication:  &model.Medication{FrequencyPerDay: 1, DurationDays: 5, StartDate: "2025-10-01"},
			expectedErr: "medication name is required",
		},
		{
			name:        "zero frequency",
			medication:  &model.Medication{Name: "Metformin", DurationDays: 5, StartDate: "2025-10-01"},
			expectedErr: "frequency per day must be at least 1",
		},
		{
			name:        "zero duration",
			medication:  &model.Medication{Name: "Metformin", FrequencyPerDay: 1, StartDate: "2025-10-01"},
			expectedErr: "duration days must be at least 1",
		},
		{
			name:        "bad start date",
			medication:  &model.Medication{Name: "Metformin", FrequencyPerDay: 1, DurationDays: 5, StartDate: "01/10/2025"},
			expectedErr: "start date must be YYYY-MM-DD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.AddMedication(ctx, tt.medication)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestAddMedication_Offline_AssignsLocalID(t *testing.T) {
	p, _ := newProfileService(t)
	ctx := context.Background()

	user, err := p.AddMedication(ctx, &model.Medication{
		Name:            "Metformin",
		FrequencyPerDay: 2,
		Times:           []string{"08:00", "20:00"},
		DurationDays:    30,
		StartDate:       "2025-10-01",
	})
	require.NoError(t, err)
	require.Len(t, user.Medications, 1)

	med := user.Medications[0]
	assert.NotEmpty(t, med.ID)
	assert.Equal(t, "2025-10-31", med.EndDate, "end date derived from start plus duration")
	assert.Equal(t, model.MedicationStatusActive, med.Status)
	assert.Equal(t, model.MedicationSourceManualAdd, med.Source)
}

func TestAddMedication_Online_UsesBackendID(t *testing.T) {
	p, f := newProfileService(t)
	ctx := context.Background()
	f.login(t)

	user, err := p.AddMedication(ctx, &model.Medication{
		Name:            "Metformin",
		FrequencyPerDay: 2,
		DurationDays:    30,
		StartDate:       "2025-10-01",
	})
	require.NoError(t, err)
	require.Len(t, user.Medications, 1)
	require.Len(t, f.backend.Medications, 1)
	assert.Equal(t, f.backend.Medications[0].ID, user.Medications[0].ID)
}

func TestDeleteMedication_ByIDAndByIndex(t *testing.T) {
	p, f := newProfileService(t)
	ctx := context.Background()

	require.NoError(t, f.store.SaveUser(ctx, &model.UserData{
		Name: "A",
		Medications: []model.Medication{
			{ID: "m1", Name: "A"},
			{Name: "B"}, // local-only, no backend id
			{ID: "m3", Name: "C"},
		},
	}))

	user, err := p.DeleteMedication(ctx, "m1", -1)
	require.NoError(t, err)
	require.Len(t, user.Medications, 2)
	assert.Equal(t, "B", user.Medications[0].Name)

	user, err = p.DeleteMedication(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, user.Medications, 1)
	assert.Equal(t, "C", user.Medications[0].Name)

	// Out-of-range index is a no-op.
	user, err = p.DeleteMedication(ctx, "", 5)
	require.NoError(t, err)
	assert.Len(t, user.Medications, 1)
}

func TestAddPrescription_LinksMedicationsByID(t *testing.T) {
	p, _ := newProfileService(t)
	ctx := context.Background()

	user, err := p.AddPrescription(ctx,
		&model.Prescription{Doctor: "Dr. Mehta", Date: "2025-10-12"},
		[]model.Medication{
			{Name: "Metformin", FrequencyPerDay: 2, DurationDays: 30, StartDate: "2025-10-12"},
			{Name: "Paracetamol", FrequencyPerDay: 3, DurationDays: 5, StartDate: "2025-10-12"},
		},
	)
	require.NoError(t, err)

	require.Len(t, user.Prescriptions, 1)
	rx := user.Prescriptions[0]
	assert.NotEmpty(t, rx.ID)
	assert.Equal(t, 2, rx.MedicineCount)

	require.Len(t, user.Medications, 2)
	for _, med := range user.Medications {
		assert.Equal(t, rx.ID, med.PrescriptionID, "association is an explicit id, not list position")
		assert.Equal(t, model.MedicationSourcePrescriptionScan, med.Source)
	}
}

func TestDeletePrescription_RemovesLinkedMedications(t *testing.T) {
	p, _ := newProfileService(t)
	ctx := context.Background()

	user, err := p.AddPrescription(ctx,
		&model.Prescription{Doctor: "Dr. Mehta", Date: "2025-10-12"},
		[]model.Medication{{Name: "Metformin", FrequencyPerDay: 2, DurationDays: 30, StartDate: "2025-10-12"}},
	)
	require.NoError(t, err)
	rxID := user.Prescriptions[0].ID

	// A standalone medication must survive the prescription delete.
	_, err = p.AddMedication(ctx, &model.Medication{Name: "Vitamin D3", FrequencyPerDay: 1, DurationDays: 60, StartDate: "2025-10-01"})
	require.NoError(t, err)

	user, err = p.DeletePrescription(ctx, rxID)
	require.NoError(t, err)
	assert.Empty(t, user.Prescriptions)
	require.Len(t, user.Medications, 1)
	assert.Equal(t, "Vitamin D3", user.Medications[0].Name)
}

func TestAddReport_DerivesValuesFromSummary(t *testing.T) {
	p, _ := newProfileService(t)
	ctx := context.Background()

	user, err := p.AddReport(ctx, &model.Report{
		Name:    "CBC",
		Date:    "2025-10-10",
		Summary: "Hemoglobin: 13.8 g/dL; WBC: 6.5 x10^3/uL",
	})
	require.NoError(t, err)
	require.Len(t, user.Reports, 1)
	require.Len(t, user.Reports[0].Values, 2)
	assert.Equal(t, "Hemoglobin", user.Reports[0].Values[0].Name)
}

func TestMarkReminderDone(t *testing.T) {
	p, f := newProfileService(t)
	ctx := context.Background()

	require.NoError(t, f.store.SaveUser(ctx, &model.UserData{
		Name: "A",
		Reminders: []model.Reminder{
			{ID: "rem-1", Type: model.ReminderTypeMedication, Message: "Take Paracetamol", Time: "8:00 PM"},
			{ID: "rem-2", Type: model.ReminderTypeTest, Message: "Fasting glucose", Time: "7:00 AM"},
		},
	}))

	user, err := p.MarkReminderDone(ctx, "rem-1")
	require.NoError(t, err)
	assert.True(t, user.Reminders[0].Done)
	assert.False(t, user.Reminders[1].Done)
}

func TestUpdateVitals_RecomputesBMI(t *testing.T) {
	p, f := newProfileService(t)
	ctx := context.Background()

	require.NoError(t, f.store.SaveUser(ctx, &model.UserData{Name: "A"}))

	user, err := p.UpdateVitals(ctx, 172, 68)
	require.NoError(t, err)
	assert.InDelta(t, 22.99, user.BMI, 0.001)

	_, err = p.UpdateVitals(ctx, -1, 68)
	assert.Error(t, err)
}
