package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/healix-app/healix-go/internal/api"
	"github.com/healix-app/healix-go/internal/store"
	"github.com/healix-app/healix-go/pkg/model"
	"go.uber.org/zap"
)

// ProfileService applies screen-level mutations to the stored
// aggregate. Every operation is its own read-modify-write cycle; the
// backend push is best-effort and never blocks the local write.
type ProfileService struct {
	store  *store.Store
	client *api.Client
	logger *zap.Logger
}

// NewProfileService creates a ProfileService
func NewProfileService(st *store.Store, client *api.Client, logger *zap.Logger) *ProfileService {
	return &ProfileService{store: st, client: client, logger: logger}
}

// AddMedication validates and stores a medication, pushing it to the
// backend when a session exists. The end date is always derived from
// start and duration.
func (p *ProfileService) AddMedication(ctx context.Context, med *model.Medication) (*model.UserData, error) {
	if med.Name == "" {
		return nil, fmt.Errorf("medication name is required")
	}
	if med.FrequencyPerDay < 1 {
		return nil, fmt.Errorf("frequency per day must be at least 1")
	}
	if med.DurationDays < 1 {
		return nil, fmt.Errorf("duration days must be at least 1")
	}
	endDate, ok := model.MedicationEndDate(med.StartDate, med.DurationDays)
	if !ok {
		return nil, fmt.Errorf("start date must be YYYY-MM-DD")
	}
	med.EndDate = endDate

	if med.Status == "" {
		med.Status = model.MedicationStatusActive
	}
	if med.Source == "" {
		med.Source = model.MedicationSourceManualAdd
	}
	now := time.Now().UTC().Format(time.RFC3339)
	med.CreatedAt = now
	med.UpdatedAt = now

	stored := *med
	if p.client.Authenticated(ctx) {
		if created, err := p.client.CreateMedication(ctx, med); err != nil {
			p.logger.Warn("medication push failed, keeping local copy", zap.Error(err))
			stored.ID = uuid.New().String()
		} else {
			stored = *created
		}
	} else {
		stored.ID = uuid.New().String()
	}

	return p.store.UpdateUser(ctx, func(u *model.UserData) {
		u.Medications = append(u.Medications, stored)
	})
}

// DeleteMedication removes a medication by backend id when known,
// otherwise by local index.
func (p *ProfileService) DeleteMedication(ctx context.Context, id string, index int) (*model.UserData, error) {
	if id != "" && p.client.Authenticated(ctx) {
		if err := p.client.DeleteMedication(ctx, id); err != nil {
			p.logger.Warn("medication delete push failed", zap.String("id", id), zap.Error(err))
		}
	}

	return p.store.UpdateUser(ctx, func(u *model.UserData) {
		if id != "" {
			for i := range u.Medications {
				if u.Medications[i].ID == id {
					u.Medications = append(u.Medications[:i], u.Medications[i+1:]...)
					return
				}
			}
			return
		}
		if index >= 0 && index < len(u.Medications) {
			u.Medications = append(u.Medications[:index], u.Medications[index+1:]...)
		}
	})
}

// AddPrescription stores a prescription with its medications. Attached
// medications carry the prescription's id so the association survives
// reordering.
func (p *ProfileService) AddPrescription(ctx context.Context, rx *model.Prescription, meds []model.Medication) (*model.UserData, error) {
	if rx.Doctor == "" {
		return nil, fmt.Errorf("doctor is required")
	}
	if rx.Date == "" {
		return nil, fmt.Errorf("date is required")
	}
	if len(meds) > 0 {
		rx.MedicineCount = len(meds)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i := range meds {
		if meds[i].Status == "" {
			meds[i].Status = model.MedicationStatusActive
		}
		if meds[i].Source == "" {
			meds[i].Source = model.MedicationSourcePrescriptionScan
		}
		if end, ok := model.MedicationEndDate(meds[i].StartDate, meds[i].DurationDays); ok {
			meds[i].EndDate = end
		}
		meds[i].CreatedAt = now
		meds[i].UpdatedAt = now
	}

	stored := *rx
	storedMeds := meds
	if p.client.Authenticated(ctx) {
		if created, err := p.client.CreatePrescription(ctx, rx, meds); err != nil {
			p.logger.Warn("prescription push failed, keeping local copy", zap.Error(err))
			stored.ID = uuid.New().String()
		} else {
			stored = *created
			// The backend stores attached medications itself; refresh
			// the linked ids from its collection when possible.
			if remote, err := p.client.Medications(ctx); err == nil && len(remote) > 0 {
				storedMeds = nil
				for _, med := range remote {
					if med.PrescriptionID == stored.ID {
						storedMeds = append(storedMeds, med)
					}
				}
			}
		}
	} else {
		stored.ID = uuid.New().String()
	}
	for i := range storedMeds {
		if storedMeds[i].PrescriptionID == "" {
			storedMeds[i].PrescriptionID = stored.ID
		}
		if storedMeds[i].ID == "" {
			storedMeds[i].ID = uuid.New().String()
		}
	}

	return p.store.UpdateUser(ctx, func(u *model.UserData) {
		u.Prescriptions = append(u.Prescriptions, stored)
		u.Medications = append(u.Medications, storedMeds...)
	})
}

// DeletePrescription removes a prescription and its linked medications
func (p *ProfileService) DeletePrescription(ctx context.Context, id string) (*model.UserData, error) {
	if id == "" {
		return nil, fmt.Errorf("prescription id is required")
	}
	if p.client.Authenticated(ctx) {
		if err := p.client.DeletePrescription(ctx, id); err != nil {
			p.logger.Warn("prescription delete push failed", zap.String("id", id), zap.Error(err))
		}
	}

	return p.store.UpdateUser(ctx, func(u *model.UserData) {
		for i := range u.Prescriptions {
			if u.Prescriptions[i].ID == id {
				u.Prescriptions = append(u.Prescriptions[:i], u.Prescriptions[i+1:]...)
				break
			}
		}
		kept := u.Medications[:0]
		for _, med := range u.Medications {
			if med.PrescriptionID != id {
				kept = append(kept, med)
			}
		}
		u.Medications = kept
	})
}

// AddReport stores a report; values missing from the payload are
// derived best-effort from the summary text.
func (p *ProfileService) AddReport(ctx context.Context, report *model.Report) (*model.UserData, error) {
	if report.Name == "" {
		return nil, fmt.Errorf("report name is required")
	}
	if len(report.Values) == 0 {
		report.Values = ParseReportValues(report.Summary)
	}

	stored := *report
	if p.client.Authenticated(ctx) {
		if created, err := p.client.CreateReport(ctx, report); err != nil {
			p.logger.Warn("report push failed, keeping local copy", zap.Error(err))
			stored.ID = uuid.New().String()
		} else {
			stored = *created
		}
	} else {
		stored.ID = uuid.New().String()
	}

	return p.store.UpdateUser(ctx, func(u *model.UserData) {
		u.Reports = append(u.Reports, stored)
	})
}

// DeleteReport removes a report by id
func (p *ProfileService) DeleteReport(ctx context.Context, id string) (*model.UserData, error) {
	if id == "" {
		return nil, fmt.Errorf("report id is required")
	}
	if p.client.Authenticated(ctx) {
		if err := p.client.DeleteReport(ctx, id); err != nil {
			p.logger.Warn("report delete push failed", zap.String("id", id), zap.Error(err))
		}
	}

	return p.store.UpdateUser(ctx, func(u *model.UserData) {
		for i := range u.Reports {
			if u.Reports[i].ID == id {
				u.Reports = append(u.Reports[:i], u.Reports[i+1:]...)
				return
			}
		}
	})
}

// AddReminder stores a local-only reminder
func (p *ProfileService) AddReminder(ctx context.Context, reminder *model.Reminder) (*model.UserData, error) {
	if reminder.Message == "" {
		return nil, fmt.Errorf("reminder message is required")
	}
	if reminder.Type == "" {
		reminder.Type = model.ReminderTypeMedication
	}
	reminder.ID = uuid.New().String()

	return p.store.UpdateUser(ctx, func(u *model.UserData) {
		u.Reminders = append(u.Reminders, *reminder)
	})
}

// MarkReminderDone marks the reminder with the given id as done
func (p *ProfileService) MarkReminderDone(ctx context.Context, id string) (*model.UserData, error) {
	return p.store.UpdateUser(ctx, func(u *model.UserData) {
		for i := range u.Reminders {
			if u.Reminders[i].ID == id {
				u.Reminders[i].Done = true
				return
			}
		}
	})
}

// UpdateVitals sets height and weight and recomputes the derived BMI
func (p *ProfileService) UpdateVitals(ctx context.Context, heightCm, weightKg float64) (*model.UserData, error) {
	if heightCm < 0 || weightKg < 0 {
		return nil, fmt.Errorf("height and weight must not be negative")
	}
	return p.store.UpdateUser(ctx, func(u *model.UserData) {
		if heightCm > 0 {
			u.HeightCm = heightCm
		}
		if weightKg > 0 {
			u.WeightKg = weightKg
		}
		u.RecomputeBMI()
	})
}
