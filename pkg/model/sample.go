package model

import "time"

// SampleUser returns a seeded demo aggregate used when no profile has
// been stored yet.
func SampleUser() *UserData {
	now := time.Now().UTC().Format(time.RFC3339)
	return &UserData{
		Name:       "Rahul Sharma",
		Age:        27,
		Gender:     "Male",
		BloodGroup: "B+",
		HeightCm:   172,
		WeightKg:   68,
		BMI:        22.99,
		Allergies:  []string{"Penicillin"},
		Conditions: []string{"Diabetes"},
		Medications: []Medication{
			{
				Name:            "Metformin",
				BrandName:       "Glucophage",
				Form:            MedicationFormTablet,
				Strength:        "500mg",
				Dosage:          "1 tablet",
				FrequencyPerDay: 2,
				Times:           []string{"08:00", "20:00"},
				DurationDays:    30,
				StartDate:       "2025-10-01",
				EndDate:         "2025-10-31",
				Instructions:    "After food",
				Source:          MedicationSourceManualAdd,
				Status:          MedicationStatusActive,
				CreatedAt:       now,
				UpdatedAt:       now,
			},
			{
				Name:            "Paracetamol",
				BrandName:       "Calpol 500",
				Form:            MedicationFormTablet,
				Strength:        "500mg",
				Dosage:          "1 tablet",
				FrequencyPerDay: 3,
				Times:           []string{"08:00", "14:00", "21:00"},
				DurationDays:    5,
				StartDate:       "2025-10-12",
				EndDate:         "2025-10-17",
				Instructions:    "After food",
				Source:          MedicationSourceManualAdd,
				Status:          MedicationStatusActive,
				CreatedAt:       now,
				UpdatedAt:       now,
			},
		},
		Prescriptions: []Prescription{
			{ID: "rx-1", Doctor: "Dr. Mehta", Date: "2025-10-12", MedicineCount: 3},
		},
		Reports: []Report{
			{
				ID:      "rep-1",
				Name:    "Complete Blood Count (CBC)",
				Date:    "2025-10-10",
				Summary: "All parameters within normal limits.",
				Values: []ReportValue{
					{Name: "Hemoglobin", Value: "13.8", Unit: "g/dL", Ref: "13.5-17.5", Flag: ValueFlagNormal},
					{Name: "WBC", Value: "6.5", Unit: "x10^3/uL", Ref: "4.0-11.0", Flag: ValueFlagNormal},
					{Name: "Platelets", Value: "250", Unit: "x10^3/uL", Ref: "150-400", Flag: ValueFlagNormal},
				},
			},
			{
				ID:      "rep-2",
				Name:    "Lipid Profile",
				Date:    "2025-09-22",
				Summary: "Desirable lipid profile.",
				Values: []ReportValue{
					{Name: "Total Cholesterol", Value: "178", Unit: "mg/dL", Ref: "< 200", Flag: ValueFlagNormal},
					{Name: "LDL-C", Value: "98", Unit: "mg/dL", Ref: "< 100", Flag: ValueFlagNormal},
					{Name: "HDL-C", Value: "52", Unit: "mg/dL", Ref: "> 40", Flag: ValueFlagNormal},
				},
			},
		},
		Reminders: []Reminder{
			{ID: "rem-1", Type: ReminderTypeMedication, Message: "Take Paracetamol 500mg", Time: "8:00 PM"},
		},
		LastSync: now,
	}
}
