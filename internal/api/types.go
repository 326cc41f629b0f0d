package api

import "github.com/healix-app/healix-go/pkg/model"

// TokenPair is the access/refresh credential pair issued on login and
// registration.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterRequest carries the full profile captured by the two-step
// registration flow. Numeric fields stay strings, matching the form
// contract the backend expects.
type RegisterRequest struct {
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	DOB              string `json:"dob"`
	Gender           string `json:"gender"`
	BloodGroup       string `json:"blood_group"`
	HeightCm         string `json:"height_cm,omitempty"`
	WeightKg         string `json:"weight_kg,omitempty"`
	KnownConditions  string `json:"known_conditions,omitempty"`
	Allergies        string `json:"allergies,omitempty"`
	FoodTolerance    string `json:"food_tolerance,omitempty"`
	Smoking          string `json:"smoking,omitempty"`
	Alcohol          string `json:"alcohol,omitempty"`
	PhysicalActivity string `json:"physical_activity,omitempty"`
	DietType         string `json:"diet_type,omitempty"`
}

// RemoteUser is the backend's view of the profile. List-valued fields
// arrive comma-joined.
type RemoteUser struct {
	FullName        string  `json:"full_name"`
	Email           string  `json:"email"`
	DOB             string  `json:"dob"`
	Gender          string  `json:"gender"`
	BloodGroup      string  `json:"blood_group"`
	HeightCm        float64 `json:"height_cm"`
	WeightKg        float64 `json:"weight_kg"`
	Allergies       string  `json:"allergies"`
	KnownConditions string  `json:"known_conditions"`
}

// OCRMedicine is one best-effort extracted medicine row
type OCRMedicine struct {
	Name            string `json:"name"`
	Strength        string `json:"strength,omitempty"`
	Form            string `json:"form,omitempty"`
	Dosage          string `json:"dosage,omitempty"`
	FrequencyPerDay int    `json:"frequency_per_day,omitempty"`
	DurationDays    int    `json:"duration_days,omitempty"`
	Instructions    string `json:"instructions,omitempty"`
}

// OCRExtracted is the structured result of a prescription upload
type OCRExtracted struct {
	Doctor    string        `json:"doctor"`
	Date      string        `json:"date"`
	Medicines []OCRMedicine `json:"medicines"`
}

// envelope is the common response wrapper every endpoint uses
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type authResponse struct {
	envelope
	Authenticated bool   `json:"authenticated"`
	AccessToken   string `json:"access_token"`
	RefreshToken  string `json:"refresh_token"`
}

type refreshResponse struct {
	envelope
	AccessToken string `json:"access_token"`
}

type userResponse struct {
	envelope
	User *RemoteUser `json:"user"`
}

type medicationsResponse struct {
	envelope
	Medications []model.Medication `json:"medications"`
}

type medicationResponse struct {
	envelope
	Medication *model.Medication `json:"medication"`
}

type prescriptionsResponse struct {
	envelope
	Prescriptions []model.Prescription `json:"prescriptions"`
}

type prescriptionResponse struct {
	envelope
	Prescription *model.Prescription `json:"prescription"`
}

type reportsResponse struct {
	envelope
	Reports []model.Report `json:"reports"`
}

type reportResponse struct {
	envelope
	Report *model.Report `json:"report"`
}

type ocrResponse struct {
	envelope
	Extracted *OCRExtracted `json:"extracted"`
	Report    *model.Report `json:"report"`
}
