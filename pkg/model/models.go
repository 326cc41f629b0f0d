package model

// MedicationStatus represents the lifecycle state of a medication course
type MedicationStatus string

const (
	MedicationStatusActive    MedicationStatus = "active"
	MedicationStatusCompleted MedicationStatus = "completed"
	MedicationStatusStopped   MedicationStatus = "stopped"
)

// MedicationSource records how a medication entered the system
type MedicationSource string

const (
	MedicationSourcePrescriptionScan MedicationSource = "prescription_scan"
	MedicationSourceManualAdd        MedicationSource = "manual_add"
	MedicationSourceBarcodeScan      MedicationSource = "barcode_scan"
)

// MedicationForm represents the physical form of a medication
type MedicationForm string

const (
	MedicationFormTablet    MedicationForm = "tablet"
	MedicationFormSyrup     MedicationForm = "syrup"
	MedicationFormCapsule   MedicationForm = "capsule"
	MedicationFormInjection MedicationForm = "injection"
)

// Medication represents one medication course. Identity is the backend
// id when known; locally created records carry a client-generated id
// until the backend assigns one.
type Medication struct {
	ID     string `json:"_id,omitempty"`
	UserID string `json:"user_id,omitempty"`

	// Explicit link to the owning prescription, empty for standalone
	// medications.
	PrescriptionID string `json:"prescription_id,omitempty"`

	Name            string           `json:"name"`
	BrandName       string           `json:"brand_name,omitempty"`
	Form            MedicationForm   `json:"form,omitempty"`
	Strength        string           `json:"strength,omitempty"`
	Dosage          string           `json:"dosage,omitempty"`
	FrequencyPerDay int              `json:"frequency_per_day"`
	Times           []string         `json:"times"`
	DurationDays    int              `json:"duration_days"`
	StartDate       string           `json:"start_date"`
	EndDate         string           `json:"end_date,omitempty"`
	Instructions    string           `json:"instructions,omitempty"`
	Source          MedicationSource `json:"source,omitempty"`
	Status          MedicationStatus `json:"status"`
	CreatedAt       string           `json:"created_at,omitempty"`
	UpdatedAt       string           `json:"updated_at,omitempty"`
}

// Prescription represents a doctor visit that produced medications.
// MedicineCount mirrors the wire contract; the authoritative link runs
// the other way, via Medication.PrescriptionID.
type Prescription struct {
	ID            string `json:"id,omitempty"`
	Doctor        string `json:"doctor"`
	Date          string `json:"date"`
	MedicineCount int    `json:"medicine_count"`
}

// ValueFlag marks a report value relative to its reference range
type ValueFlag string

const (
	ValueFlagLow    ValueFlag = "low"
	ValueFlagHigh   ValueFlag = "high"
	ValueFlagNormal ValueFlag = "normal"
)

// ReportValue is a single measured parameter inside a report
type ReportValue struct {
	Name  string    `json:"name"`
	Value string    `json:"value"`
	Unit  string    `json:"unit,omitempty"`
	Ref   string    `json:"ref,omitempty"`
	Flag  ValueFlag `json:"flag,omitempty"`
}

// Report represents a medical report or lab result
type Report struct {
	ID        string        `json:"id,omitempty"`
	Name      string        `json:"name"`
	Date      string        `json:"date"`
	Summary   string        `json:"summary"`
	FileURI   string        `json:"file_uri,omitempty"`
	MimeType  string        `json:"mime_type,omitempty"`
	SizeBytes int64         `json:"size_bytes,omitempty"`
	Values    []ReportValue `json:"values,omitempty"`
}

// ReminderType represents the kind of reminder
type ReminderType string

const (
	ReminderTypeMedication  ReminderType = "medication"
	ReminderTypeAppointment ReminderType = "appointment"
	ReminderTypeTest        ReminderType = "test"
)

// Reminder is a local-only nudge; reminders are never sourced from the
// backend.
type Reminder struct {
	ID      string       `json:"id,omitempty"`
	Type    ReminderType `json:"type"`
	Message string       `json:"message"`
	Time    string       `json:"time"`
	Done    bool         `json:"done"`
}

// UserData is the single root aggregate persisted as one unit by the
// local profile store.
type UserData struct {
	Name          string         `json:"name"`
	Age           int            `json:"age,omitempty"`
	Gender        string         `json:"gender,omitempty"`
	BloodGroup    string         `json:"blood_group,omitempty"`
	HeightCm      float64        `json:"height_cm,omitempty"`
	WeightKg      float64        `json:"weight_kg,omitempty"`
	BMI           float64        `json:"bmi,omitempty"`
	Allergies     []string       `json:"allergies,omitempty"`
	Conditions    []string       `json:"conditions,omitempty"`
	Medications   []Medication   `json:"medications,omitempty"`
	Prescriptions []Prescription `json:"prescriptions,omitempty"`
	Reports       []Report       `json:"reports,omitempty"`
	Reminders     []Reminder     `json:"reminders,omitempty"`
	LastSync      string         `json:"last_sync,omitempty"`
}
