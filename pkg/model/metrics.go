package model

import (
	"math"
	"time"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// ComputeBMI derives body mass index from height in centimeters and
// weight in kilograms, rounded to two decimal places. The second return
// is false when either input is missing or non-positive.
func ComputeBMI(heightCm, weightKg float64) (float64, bool) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, false
	}
	h := heightCm / 100
	bmi := weightKg / (h * h)
	return math.Round(bmi*100) / 100, true
}

// AgeFromDOB computes completed years between a YYYY-MM-DD date of
// birth and now. The second return is false when dob is empty or not a
// valid date.
func AgeFromDOB(dob string, now time.Time) (int, bool) {
	if dob == "" {
		return 0, false
	}
	born, err := time.Parse(DateLayout, dob)
	if err != nil {
		return 0, false
	}
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}

// MedicationEndDate computes the end of a course as start plus
// durationDays. The second return is false when the start date does not
// parse or the duration is not positive.
func MedicationEndDate(startDate string, durationDays int) (string, bool) {
	if durationDays < 1 {
		return "", false
	}
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return "", false
	}
	return start.AddDate(0, 0, durationDays).Format(DateLayout), true
}

// RecomputeBMI refreshes the derived BMI field from the aggregate's
// current height and weight. The stored value is never trusted.
func (u *UserData) RecomputeBMI() {
	if bmi, ok := ComputeBMI(u.HeightCm, u.WeightKg); ok {
		u.BMI = bmi
	} else {
		u.BMI = 0
	}
}
