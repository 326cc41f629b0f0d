package model

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestComputeBMI(t *testing.T) {
	tests := []struct {
		name     string
		heightCm float64
		weightKg float64
		want     float64
		wantOK   bool
	}{
		{name: "reference adult", heightCm: 172, weightKg: 68, want: 22.99, wantOK: true},
		{name: "rounding to two decimals", heightCm: 180, weightKg: 75, want: 23.15, wantOK: true},
		{name: "missing height", heightCm: 0, weightKg: 68, wantOK: false},
		{name: "missing weight", heightCm: 172, weightKg: 0, wantOK: false},
		{name: "negative height", heightCm: -172, weightKg: 68, wantOK: false},
		{name: "negative weight", heightCm: 172, weightKg: -68, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ComputeBMI(tt.heightCm, tt.weightKg)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestProperty_BMIFormula(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("BMI equals weight over squared height, rounded to two decimals", prop.ForAll(
		func(heightCm, weightKg float64) bool {
			got, ok := ComputeBMI(heightCm, weightKg)
			if !ok {
				return false
			}
			h := heightCm / 100
			want := math.Round(weightKg/(h*h)*100) / 100
			return got == want
		},
		gen.Float64Range(40, 250),
		gen.Float64Range(1, 400),
	))

	properties.Property("BMI is absent for non-positive inputs", prop.ForAll(
		func(heightCm, weightKg float64) bool {
			_, ok := ComputeBMI(-heightCm, weightKg)
			if ok {
				return false
			}
			_, ok = ComputeBMI(heightCm, -weightKg)
			return !ok
		},
		gen.Float64Range(0, 250),
		gen.Float64Range(0, 400),
	))

	properties.TestingRun(t)
}

func TestAgeFromDOB(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		dob    string
		want   int
		wantOK bool
	}{
		{name: "birthday passed this year", dob: "1999-03-15", want: 27, wantOK: true},
		{name: "birthday later this year", dob: "1999-11-02", want: 26, wantOK: true},
		{name: "birthday today", dob: "2000-08-29", want: 26, wantOK: true},
		{name: "empty dob", dob: "", wantOK: false},
		{name: "garbage dob", dob: "not-a-date", wantOK: false},
		{name: "born in the future", dob: "2030-01-01", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AgeFromDOB(tt.dob, now)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMedicationEndDate(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		duration int
		want     string
		wantOK   bool
	}{
		{name: "thirty day course", start: "2025-10-01", duration: 30, want: "2025-10-31", wantOK: true},
		{name: "crosses month boundary", start: "2025-10-12", duration: 5, want: "2025-10-17", wantOK: true},
		{name: "crosses year boundary", start: "2025-12-30", duration: 7, want: "2026-01-06", wantOK: true},
		{name: "zero duration", start: "2025-10-01", duration: 0, wantOK: false},
		{name: "bad start date", start: "01/10/2025", duration: 10, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MedicationEndDate(tt.start, tt.duration)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRecomputeBMI(t *testing.T) {
	u := &UserData{Name: "A", HeightCm: 172, WeightKg: 68, BMI: 99}
	u.RecomputeBMI()
	assert.InDelta(t, 22.99, u.BMI, 0.001, "stored BMI must be recomputed, not trusted")

	u.WeightKg = 0
	u.RecomputeBMI()
	assert.Zero(t, u.BMI, "BMI clears when an input goes missing")
}
