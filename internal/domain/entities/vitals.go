package entities

import "math"

// Clinically neutral defaults substituted for missing or invalid readings.
const (
	DefaultHeartRate        = 75.0
	DefaultBPSystolic       = 120.0
	DefaultBPDiastolic      = 80.0
	DefaultTemperature      = 37.0
	DefaultOxygenSaturation = 98.0
	DefaultRespiratoryRate  = 16.0
)

// Vitals holds the six vital-sign measurements used as scoring input.
// Absent or non-numeric JSON fields decode to zero and are replaced by
// Normalize before the value reaches the scorer.
type Vitals struct {
	HeartRate        float64 `json:"heart_rate"`
	BPSystolic       float64 `json:"bp_systolic"`
	BPDiastolic      float64 `json:"bp_diastolic"`
	Temperature      float64 `json:"temperature"`
	OxygenSaturation float64 `json:"oxygen_saturation"`
	RespiratoryRate  float64 `json:"respiratory_rate"`
}

// Normalize returns a copy with every invalid field replaced by its default.
// A field is invalid when it is NaN, infinite, or not strictly positive.
// Normalizing an already-normalized value is a no-op.
func (v Vitals) Normalize() Vitals {
	v.HeartRate = orDefault(v.HeartRate, DefaultHeartRate)
	v.BPSystolic = orDefault(v.BPSystolic, DefaultBPSystolic)
	v.BPDiastolic = orDefault(v.BPDiastolic, DefaultBPDiastolic)
	v.Temperature = orDefault(v.Temperature, DefaultTemperature)
	v.OxygenSaturation = orDefault(v.OxygenSaturation, DefaultOxygenSaturation)
	v.RespiratoryRate = orDefault(v.RespiratoryRate, DefaultRespiratoryRate)
	return v
}

// IsNormalized reports whether every field is a positive finite number.
func (v Vitals) IsNormalized() bool {
	for _, f := range []float64{
		v.HeartRate, v.BPSystolic, v.BPDiastolic,
		v.Temperature, v.OxygenSaturation, v.RespiratoryRate,
	} {
		if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func orDefault(value, fallback float64) float64 {
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fallback
	}
	return value
}
