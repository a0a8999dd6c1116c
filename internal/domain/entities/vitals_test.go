package entities_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JastejS28/intel3/internal/domain/entities"
)

func TestVitals_Normalize(t *testing.T) {
	t.Run("zero value gets all defaults", func(t *testing.T) {
		v := entities.Vitals{}.Normalize()

		assert.Equal(t, entities.DefaultHeartRate, v.HeartRate)
		assert.Equal(t, entities.DefaultBPSystolic, v.BPSystolic)
		assert.Equal(t, entities.DefaultBPDiastolic, v.BPDiastolic)
		assert.Equal(t, entities.DefaultTemperature, v.Temperature)
		assert.Equal(t, entities.DefaultOxygenSaturation, v.OxygenSaturation)
		assert.Equal(t, entities.DefaultRespiratoryRate, v.RespiratoryRate)
	})

	t.Run("valid readings pass through unchanged", func(t *testing.T) {
		in := entities.Vitals{
			HeartRate:        132,
			BPSystolic:       155,
			BPDiastolic:      95,
			Temperature:      39.4,
			OxygenSaturation: 89,
			RespiratoryRate:  28,
		}
		assert.Equal(t, in, in.Normalize())
	})

	t.Run("only invalid fields are replaced", func(t *testing.T) {
		in := entities.Vitals{
			HeartRate:        -10,
			BPSystolic:       140,
			Temperature:      math.NaN(),
			OxygenSaturation: math.Inf(1),
			RespiratoryRate:  22,
		}
		out := in.Normalize()

		assert.Equal(t, entities.DefaultHeartRate, out.HeartRate)
		assert.Equal(t, 140.0, out.BPSystolic)
		assert.Equal(t, entities.DefaultBPDiastolic, out.BPDiastolic)
		assert.Equal(t, entities.DefaultTemperature, out.Temperature)
		assert.Equal(t, entities.DefaultOxygenSaturation, out.OxygenSaturation)
		assert.Equal(t, 22.0, out.RespiratoryRate)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := entities.Vitals{HeartRate: math.NaN(), BPSystolic: -1}.Normalize()
		assert.Equal(t, once, once.Normalize())
	})

	t.Run("output is always normalized", func(t *testing.T) {
		cases := []entities.Vitals{
			{},
			{HeartRate: math.Inf(-1)},
			{Temperature: -273},
			{HeartRate: 60, BPSystolic: 110, BPDiastolic: 70, Temperature: 36.5, OxygenSaturation: 99, RespiratoryRate: 14},
		}
		for _, c := range cases {
			assert.True(t, c.Normalize().IsNormalized())
		}
	})
}

func TestVitals_IsNormalized(t *testing.T) {
	assert.False(t, entities.Vitals{}.IsNormalized())
	assert.False(t, entities.Vitals{
		HeartRate: 70, BPSystolic: 120, BPDiastolic: 80,
		Temperature: 37, OxygenSaturation: math.NaN(), RespiratoryRate: 16,
	}.IsNormalized())
	assert.True(t, entities.Vitals{
		HeartRate: 70, BPSystolic: 120, BPDiastolic: 80,
		Temperature: 37, OxygenSaturation: 98, RespiratoryRate: 16,
	}.IsNormalized())
}
