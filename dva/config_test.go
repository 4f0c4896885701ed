package dva

import (
	"errors"
	"math"
	"testing"

	"github.com/TheCacophonyProject/battery-dva/smoothing"
	"github.com/TheCacophonyProject/battery-dva/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func intPtr(i int) *int { return &i }

func fieldsOf(err error) []string {
	var fields []string
	for _, e := range multierr.Errors(err) {
		var verr *validation.Error
		if errors.As(e, &verr) {
			fields = append(fields, verr.Field)
		}
	}
	return fields
}

func TestDefaultConfigIsValid(t *testing.T) {
	for _, mode := range []Mode{ModeDVA, ModeICA} {
		cfg := DefaultConfig(mode)
		assert.NoError(t, cfg.Validate())
		assert.Equal(t, smoothing.SGolay, cfg.Method)
		assert.Equal(t, 0.04, cfg.Parameter)
		assert.Equal(t, SmoothAll, cfg.Location)
		assert.Nil(t, cfg.OutputSize)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Config{
		Mode:       "dQdV",
		Method:     "lowess",
		Parameter:  -1,
		Location:   "everywhere",
		OutputSize: intPtr(0),
		NoiseUpper: -1,
		NoiseLower: 0,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrInvalid))
	assert.ElementsMatch(t, []string{
		"calc_method",
		"smoothing_method",
		"smoothing_parameter",
		"smoothing_location",
		"output_size",
		"noise_lower",
	}, fieldsOf(err))
}

func TestValidateMethodParameters(t *testing.T) {
	cfg := DefaultConfig(ModeDVA)
	cfg.Method = smoothing.Cubic
	cfg.Parameter = 1.5
	assert.Equal(t, []string{"smoothing_parameter"}, fieldsOf(cfg.Validate()))

	cfg.Parameter = 1
	assert.NoError(t, cfg.Validate())

	cfg.Method = smoothing.Spline
	cfg.Parameter = 0.5
	assert.Equal(t, []string{"smoothing_parameter"}, fieldsOf(cfg.Validate()))
	cfg.Parameter = 3
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsNonFinite(t *testing.T) {
	cfg := DefaultConfig(ModeDVA)
	cfg.Parameter = math.Inf(1)
	assert.Equal(t, []string{"smoothing_parameter"}, fieldsOf(cfg.Validate()))

	cfg = DefaultConfig(ModeDVA)
	cfg.NoiseUpper = math.Inf(1)
	assert.Equal(t, []string{"noise_upper"}, fieldsOf(cfg.Validate()))
}

func TestValidateForOutputSize(t *testing.T) {
	cfg := DefaultConfig(ModeDVA)
	assert.NoError(t, cfg.ValidateFor(100))

	cfg.OutputSize = intPtr(100)
	assert.NoError(t, cfg.ValidateFor(100))

	cfg.OutputSize = intPtr(101)
	assert.Equal(t, []string{"output_size"}, fieldsOf(cfg.ValidateFor(100)))

	cfg.OutputSize = intPtr(0)
	assert.Equal(t, []string{"output_size"}, fieldsOf(cfg.ValidateFor(100)))

	cfg.OutputSize = intPtr(-5)
	assert.Equal(t, []string{"output_size"}, fieldsOf(cfg.ValidateFor(100)))
}

func TestValidateForSplineStep(t *testing.T) {
	cfg := DefaultConfig(ModeDVA)
	cfg.Method = smoothing.Spline

	cfg.Parameter = 97
	assert.NoError(t, cfg.ValidateFor(100))
	cfg.Parameter = 98
	assert.Equal(t, []string{"smoothing_parameter"}, fieldsOf(cfg.ValidateFor(100)))

	// Without output smoothing the full 100 points are available.
	cfg.Location = SmoothVoltage
	assert.NoError(t, cfg.ValidateFor(100))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("ica")
	require.NoError(t, err)
	assert.Equal(t, ModeICA, m)
	m, err = ParseMode("DVA")
	require.NoError(t, err)
	assert.Equal(t, ModeDVA, m)

	_, err = ParseMode("dQdV")
	assert.True(t, errors.Is(err, validation.ErrInvalid))
}

func TestParseLocation(t *testing.T) {
	tests := map[string]Location{
		"U":      SmoothVoltage,
		"i":      SmoothCurrent,
		"output": SmoothOutput,
		"ALL":    SmoothAll,
	}
	for in, want := range tests {
		got, err := ParseLocation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseLocation("input")
	assert.True(t, errors.Is(err, validation.ErrInvalid))
}

func TestLocationStages(t *testing.T) {
	assert.True(t, SmoothAll.SmoothsVoltage())
	assert.True(t, SmoothAll.SmoothsCurrent())
	assert.True(t, SmoothAll.SmoothsOutput())

	assert.True(t, SmoothVoltage.SmoothsVoltage())
	assert.False(t, SmoothVoltage.SmoothsCurrent())
	assert.False(t, SmoothVoltage.SmoothsOutput())

	assert.False(t, SmoothCurrent.SmoothsVoltage())
	assert.True(t, SmoothCurrent.SmoothsCurrent())

	assert.False(t, SmoothOutput.SmoothsVoltage())
	assert.True(t, SmoothOutput.SmoothsOutput())
}
