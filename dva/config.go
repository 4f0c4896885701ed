package dva

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/TheCacophonyProject/battery-dva/smoothing"
	"github.com/TheCacophonyProject/battery-dva/validation"
	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

// Mode selects the curve that is calculated.
type Mode string

const (
	ModeDVA Mode = "DVA"
	ModeICA Mode = "ICA"
)

// Location selects the stages of the pipeline that get smoothed.
type Location string

const (
	SmoothVoltage Location = "U"
	SmoothCurrent Location = "I"
	SmoothOutput  Location = "Output"
	SmoothAll     Location = "all"
)

const (
	DefaultMethod     = smoothing.SGolay
	DefaultParameter  = 0.04
	DefaultLocation   = SmoothAll
	DefaultNoiseUpper = -0.6
	DefaultNoiseLower = -0.9
)

// Config holds the options of a single calculation.
type Config struct {
	Mode      Mode             `validate:"oneof=DVA ICA"`
	Method    smoothing.Method `validate:"oneof=cubic sgolay movmean spline"`
	Parameter float64          `validate:"gt=0"`
	Location  Location         `validate:"oneof=U I Output all"`
	// OutputSize is the number of points the measurement is resampled to,
	// nil uses the number of input rows.
	OutputSize *int `validate:"omitempty,gte=1"`

	// Noise levels in dB above NoiseUpper are reported as over-smoothed,
	// below NoiseLower as under-smoothed.
	NoiseUpper float64
	NoiseLower float64 `validate:"ltefield=NoiseUpper"`
}

// DefaultConfig returns the defaults for the given mode.
func DefaultConfig(mode Mode) Config {
	return Config{
		Mode:       mode,
		Method:     DefaultMethod,
		Parameter:  DefaultParameter,
		Location:   DefaultLocation,
		NoiseUpper: DefaultNoiseUpper,
		NoiseLower: DefaultNoiseLower,
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ModeDVA):
		return ModeDVA, nil
	case string(ModeICA):
		return ModeICA, nil
	}
	return "", validation.New("calc_method", s, "options are DVA or ICA")
}

func ParseLocation(s string) (Location, error) {
	for _, l := range []Location{SmoothVoltage, SmoothCurrent, SmoothOutput, SmoothAll} {
		if strings.EqualFold(string(l), strings.TrimSpace(s)) {
			return l, nil
		}
	}
	return "", validation.New("smoothing_location", s, "must be either U, I, Output or all")
}

func (l Location) SmoothsVoltage() bool { return l == SmoothVoltage || l == SmoothAll }
func (l Location) SmoothsCurrent() bool { return l == SmoothCurrent || l == SmoothAll }
func (l Location) SmoothsOutput() bool  { return l == SmoothOutput || l == SmoothAll }

var validate = validator.New()

// fieldNames maps Config fields to the names used in config files and flags.
var fieldNames = map[string]string{
	"Mode":       "calc_method",
	"Method":     "smoothing_method",
	"Parameter":  "smoothing_parameter",
	"Location":   "smoothing_location",
	"OutputSize": "output_size",
	"NoiseUpper": "noise_upper",
	"NoiseLower": "noise_lower",
}

var reasons = map[string]string{
	"calc_method":         "options are DVA or ICA",
	"smoothing_method":    "must be either cubic, sgolay, movmean or spline",
	"smoothing_location":  "must be either U, I, Output or all",
	"smoothing_parameter": "must be positive",
	"output_size":         "must be 1 or bigger",
	"noise_lower":         "must not be above noise_upper",
}

// Validate checks the options that do not depend on the measurement. Every
// problem found is returned, combined with multierr.
func (c Config) Validate() error {
	var errs error
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			name := fieldNames[fe.StructField()]
			errs = multierr.Append(errs, validation.New(name, fe.Value(), reasons[name]))
		}
	}

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"smoothing_parameter", c.Parameter},
		{"noise_upper", c.NoiseUpper},
		{"noise_lower", c.NoiseLower},
	} {
		if math.IsInf(f.value, 0) || math.IsNaN(f.value) {
			errs = multierr.Append(errs, validation.New(f.name, f.value, "must be a finite number"))
		}
	}

	switch c.Method {
	case smoothing.Cubic:
		if c.Parameter > 1 {
			errs = multierr.Append(errs, validation.New("smoothing_parameter", c.Parameter, "cubic smoothing factor must be in (0, 1]"))
		}
	case smoothing.Spline:
		if c.Parameter < 1 {
			errs = multierr.Append(errs, validation.New("smoothing_parameter", c.Parameter, "spline step must be 1 or bigger"))
		}
	}
	return errs
}

// ValidateFor checks c against a measurement with the given number of rows.
func (c Config) ValidateFor(rows int) error {
	errs := c.Validate()
	size := c.size(rows)
	if c.OutputSize != nil && *c.OutputSize > rows {
		errs = multierr.Append(errs, validation.New("output_size", *c.OutputSize, fmt.Sprintf("must not be bigger than the input size (%d)", rows)))
	}

	if c.Method == smoothing.Spline && c.Parameter >= 1 && size >= 1 {
		// Inputs are smoothed at size points, the output curve at size-1.
		shortest := size
		if c.Location.SmoothsOutput() {
			shortest--
		}
		if smoothing.SplineKnots(shortest, int(c.Parameter)) < 2 {
			errs = multierr.Append(errs, validation.New("smoothing_parameter", c.Parameter, fmt.Sprintf("spline step is too big for %d points", shortest)))
		}
	}
	return errs
}

func (c Config) size(rows int) int {
	if c.OutputSize == nil {
		return rows
	}
	return *c.OutputSize
}
