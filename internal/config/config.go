package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/TheCacophonyProject/battery-dva/dva"
	"github.com/TheCacophonyProject/battery-dva/smoothing"
	"github.com/TheCacophonyProject/battery-dva/validation"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

const (
	EnvPrefix  = "BATTERY_DVA"
	SectionKey = "dva"

	modeKey       = SectionKey + ".calc_method"
	methodKey     = SectionKey + ".smoothing_method"
	parameterKey  = SectionKey + ".smoothing_parameter"
	locationKey   = SectionKey + ".smoothing_location"
	outputSizeKey = SectionKey + ".output_size"
	noiseUpperKey = SectionKey + ".noise_upper"
	noiseLowerKey = SectionKey + ".noise_lower"
)

var keys = []string{modeKey, methodKey, parameterKey, locationKey, outputSizeKey, noiseUpperKey, noiseLowerKey}

// Flags are the calculation options that can be given on the command line.
// A nil flag leaves the value from the environment, the config file or the
// defaults in place.
type Flags struct {
	Config     string   `arg:"--config" help:"Config file (toml, yaml or json) with a [dva] section"`
	Mode       *string  `arg:"--mode" help:"Curve to calculate (DVA, ICA)"`
	Method     *string  `arg:"--method" help:"Smoothing method (cubic, sgolay, movmean, spline)"`
	Parameter  *float64 `arg:"--parameter" help:"Smoothing parameter"`
	Location   *string  `arg:"--location" help:"Where to smooth (U, I, Output, all)"`
	OutputSize *int     `arg:"--output-size" help:"Number of points to resample to, defaults to the number of input rows"`
}

// Load builds a dva.Config from the defaults, the config file, the
// BATTERY_DVA_* environment variables and the flags, later ones taking
// precedence.
func Load(flags Flags) (dva.Config, error) {
	v := viper.New()
	for _, key := range keys {
		env := EnvPrefix + "_" + strings.ToUpper(strings.TrimPrefix(key, SectionKey+"."))
		if err := v.BindEnv(key, env); err != nil {
			return dva.Config{}, err
		}
	}
	v.SetDefault(methodKey, string(dva.DefaultMethod))
	v.SetDefault(parameterKey, dva.DefaultParameter)
	v.SetDefault(locationKey, string(dva.DefaultLocation))
	v.SetDefault(noiseUpperKey, dva.DefaultNoiseUpper)
	v.SetDefault(noiseLowerKey, dva.DefaultNoiseLower)

	if flags.Config != "" {
		v.SetConfigFile(flags.Config)
		if err := v.ReadInConfig(); err != nil {
			return dva.Config{}, fmt.Errorf("failed to read config %s: %w", flags.Config, err)
		}
	}

	if flags.Mode != nil {
		v.Set(modeKey, *flags.Mode)
	}
	if flags.Method != nil {
		v.Set(methodKey, *flags.Method)
	}
	if flags.Parameter != nil {
		v.Set(parameterKey, *flags.Parameter)
	}
	if flags.Location != nil {
		v.Set(locationKey, *flags.Location)
	}
	if flags.OutputSize != nil {
		v.Set(outputSizeKey, *flags.OutputSize)
	}

	cfg, err := fromViper(v)
	if err != nil {
		return dva.Config{}, err
	}
	return cfg, cfg.Validate()
}

func fromViper(v *viper.Viper) (dva.Config, error) {
	var cfg dva.Config
	var errs, err error

	cfg.Mode, err = dva.ParseMode(v.GetString(modeKey))
	errs = multierr.Append(errs, err)
	cfg.Method, err = smoothing.ParseMethod(v.GetString(methodKey))
	errs = multierr.Append(errs, err)
	cfg.Location, err = dva.ParseLocation(v.GetString(locationKey))
	errs = multierr.Append(errs, err)

	cfg.Parameter, err = cast.ToFloat64E(v.Get(parameterKey))
	errs = multierr.Append(errs, numberError("smoothing_parameter", v.Get(parameterKey), err))
	cfg.NoiseUpper, err = cast.ToFloat64E(v.Get(noiseUpperKey))
	errs = multierr.Append(errs, numberError("noise_upper", v.Get(noiseUpperKey), err))
	cfg.NoiseLower, err = cast.ToFloat64E(v.Get(noiseLowerKey))
	errs = multierr.Append(errs, numberError("noise_lower", v.Get(noiseLowerKey), err))

	if v.IsSet(outputSizeKey) {
		size, err := integer(v.Get(outputSizeKey))
		if err != nil {
			errs = multierr.Append(errs, validation.New("output_size", v.Get(outputSizeKey), "must be an integer"))
		} else {
			cfg.OutputSize = &size
		}
	}
	return cfg, errs
}

// integer accepts whole numbers only, "2.5" or 2.5 is an error rather than 2.
func integer(value interface{}) (int, error) {
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, err
	}
	if math.Trunc(f) != f || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%v is not an integer", value)
	}
	return int(f), nil
}

func numberError(field string, value interface{}, err error) error {
	if err == nil {
		return nil
	}
	return validation.New(field, value, "must be a number")
}
