package smoothing

import (
	"strings"

	"github.com/TheCacophonyProject/battery-dva/validation"
)

// Method selects a smoothing algorithm.
type Method string

const (
	// Cubic fits a smoothing cubic spline, the parameter is the smoothing
	// factor p in [0, 1].
	Cubic Method = "cubic"
	// SGolay applies a second order Savitzky-Golay filter, the parameter is
	// the window width as a fraction of the series length.
	SGolay Method = "sgolay"
	// MovMean applies a centred moving average, the parameter is the window
	// width as a fraction of the series length.
	MovMean Method = "movmean"
	// Spline interpolates every k-th sample with a natural cubic spline,
	// the parameter is k.
	Spline Method = "spline"
)

var methods = []Method{Cubic, SGolay, MovMean, Spline}

func Methods() []Method {
	return append([]Method(nil), methods...)
}

// ParseMethod maps a method name, case insensitive, to its Method.
func ParseMethod(name string) (Method, error) {
	for _, m := range methods {
		if strings.EqualFold(string(m), strings.TrimSpace(name)) {
			return m, nil
		}
	}
	return "", validation.New("smoothing_method", name, "must be either cubic, sgolay, movmean or spline")
}

func (m Method) String() string {
	return string(m)
}
