package smoothing

import (
	"math"
	"slices"

	"github.com/TheCacophonyProject/battery-dva/validation"
)

// Smooth returns a smoothed copy of data sampled at time.
//
// Series with fewer than 3 samples are returned unchanged by the window and
// cubic methods. The spline method needs at least 2 subsampled points.
// Cubic and Spline need time to be strictly increasing.
func Smooth(data, time []float64, method Method, parameter float64) ([]float64, error) {
	if len(time) != len(data) {
		return nil, validation.New("time", len(time), "length differs from the data being smoothed")
	}
	if !(parameter > 0) || math.IsInf(parameter, 1) {
		return nil, validation.New("smoothing_parameter", parameter, "must be a positive finite number")
	}

	switch method {
	case Cubic:
		if parameter > 1 {
			return nil, validation.New("smoothing_parameter", parameter, "cubic smoothing factor must be in (0, 1]")
		}
		if len(data) < minWindow {
			return slices.Clone(data), nil
		}
		if err := checkIncreasing(time); err != nil {
			return nil, err
		}
		return smoothingSpline(time, data, parameter)

	case SGolay:
		if len(data) < minWindow {
			return slices.Clone(data), nil
		}
		return savitzkyGolay(data, WindowSize(parameter, len(data)))

	case MovMean:
		if len(data) < minWindow {
			return slices.Clone(data), nil
		}
		return movingMean(data, WindowSize(parameter, len(data))), nil

	case Spline:
		k := int(parameter)
		if k < 1 {
			return nil, validation.New("smoothing_parameter", parameter, "spline step must be 1 or bigger")
		}
		if err := checkIncreasing(time); err != nil {
			return nil, err
		}
		return subsampledSpline(time, data, k)

	default:
		return nil, validation.New("smoothing_method", string(method), "must be either cubic, sgolay, movmean or spline")
	}
}

func checkIncreasing(time []float64) error {
	for i := 1; i < len(time); i++ {
		if !(time[i] > time[i-1]) {
			return validation.New("time", time[i], "must be strictly increasing")
		}
	}
	return nil
}
