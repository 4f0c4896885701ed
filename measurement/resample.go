package measurement

import (
	"sort"

	"github.com/TheCacophonyProject/battery-dva/validation"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// Dedup returns a copy of s ordered by time that keeps only the first
// sample recorded for each distinct timestamp.
func Dedup(s *Series) *Series {
	order := make([]int, s.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.Time[order[a]] < s.Time[order[b]]
	})

	out := &Series{
		Time:    make([]float64, 0, len(order)),
		Voltage: make([]float64, 0, len(order)),
		Current: make([]float64, 0, len(order)),
	}
	for _, i := range order {
		if n := len(out.Time); n > 0 && out.Time[n-1] == s.Time[i] {
			continue
		}
		out.Time = append(out.Time, s.Time[i])
		out.Voltage = append(out.Voltage, s.Voltage[i])
		out.Current = append(out.Current, s.Current[i])
	}
	return out
}

// Resample interpolates s onto size evenly spaced points between its first
// and last timestamp. Voltage and current are linearly interpolated over the
// deduplicated series; points outside it take the nearest end value.
func Resample(s *Series, size int) (*Series, error) {
	if size < 1 {
		return nil, validation.New("output_size", size, "must be 1 or bigger")
	}
	table := Dedup(s)
	if table.Len() < 2 {
		return nil, validation.New("time", table.Len(), "at least 2 distinct time points are needed to interpolate")
	}

	grid := make([]float64, size)
	if size == 1 {
		grid[0] = table.Time[0]
	} else {
		floats.Span(grid, table.Time[0], table.Time[table.Len()-1])
	}

	return &Series{
		Time:    grid,
		Voltage: interpolate(table.Time, table.Voltage, grid),
		Current: interpolate(table.Time, table.Current, grid),
	}, nil
}

// interpolate expects xs to be strictly increasing with at least two points.
func interpolate(xs, ys, at []float64) []float64 {
	var pl interp.PiecewiseLinear
	// Fit only fails on preconditions Dedup and Resample already hold.
	_ = pl.Fit(xs, ys)

	out := make([]float64, len(at))
	for i, x := range at {
		out[i] = pl.Predict(x)
	}
	return out
}
