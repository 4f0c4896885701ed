package measurement

import (
	"slices"

	"github.com/TheCacophonyProject/battery-dva/validation"
)

// Series holds a battery measurement as three equal length columns.
// Time is in seconds, Voltage in volts and Current in amperes.
type Series struct {
	Time    []float64
	Voltage []float64
	Current []float64
}

// New returns a Series over the given columns. The slices are not copied.
func New(time, voltage, current []float64) (*Series, error) {
	if len(voltage) != len(time) {
		return nil, validation.New("voltage", len(voltage), "column length differs from time column")
	}
	if len(current) != len(time) {
		return nil, validation.New("current", len(current), "column length differs from time column")
	}
	return &Series{Time: time, Voltage: voltage, Current: current}, nil
}

func (s *Series) Len() int {
	return len(s.Time)
}

func (s *Series) Clone() *Series {
	return &Series{
		Time:    slices.Clone(s.Time),
		Voltage: slices.Clone(s.Voltage),
		Current: slices.Clone(s.Current),
	}
}
