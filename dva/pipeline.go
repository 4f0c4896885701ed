/*
battery-dva - Differential voltage analysis of battery measurements
Copyright (C) 2026, The Cacophony Project

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package dva

import (
	"fmt"

	"github.com/TheCacophonyProject/battery-dva/measurement"
	"github.com/TheCacophonyProject/battery-dva/smoothing"
)

// Result is the outcome of a calculation. DVA and DVAQnorm are set in DVA
// mode, ICA in ICA mode. Time, Charge and SOC have OutputSize elements, the
// curves one less.
type Result struct {
	Mode       Mode
	Time       []float64
	Charge     []float64
	SOC        []float64
	DVA        []float64
	DVAQnorm   []float64
	ICA        []float64
	NoiseLevel float64
	// Discharge is set when the voltage falls over the measurement.
	Discharge   bool
	Diagnostics []Diagnostic
}

// CalculateFile reads a measurement file and calculates its curve.
func CalculateFile(path string, cfg Config) (*Result, error) {
	s, err := measurement.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Calculate(s, cfg)
}

// Calculate runs the DVA/ICA pipeline over s. The configuration is checked
// before any data is touched and s is never modified.
func Calculate(s *measurement.Series, cfg Config) (*Result, error) {
	if err := cfg.ValidateFor(s.Len()); err != nil {
		return nil, err
	}
	size := cfg.size(s.Len())

	rs, err := measurement.Resample(s, size)
	if err != nil {
		return nil, err
	}

	voltage, current := rs.Voltage, rs.Current
	if cfg.Location.SmoothsVoltage() {
		if voltage, err = smoothing.Smooth(voltage, rs.Time, cfg.Method, cfg.Parameter); err != nil {
			return nil, fmt.Errorf("smoothing voltage: %w", err)
		}
	}
	if cfg.Location.SmoothsCurrent() {
		if current, err = smoothing.Smooth(current, rs.Time, cfg.Method, cfg.Parameter); err != nil {
			return nil, fmt.Errorf("smoothing current: %w", err)
		}
	}

	var c Curves
	c.DVA = Differentiate(rs.Time, voltage, current)
	if cfg.Mode == ModeICA {
		c.ICA = Reciprocal(c.DVA)
	}
	c.Charge = CumulativeCharge(rs.Time, current)
	c.SOC = StateOfCharge(c.Charge)
	c.DVAQnorm = NormaliseByCharge(c.DVA, c.Charge)

	if cfg.Location.SmoothsOutput() && size > 1 {
		curveTime := rs.Time[1:]
		if c.DVA, err = smoothing.Smooth(c.DVA, curveTime, cfg.Method, cfg.Parameter); err != nil {
			return nil, fmt.Errorf("smoothing DVA: %w", err)
		}
		if cfg.Mode == ModeICA {
			if c.ICA, err = smoothing.Smooth(c.ICA, curveTime, cfg.Method, cfg.Parameter); err != nil {
				return nil, fmt.Errorf("smoothing ICA: %w", err)
			}
		}
	}

	noise := NoiseLevel(c.DVA)
	oriented, discharge := Orient(c, voltage)

	res := &Result{
		Mode:        cfg.Mode,
		Time:        rs.Time,
		Charge:      oriented.Charge,
		SOC:         oriented.SOC,
		NoiseLevel:  noise,
		Discharge:   discharge,
		Diagnostics: CheckNoise(noise, cfg.NoiseUpper, cfg.NoiseLower),
	}
	if cfg.Mode == ModeICA {
		res.ICA = oriented.ICA
	} else {
		res.DVA = oriented.DVA
		res.DVAQnorm = oriented.DVAQnorm
	}
	return res, nil
}
