package output

import (
	"math"
	"strconv"
	"time"

	"github.com/TheCacophonyProject/battery-dva/dva"
)

// Float encodes non finite values as JSON null.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// Document is the persisted form of a dva.Result.
type Document struct {
	RunID       string           `json:"run_id" yaml:"run_id"`
	Source      string           `json:"source" yaml:"source"`
	CreatedAt   time.Time        `json:"created_at" yaml:"created_at"`
	Mode        dva.Mode         `json:"mode" yaml:"mode"`
	Discharge   bool             `json:"discharge" yaml:"discharge"`
	NoiseLevel  Float            `json:"noise_lvl" yaml:"noise_lvl"`
	Time        []Float          `json:"time" yaml:"time"`
	Charge      []Float          `json:"Charge" yaml:"Charge"`
	SOC         []Float          `json:"SOC" yaml:"SOC"`
	DVA         []Float          `json:"DVA,omitempty" yaml:"DVA,omitempty"`
	DVAQnorm    []Float          `json:"DVA_Qnorm,omitempty" yaml:"DVA_Qnorm,omitempty"`
	ICA         []Float          `json:"ICA,omitempty" yaml:"ICA,omitempty"`
	Diagnostics []dva.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// NewDocument wraps res for writing. source is the measurement it came from.
func NewDocument(runID, source string, res *dva.Result) *Document {
	return &Document{
		RunID:       runID,
		Source:      source,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		Mode:        res.Mode,
		Discharge:   res.Discharge,
		NoiseLevel:  Float(res.NoiseLevel),
		Time:        toFloats(res.Time),
		Charge:      toFloats(res.Charge),
		SOC:         toFloats(res.SOC),
		DVA:         toFloats(res.DVA),
		DVAQnorm:    toFloats(res.DVAQnorm),
		ICA:         toFloats(res.ICA),
		Diagnostics: res.Diagnostics,
	}
}

func toFloats(s []float64) []Float {
	if s == nil {
		return nil
	}
	out := make([]Float, len(s))
	for i, v := range s {
		out[i] = Float(v)
	}
	return out
}
