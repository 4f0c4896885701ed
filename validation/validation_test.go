package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("loading: %w", New("output_size", 0, "must be 1 or bigger"))
	assert.True(t, errors.Is(err, ErrInvalid))

	var verr *Error
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "output_size", verr.Field)
	assert.Equal(t, "invalid output_size (0): must be 1 or bigger", verr.Error())
}

func TestErrorWithoutValue(t *testing.T) {
	assert.Equal(t, "invalid time: not enough points", New("time", nil, "not enough points").Error())
}
