package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.0, Round2(9.999))
	assert.Equal(t, 9.99, Round2(9.994))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, -0.01, Round2(-0.01))
}

func TestLineTotal(t *testing.T) {
	assert.InDelta(t, 20.00, LineTotal(2, 10.00, 0), 1e-9)
	assert.InDelta(t, 4.00, LineTotal(1, 5.00, 1.00), 1e-9)
	// 3 * 1.15 drifts in float arithmetic; decimal keeps it exact.
	assert.InDelta(t, 3.45, LineTotal(3, 1.15, 0), 1e-9)
	assert.InDelta(t, 0.00, LineTotal(1, 1.00, 1.00), 1e-9)
}
