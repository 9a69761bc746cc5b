package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock(t *testing.T) {
	c := RealClock{}
	before := time.Now()
	got := c.Now()
	assert.False(t, got.Before(before.Add(-time.Second)))
}

func TestMockClockAdvance(t *testing.T) {
	c := &MockClock{}
	start := c.Now()
	c.Advance(5 * time.Second)
	assert.Equal(t, start.Add(5*time.Second), c.Now())
}
