package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNowMillis_UsesClockReading(t *testing.T) {
	c := NewMockClockMillis(123456)

	assert.Equal(t, int64(123456), NowMillis(c))

	c.Advance(2 * time.Second)
	assert.Equal(t, int64(125456), NowMillis(c))
}

func TestMockClock_Since(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMockClock(start)
	c.SetTime(start.Add(time.Minute))

	assert.Equal(t, time.Minute, c.Since(start))
}

func TestRealClock_NowMillisIsPositive(t *testing.T) {
	assert.Positive(t, NowMillis(NewRealClock()))
}
