package hal

import (
	"time"
)

// TicksDiff returns a-b in milliseconds, correct across one wrap of the counter.
func TicksDiff(a, b uint32) int {
	return int(int32(a - b))
}

// SystemClock counts milliseconds from its creation on the monotonic clock.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Ticks() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

func (c *SystemClock) Sleep(ms int) {
	if ms <= 0 {
		return
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
