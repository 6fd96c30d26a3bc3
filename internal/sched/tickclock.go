// internal/sched/tickclock.go

package sched

// TickClock is the logical clock of a simulation run. Ticks only advance
// when the scheduler or the running work asks for it, so runs are
// deterministic.
type TickClock struct {
	count int64
}

// NewTickClock creates a clock at tick zero.
func NewTickClock() *TickClock {
	return &TickClock{}
}

// Advance moves the clock forward by one tick.
func (c *TickClock) Advance() {
	c.count++
}

// Count returns the current tick.
func (c *TickClock) Count() int64 {
	return c.count
}
