package telemetry

import "github.com/vlfom/predator-prey/internal/core"

// Collector accumulates tick events within fixed windows and produces
// WindowStats.
type Collector struct {
	window      int
	windowStart int

	// Event counters for current window
	preyBorn         int
	predatorsBorn    int
	preyEaten        int
	predatorsStarved int
	spawnsFailed     int
	moves            int
	blocked          int
}

// NewCollector creates a collector with windows of the given length in ticks.
func NewCollector(window int) *Collector {
	if window < 1 {
		window = 1
	}
	return &Collector{window: window}
}

// Window returns the window length in ticks.
func (c *Collector) Window() int {
	return c.window
}

// Record adds one tick's events to the current window.
func (c *Collector) Record(ev core.TickEvents) {
	c.preyBorn += ev.PreyBorn
	c.predatorsBorn += ev.PredatorsBorn
	c.preyEaten += ev.PreyEaten
	c.predatorsStarved += ev.PredatorsStarved
	c.spawnsFailed += ev.SpawnsFailed
	c.moves += ev.Moves
	c.blocked += ev.Blocked
}

// ShouldFlush reports whether the window ending at tick is complete.
func (c *Collector) ShouldFlush(tick int) bool {
	return tick-c.windowStart >= c.window
}

// Pending reports whether ticks have been recorded since the last flush.
func (c *Collector) Pending(tick int) bool {
	return tick > c.windowStart
}

// Flush closes the current window at tick and starts a new one.
func (c *Collector) Flush(tick int, counts core.Counts) WindowStats {
	stats := WindowStats{
		WindowStart:      c.windowStart,
		WindowEnd:        tick,
		Prey:             counts.Prey,
		Predators:        counts.Predators,
		PreyBorn:         c.preyBorn,
		PredatorsBorn:    c.predatorsBorn,
		PreyEaten:        c.preyEaten,
		PredatorsStarved: c.predatorsStarved,
		SpawnsFailed:     c.spawnsFailed,
		Moves:            c.moves,
		Blocked:          c.blocked,
	}
	if turns := c.moves + c.blocked; turns > 0 {
		stats.MoveRate = float64(c.moves) / float64(turns)
	}

	*c = Collector{window: c.window, windowStart: tick}
	return stats
}
