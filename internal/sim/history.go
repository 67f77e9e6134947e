package sim

import "github.com/vlfom/predator-prey/internal/core"

// History keeps the rendered ocean after each tick. When a limit is set the
// oldest frames are dropped first.
type History struct {
	frames  []core.Snapshot
	limit   int
	dropped int
}

// NewHistory creates a history holding at most limit frames (0 = unlimited).
func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit}
}

// Append records a frame.
func (h *History) Append(s core.Snapshot) {
	h.frames = append(h.frames, s)
	if h.limit > 0 && len(h.frames) > h.limit {
		over := len(h.frames) - h.limit
		h.frames = append(h.frames[:0], h.frames[over:]...)
		h.dropped += over
	}
}

// Len returns the number of frames kept.
func (h *History) Len() int { return len(h.frames) }

// Dropped returns how many frames were discarded to honour the limit.
func (h *History) Dropped() int { return h.dropped }

// At returns frame i, where 0 is the oldest kept frame.
func (h *History) At(i int) core.Snapshot { return h.frames[i] }

// Last returns the newest frame and false when the history is empty.
func (h *History) Last() (core.Snapshot, bool) {
	if len(h.frames) == 0 {
		return core.Snapshot{}, false
	}
	return h.frames[len(h.frames)-1], true
}
