package telemetry

import "fmt"

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPreyExtinct      BookmarkType = "prey_extinct"
	BookmarkPredatorExtinct  BookmarkType = "predator_extinct"
	BookmarkPreyCrash        BookmarkType = "prey_crash"
	BookmarkPredatorRecovery BookmarkType = "predator_recovery"
	BookmarkStableEcosystem  BookmarkType = "stable_ecosystem"
)

// Detection thresholds. The ocean is small, so absolute floors are low.
const (
	crashFraction     = 0.30 // Prey drop from recent peak
	crashMinDrop      = 3    // Minimum prey lost for a crash
	recoveryMaxLow    = 3    // Predator low point that can recover
	recoveryFactor    = 3
	recoveryMin       = 6
	stableMinPrey     = 5
	stableMinPred     = 2
	stableLookback    = 4
	stableCV2         = 0.04 // CV^2 < 0.04 means CV < 0.2
	stableTriggerRuns = 5
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
	Description string       `csv:"description"`
}

// KeyVals returns the bookmark as alternating keys and values for
// structured logging.
func (b Bookmark) KeyVals() []any {
	return []any{"type", string(b.Type), "tick", b.Tick, "description", b.Description}
}

// BookmarkDetector detects interesting moments in a run.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPredMin      int  // minimum predator count in recent history
	recentPreyPeak     int  // peak prey count in recent history
	stableWindowsCount int  // consecutive windows with stable populations
	preyExtinct        bool // extinction bookmarks fire once
	predExtinct        bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < stableTriggerRuns {
		historySize = stableTriggerRuns
	}
	return &BookmarkDetector{
		history:       make([]WindowStats, historySize),
		historySize:   historySize,
		recentPredMin: -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkExtinction(stats); b != nil {
		bookmarks = append(bookmarks, b...)
	}

	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkPredatorRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkPreyCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	if b := bd.checkStableEcosystem(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Track predator minimum and prey peak
	if bd.recentPredMin < 0 || stats.Predators < bd.recentPredMin {
		bd.recentPredMin = stats.Predators
	}
	if stats.Prey > bd.recentPreyPeak {
		bd.recentPreyPeak = stats.Prey
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n latest windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	size := bd.historyIdx
	if bd.historyFull {
		size = bd.historySize
	}
	if n > size {
		n = size
	}
	out := make([]WindowStats, n)
	for i := 0; i < n; i++ {
		idx := (bd.historyIdx - n + i + bd.historySize) % bd.historySize
		out[i] = bd.history[idx]
	}
	return out
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) []Bookmark {
	var out []Bookmark
	if stats.Prey == 0 && !bd.preyExtinct {
		bd.preyExtinct = true
		out = append(out, Bookmark{
			Type:        BookmarkPreyExtinct,
			Tick:        stats.WindowEnd,
			Description: "Prey died out",
		})
	}
	if stats.Predators == 0 && !bd.predExtinct {
		bd.predExtinct = true
		out = append(out, Bookmark{
			Type:        BookmarkPredatorExtinct,
			Tick:        stats.WindowEnd,
			Description: "Predators died out",
		})
	}
	return out
}

func (bd *BookmarkDetector) checkPredatorRecovery(stats WindowStats) *Bookmark {
	if bd.recentPredMin <= 0 || bd.recentPredMin > recoveryMaxLow {
		return nil
	}

	threshold := bd.recentPredMin * recoveryFactor
	if stats.Predators >= threshold && stats.Predators >= recoveryMin {
		// Reset the minimum after triggering
		oldMin := bd.recentPredMin
		bd.recentPredMin = stats.Predators

		return &Bookmark{
			Type:        BookmarkPredatorRecovery,
			Tick:        stats.WindowEnd,
			Description: fmt.Sprintf("Predator population recovered from %d to %d", oldMin, stats.Predators),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPreyCrash(stats WindowStats) *Bookmark {
	if bd.recentPreyPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Prey)/float64(bd.recentPreyPeak)
	if dropPercent > crashFraction && stats.Prey <= bd.recentPreyPeak-crashMinDrop {
		// Reset peak after crash
		oldPeak := bd.recentPreyPeak
		bd.recentPreyPeak = stats.Prey

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Tick:        stats.WindowEnd,
			Description: fmt.Sprintf("Prey crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Prey),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	// Need both populations present
	if stats.Prey < stableMinPrey || stats.Predators < stableMinPred {
		bd.stableWindowsCount = 0
		return nil
	}

	window := bd.recent(stableLookback)
	if len(window) < stableLookback {
		return nil
	}

	var preySum, predSum float64
	for _, h := range window {
		preySum += float64(h.Prey)
		predSum += float64(h.Predators)
	}
	n := float64(len(window))
	preyMean := preySum / n
	predMean := predSum / n

	var preyVar, predVar float64
	for _, h := range window {
		preyDiff := float64(h.Prey) - preyMean
		predDiff := float64(h.Predators) - predMean
		preyVar += preyDiff * preyDiff
		predVar += predDiff * predDiff
	}
	preyVar /= n
	predVar /= n

	preyCV2 := preyVar / (preyMean * preyMean)
	predCV2 := predVar / (predMean * predMean)

	if preyCV2 < stableCV2 && predCV2 < stableCV2 {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == stableTriggerRuns {
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Tick:        stats.WindowEnd,
			Description: fmt.Sprintf("Stable ecosystem with %d prey, %d predators over %d windows", stats.Prey, stats.Predators, stableTriggerRuns),
		}
	}

	return nil
}
