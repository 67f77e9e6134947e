package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a whole population time series.
type Summary struct {
	Ticks int // Last sampled tick

	PreyMean   float64
	PreyStdDev float64
	PreyCV     float64 // Coefficient of variation, 0 when the mean is 0
	PreyMin    int
	PreyMax    int

	PredMean   float64
	PredStdDev float64
	PredCV     float64
	PredMin    int
	PredMax    int

	PreyExtinctAt int // First tick with no prey, -1 if never
	PredExtinctAt int // First tick with no predators, -1 if never
}

// Survived reports whether both species lasted the whole run.
func (s Summary) Survived() bool {
	return s.PreyExtinctAt < 0 && s.PredExtinctAt < 0
}

// Coexisted returns the number of ticks during which both species lived.
func (s Summary) Coexisted() int {
	alive := s.Ticks
	if s.PreyExtinctAt >= 0 && s.PreyExtinctAt < alive {
		alive = s.PreyExtinctAt
	}
	if s.PredExtinctAt >= 0 && s.PredExtinctAt < alive {
		alive = s.PredExtinctAt
	}
	return alive
}

// Score ranks runs: longer coexistence first, then steadier populations.
// The stability term is in (0, 1] so it only breaks ties.
func (s Summary) Score() float64 {
	return float64(s.Coexisted()) + 1/(1+s.PreyCV+s.PredCV)
}

// Summarize computes population statistics over samples.
// Samples must be in tick order.
func Summarize(samples []Sample) Summary {
	sum := Summary{PreyExtinctAt: -1, PredExtinctAt: -1}
	if len(samples) == 0 {
		return sum
	}

	prey := make([]float64, len(samples))
	pred := make([]float64, len(samples))
	for i, s := range samples {
		prey[i] = float64(s.Prey)
		pred[i] = float64(s.Predators)
		if s.Prey == 0 && sum.PreyExtinctAt < 0 {
			sum.PreyExtinctAt = s.Tick
		}
		if s.Predators == 0 && sum.PredExtinctAt < 0 {
			sum.PredExtinctAt = s.Tick
		}
	}
	sum.Ticks = samples[len(samples)-1].Tick

	sum.PreyMean, sum.PreyStdDev = meanStdDev(prey)
	sum.PredMean, sum.PredStdDev = meanStdDev(pred)
	sum.PreyCV = cv(sum.PreyMean, sum.PreyStdDev)
	sum.PredCV = cv(sum.PredMean, sum.PredStdDev)

	sum.PreyMin, sum.PreyMax = int(floats.Min(prey)), int(floats.Max(prey))
	sum.PredMin, sum.PredMax = int(floats.Min(pred)), int(floats.Max(pred))

	return sum
}

func meanStdDev(x []float64) (mean, std float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

func cv(mean, std float64) float64 {
	if mean == 0 {
		return 0
	}
	return std / mean
}
