package drop

import (
	"errors"
	"math"
	"sort"
)

// Goal selects what a Monte Carlo trial measures.
type Goal string

const (
	// Seconds until the first copy of the target drops.
	GoalFirstDrop Goal = "first_drop"
	// Number of target drops within the fixed time budget.
	GoalFixedBudget Goal = "fixed_budget"
)

// ErrZeroRate reports a simulation target whose drop rate is zero; a
// first-drop trial for it would never terminate.
var ErrZeroRate = errors.New("target has zero drop rate")

// ErrExcessiveWork reports a fixed-budget run whose trials * events product
// exceeds maxTotalEvents.
var ErrExcessiveWork = errors.New("simulation work exceeds limit")

// maxTotalEvents caps the total inner iterations of one fixed-budget run so a
// single request cannot pin the CPU with an arbitrarily large time budget.
const maxTotalEvents = 100_000_000

// SimParams describes one simulation run against an existing model.
type SimParams struct {
	Target  string  // item name to track
	Seconds float64 // time budget, used by GoalFixedBudget
	Trials  int
	Seed    uint64 // 0 selects the crypto source
}

// SimStats summarizes simulation results. First-drop samples are in
// seconds; fixed-budget samples are drop counts.
type SimStats struct {
	Mean    float64   `json:"mean"`
	Var     float64   `json:"var"`
	StdDev  float64   `json:"stddev"`
	P50     float64   `json:"p50"`
	P90     float64   `json:"p90"`
	P99     float64   `json:"p99"`
	Samples []float64 `json:"-"`
}

// Simulate runs trials of the given goal and summarizes the samples.
// Each event succeeds with probability 1-e^(-expectedPerEvent), the
// per-event analogue of the analytic Poisson model, so the simulated mean
// should track ExpectedTimeToFirst for the same target.
func (m Model) Simulate(p SimParams, goal Goal) (SimStats, error) {
	if p.Trials <= 0 {
		return SimStats{}, nil
	}
	perEvent, err := m.ExpectedPerEvent(p.Target)
	if err != nil {
		return SimStats{}, err
	}
	pe := 1 - math.Exp(-perEvent)

	var src Source
	if p.Seed != 0 {
		src = NewSeededSource(p.Seed)
	} else {
		src = DefaultSource()
	}

	samples := make([]float64, p.Trials)
	switch goal {
	case GoalFixedBudget:
		// Clamp and bound in float space: int() of an oversized float is
		// unspecified, and !(>0) also rejects NaN seconds.
		events := math.Floor(p.Seconds * m.cad.EventsPerSecond())
		if !(events > 0) {
			events = 0
		}
		if events*float64(p.Trials) > maxTotalEvents {
			return SimStats{}, ErrExcessiveWork
		}
		budget := int(events)
		for i := range samples {
			count := 0
			for e := 0; e < budget; e++ {
				if src.Float64() < pe {
					count++
				}
			}
			samples[i] = float64(count)
		}
	default: // GoalFirstDrop
		if pe <= 0 {
			return SimStats{}, ErrZeroRate
		}
		for i := range samples {
			events := 0
			for {
				events++
				if src.Float64() < pe {
					break
				}
			}
			samples[i] = float64(events) * m.cad.SecondsPerEvent
		}
	}
	return summarize(samples), nil
}

// summarize computes mean/variance/percentiles for the samples.
func summarize(xs []float64) SimStats {
	n := len(xs)
	if n == 0 {
		return SimStats{}
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}
	mean := sum / float64(n)

	var acc float64
	for _, v := range xs {
		d := v - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	percentile := func(p float64) float64 {
		if p <= 0 || n == 1 {
			return cp[0]
		}
		if p >= 1 {
			return cp[n-1]
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return cp[i]
		}
		return cp[i]*(1-f) + cp[i+1]*f
	}

	return SimStats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}
