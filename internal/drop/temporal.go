package drop

import "math"

// Event cadence defaults: each roll event yields 16 items on average and
// costs 2 wall-clock seconds (0.5 events per second).
const (
	DefaultItemsPerEvent   = 16.0
	DefaultSecondsPerEvent = 2.0
	DefaultCertainty       = 0.99
)

// Cadence fixes the real-time cost of roll events.
type Cadence struct {
	ItemsPerEvent   float64
	SecondsPerEvent float64
}

// DefaultCadence returns the standard event cadence.
func DefaultCadence() Cadence {
	return Cadence{ItemsPerEvent: DefaultItemsPerEvent, SecondsPerEvent: DefaultSecondsPerEvent}
}

// normalized replaces non-positive fields with the defaults so the model can
// never divide by zero.
func (c Cadence) normalized() Cadence {
	if c.ItemsPerEvent <= 0 {
		c.ItemsPerEvent = DefaultItemsPerEvent
	}
	if c.SecondsPerEvent <= 0 {
		c.SecondsPerEvent = DefaultSecondsPerEvent
	}
	return c
}

// EventsPerSecond derives the event rate from the per-event cost.
func (c Cadence) EventsPerSecond() float64 {
	return 1.0 / c.SecondsPerEvent
}

// Model projects a distribution onto the time axis. All outputs are finite
// except the explicit +Inf sentinel for zero-rate items; no method returns
// NaN for well-formed input.
type Model struct {
	dist Distribution
	cad  Cadence
}

// NewModel wraps a distribution with an event cadence.
func NewModel(dist Distribution, cad Cadence) Model {
	return Model{dist: dist, cad: cad.normalized()}
}

// Distribution exposes the underlying distribution.
func (m Model) Distribution() Distribution { return m.dist }

// ExpectedPerEvent is the expected number of copies of name one event yields.
func (m Model) ExpectedPerEvent(name string) (float64, error) {
	o, err := m.dist.Odds(name)
	if err != nil {
		return 0, err
	}
	return m.cad.ItemsPerEvent * o.Probability, nil
}

// ProbabilityWithin returns the Poisson chance of at least one success for
// name within the elapsed seconds, alongside the raw expected count lambda.
// Negative or NaN elapsed time counts as zero.
func (m Model) ProbabilityWithin(name string, seconds float64) (prob, lambda float64, err error) {
	perEvent, err := m.ExpectedPerEvent(name)
	if err != nil {
		return 0, 0, err
	}
	if !(seconds > 0) {
		seconds = 0
	}
	lambda = perEvent * m.cad.EventsPerSecond() * seconds
	return 1 - math.Exp(-lambda), lambda, nil
}

// ExpectedTimeToFirst is the mean seconds until the first copy of name
// drops; +Inf when the item's rate is zero.
func (m Model) ExpectedTimeToFirst(name string) (float64, error) {
	perEvent, err := m.ExpectedPerEvent(name)
	if err != nil {
		return 0, err
	}
	if perEvent <= 0 {
		return math.Inf(1), nil
	}
	return 1 / (perEvent * m.cad.EventsPerSecond()), nil
}

// TimeForCertainty is the seconds needed for the cumulative chance of name
// to reach certainty; +Inf at zero rate, ErrInvalidCertainty outside [0, 1).
func (m Model) TimeForCertainty(name string, certainty float64) (float64, error) {
	if certainty < 0 || certainty >= 1 || math.IsNaN(certainty) {
		return 0, ErrInvalidCertainty
	}
	perEvent, err := m.ExpectedPerEvent(name)
	if err != nil {
		return 0, err
	}
	if perEvent <= 0 {
		return math.Inf(1), nil
	}
	return -math.Log(1-certainty) / (perEvent * m.cad.EventsPerSecond()), nil
}

// TimeReport is the full time-domain summary for one item.
type TimeReport struct {
	ProbabilityPercent float64 // chance of at least one drop within the window
	ExpectedCount      float64 // lambda for the window
	TimeFirstSeconds   float64 // may be +Inf
	TimeCertaintySecs  float64 // seconds to reach DefaultCertainty; may be +Inf
	BasePercent        float64 // normalized probability as a percentage
	IndividualPercent  float64
	Raw                bool
	Blacklisted        bool
	Chance             float64
}

// AllInTime produces the TimeReport for every item in the distribution over
// the given window. Iterate with Names() for deterministic order.
func (m Model) AllInTime(seconds float64) map[string]TimeReport {
	out := make(map[string]TimeReport, m.dist.Len())
	for _, name := range m.dist.names {
		r, err := m.ReportFor(name, seconds)
		if err != nil {
			continue
		}
		out[name] = r
	}
	return out
}

// ReportFor builds the TimeReport for a single item.
func (m Model) ReportFor(name string, seconds float64) (TimeReport, error) {
	o, err := m.dist.Odds(name)
	if err != nil {
		return TimeReport{}, err
	}
	prob, lambda, err := m.ProbabilityWithin(name, seconds)
	if err != nil {
		return TimeReport{}, err
	}
	timeFirst, err := m.ExpectedTimeToFirst(name)
	if err != nil {
		return TimeReport{}, err
	}
	timeCert, err := m.TimeForCertainty(name, DefaultCertainty)
	if err != nil {
		return TimeReport{}, err
	}
	return TimeReport{
		ProbabilityPercent: prob * 100,
		ExpectedCount:      lambda,
		TimeFirstSeconds:   timeFirst,
		TimeCertaintySecs:  timeCert,
		BasePercent:        o.Probability * 100,
		IndividualPercent:  o.Individual * 100,
		Raw:                o.Raw,
		Blacklisted:        o.Blacklisted,
		Chance:             o.Chance,
	}, nil
}
