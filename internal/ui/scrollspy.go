package ui

// DefaultThreshold is the visible fraction at which a section becomes active.
const DefaultThreshold = 0.3

// Observation is one intersection report for a section.
type Observation struct {
	Section      string
	Intersecting bool
	Ratio        float64
}

// ScrollSpy tracks the active navigation section from intersection
// observations. Observations are idempotent and the last qualifying one wins.
type ScrollSpy struct {
	Threshold float64
	active    string
}

// NewScrollSpy returns a spy using DefaultThreshold.
func NewScrollSpy() *ScrollSpy {
	return &ScrollSpy{Threshold: DefaultThreshold}
}

// Observe applies one observation and returns the active section.
func (s *ScrollSpy) Observe(o Observation) string {
	if o.Intersecting && o.Ratio >= s.Threshold {
		s.active = o.Section
	}
	return s.active
}

// ObserveAll applies a batch in delivery order.
func (s *ScrollSpy) ObserveAll(batch []Observation) string {
	for _, o := range batch {
		s.Observe(o)
	}
	return s.active
}

func (s *ScrollSpy) Active() string {
	return s.active
}
