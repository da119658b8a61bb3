// Package handedness infers which hand operates a touchscreen from where taps
// land on full-width interactive elements.
//
// Each pointer event runs through an ordered chain of named stages. Events
// that pass every stage contribute their normalized horizontal position, in
// [-1, +1], to a running tally whose mean is the handedness score: negative
// leans left, positive leans right.
package handedness

import "sync"

// Tally is the read view of the accumulator.
type Tally struct {
	Count int
	Sum   float64
	Score float64
}

func newTally(count int, sum float64) Tally {
	t := Tally{Count: count, Sum: sum}
	if count > 0 {
		t.Score = sum / float64(count)
	}
	return t
}

// Hand interprets the score's sign.
func (t Tally) Hand() Hand {
	return HandFromScore(t.Score)
}

// Scorer classifies pointer events and accumulates admitted positions.
// It is safe for concurrent use; each Record is a single atomic update.
type Scorer struct {
	cfg Config

	mu    sync.Mutex
	count int
	sum   float64
}

// New creates a Scorer with default thresholds overridden by opts.
func New(opts ...Option) *Scorer {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Scorer{cfg: cfg}
}

// Config returns the thresholds the scorer was built with.
func (s *Scorer) Config() Config {
	return s.cfg
}

// Classify decides whether ev is conclusive evidence. It never mutates the
// tally.
func (s *Scorer) Classify(ev PointerEvent, env Environment) Decision {
	return classify(s.cfg, ev, env)
}

// Record classifies ev and folds an admitted position into the tally. The
// returned tally reflects the state after the call; rejected events leave it
// untouched.
func (s *Scorer) Record(ev PointerEvent, env Environment) (Decision, Tally) {
	d := classify(s.cfg, ev, env)

	s.mu.Lock()
	defer s.mu.Unlock()
	if d.Admitted {
		s.count++
		s.sum += d.Position
	}
	return d, newTally(s.count, s.sum)
}

// Tally returns the current accumulator state.
func (s *Scorer) Tally() Tally {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newTally(s.count, s.sum)
}

// Reset discards the tally. The scorer never calls this itself.
func (s *Scorer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count = 0
	s.sum = 0
}
