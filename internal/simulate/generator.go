package simulate

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/dhand/internal/domain/model"
)

// Horizontal bands, as fractions of the target width, each bias draws from.
const (
	leftLow, leftHigh     = 0.05, 0.35
	rightLow, rightHigh   = 0.65, 0.95
	centerLow, centerHigh = 0.45, 0.55
	mixedRightShare       = 0.7
	targetHeight          = 48
	maxClientY            = 800
	phoneTouchPoints      = 5
)

// Generator produces taps on a full-width button of a phone-sized page.
type Generator struct {
	rng      *rand.Rand
	bias     Bias
	viewport float64
}

// NewGenerator creates a generator. The same seed yields the same taps.
func NewGenerator(bias Bias, viewport float64, seed uint64) *Generator {
	return &Generator{
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec // simulation, not security
		bias:     bias,
		viewport: viewport,
	}
}

// Next returns one tap with a fresh event id.
func (g *Generator) Next() model.Tap {
	return model.Tap{
		EventID: uuid.NewString(),
		ClientX: g.x(),
		ClientY: 1 + g.rng.Float64()*(maxClientY-1),
		Target: model.Element{
			Node:      model.Node{Tag: "button", Attributes: map[string]string{"type": "button"}},
			Ancestors: []model.Node{{Tag: "html"}, {Tag: "body"}, {Tag: "main"}},
			Width:     g.viewport,
			Height:    targetHeight,
		},
		Signals: model.Signals{
			DocumentClientWidth: g.viewport,
			InnerWidth:          g.viewport,
			HasTouchStart:       true,
			MaxTouchPoints:      phoneTouchPoints,
		},
	}
}

// Batch returns n taps.
func (g *Generator) Batch(n int) []model.Tap {
	taps := make([]model.Tap, n)
	for i := range taps {
		taps[i] = g.Next()
	}
	return taps
}

func (g *Generator) x() float64 {
	low, high := rightLow, rightHigh
	switch g.bias {
	case BiasLeft:
		low, high = leftLow, leftHigh
	case BiasCenter:
		low, high = centerLow, centerHigh
	case BiasMixed:
		if g.rng.Float64() >= mixedRightShare {
			low, high = leftLow, leftHigh
		}
	}
	// Keep x strictly positive so no tap looks keyboard-synthesized.
	return g.viewport * (low + g.rng.Float64()*(high-low))
}

// ExpectedHand is the hand a run with this bias should converge to.
func ExpectedHand(b Bias) string {
	switch b {
	case BiasLeft:
		return "left"
	case BiasRight, BiasMixed:
		return "right"
	default:
		return "unknown"
	}
}
