package handedness

// Hand is the dominant hand suggested by a score.
type Hand string

const (
	HandUnknown Hand = "unknown"
	HandLeft    Hand = "left"
	HandRight   Hand = "right"
)

// HandFromScore reads the sign of score. A zero score, including the empty
// tally, is unknown.
func HandFromScore(score float64) Hand {
	switch {
	case score < 0:
		return HandLeft
	case score > 0:
		return HandRight
	default:
		return HandUnknown
	}
}
