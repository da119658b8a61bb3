package handedness

// Stage names one step of the classification chain.
type Stage string

// Stages in evaluation order.
const (
	StageTouch       Stage = "touch"
	StageViewport    Stage = "viewport"
	StageSynthetic   Stage = "synthetic"
	StageFullWidth   Stage = "full_width"
	StageInteractive Stage = "interactive"
	StageVisible     Stage = "visible"
	StagePosition    Stage = "position"
	StageCenter      Stage = "center"
)

// Decision is the outcome of classifying one event. Admitted decisions carry
// the normalized position; rejected ones name the stage that failed.
type Decision struct {
	Admitted bool
	Position float64
	Stage    Stage
}

// Rejected builds a rejection by stage.
func Rejected(stage Stage) Decision {
	return Decision{Stage: stage}
}

// Admitted builds an admission at the given normalized position.
func Admitted(position float64) Decision {
	return Decision{Admitted: true, Position: position}
}
