package handedness

const (
	notInert       = `:not([inert]):not([inert] *)`
	notNegTabIndex = `:not([tabindex^="-"])`
	notDisabled    = `:not(:disabled)`
)

// FocusableSelectors is the fixed set of interactive element kinds a tap
// must land on to count.
var FocusableSelectors = []string{
	`a[href]` + notInert + notNegTabIndex,
	`area[href]` + notInert + notNegTabIndex,
	`input:not([type="hidden"]):not([type="radio"])` + notInert + notNegTabIndex + notDisabled,
	`input[type="radio"]` + notInert + notNegTabIndex + notDisabled,
	`select` + notInert + notNegTabIndex + notDisabled,
	`textarea` + notInert + notNegTabIndex + notDisabled,
	`button` + notInert + notNegTabIndex + notDisabled,
	`details` + notInert + ` > summary:first-of-type` + notNegTabIndex,
	`iframe` + notInert + notNegTabIndex,
	`audio[controls]` + notInert + notNegTabIndex,
	`video[controls]` + notInert + notNegTabIndex,
	`[contenteditable]` + notInert + notNegTabIndex,
	`[tabindex]` + notInert + notNegTabIndex,
}
