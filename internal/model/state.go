package model

// UIState is the controller's current workflow state.
type UIState int

// Workflow states. Exactly one is active at a time.
const (
	StateIdle UIState = iota
	StatePreviewShown
	StateSubmitting
	StateResultsShown
	StateError
)

func (s UIState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreviewShown:
		return "preview"
	case StateSubmitting:
		return "submitting"
	case StateResultsShown:
		return "results"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
