package session

// Phase is the state of the edit-session pipeline.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseParsing
	PhaseOverlaying
	PhaseEditing
	PhaseValidating
	PhaseApplying
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseParsing:
		return "parsing"
	case PhaseOverlaying:
		return "overlaying"
	case PhaseEditing:
		return "editing"
	case PhaseValidating:
		return "validating"
	case PhaseApplying:
		return "applying"
	default:
		return "unknown"
	}
}
