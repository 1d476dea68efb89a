package db

// EntryState is the collapsed processing state of a calendar entry. The
// external schema encodes the same information as a (content boolean,
// status label) pair; View derives that pair so no writer has to maintain
// the "content=true implies status=content_generated" invariant by hand.
type EntryState int

// Entry processing states.
const (
	StatePending EntryState = iota
	StateGenerated
	StateFailed
)

// Status labels used by the external store.
const (
	StatusScheduled        = "scheduled"
	StatusContentGenerated = "content_generated"
	StatusGenerationFailed = "generation_failed"
)

func (s EntryState) String() string {
	switch s {
	case StateGenerated:
		return "generated"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

// View returns the (content flag, status label) pair the external store
// expects for this state.
func (s EntryState) View() (contentGenerated bool, status string) {
	switch s {
	case StateGenerated:
		return true, StatusContentGenerated
	case StateFailed:
		return false, StatusGenerationFailed
	default:
		return false, StatusScheduled
	}
}

// StateOf maps a stored (flag, status) pair back onto the tagged state.
// The flag wins: a true flag is always StateGenerated regardless of label.
func StateOf(contentGenerated bool, status string) EntryState {
	if contentGenerated {
		return StateGenerated
	}
	if status == StatusGenerationFailed {
		return StateFailed
	}
	return StatePending
}
