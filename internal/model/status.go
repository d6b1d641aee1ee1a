package model

// Status is the classified outcome of one report operation.
type Status int

const (
	// StatusSucceeded means clicast exited with code 0.
	StatusSucceeded Status = iota

	// StatusSkipped means the operation was not requested.
	// A skipped operation counts as successful.
	StatusSkipped

	// StatusFailed means clicast exited non-zero or could not be started.
	StatusFailed

	// StatusTimedOut means clicast exceeded its time bound and was killed.
	StatusTimedOut

	// StatusInterrupted means the run was cancelled by the user while
	// the operation was in progress.
	StatusInterrupted
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	case StatusTimedOut:
		return "timed out"
	case StatusInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// OK reports whether the status counts towards overall success.
func (s Status) OK() bool {
	return s == StatusSucceeded || s == StatusSkipped
}

// Icon returns the emoji used for the status in Markdown output.
func (s Status) Icon() string {
	switch s {
	case StatusSucceeded:
		return "✅"
	case StatusSkipped:
		return "⏭️"
	case StatusFailed:
		return "❌"
	case StatusTimedOut:
		return "⏱️"
	case StatusInterrupted:
		return "🛑"
	default:
		return "❔"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Unknown values decode to StatusFailed.
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{StatusSucceeded, StatusSkipped, StatusFailed, StatusTimedOut, StatusInterrupted} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	*s = StatusFailed
	return nil
}
