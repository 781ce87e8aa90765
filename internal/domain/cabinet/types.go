package cabinet

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusUsing     Status = "USING"
	StatusBroken    Status = "BROKEN"
	StatusOverdue   Status = "OVERDUE"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusUsing, StatusBroken, StatusOverdue:
		return true
	default:
		return false
	}
}

// RequiresHolder reports whether a cabinet in this status must have a holder.
func (s Status) RequiresHolder() bool {
	return s == StatusUsing || s == StatusOverdue
}
