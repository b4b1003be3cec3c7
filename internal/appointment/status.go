package appointment

import "strings"

// Status is the lifecycle tag of an appointment as sent by the booking backend.
// Values other than the known constants are carried through unchanged.
type Status string

// Known appointment statuses.
const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// BadgeVariant selects the visual treatment of a status badge.
type BadgeVariant int

const (
	// BadgeOther is the fallback treatment (blue) for unrecognized statuses.
	BadgeOther BadgeVariant = iota
	// BadgePending is the yellow treatment.
	BadgePending
	// BadgeConfirmed is the green treatment.
	BadgeConfirmed
	// BadgeCancelled is the red treatment.
	BadgeCancelled
)

// String returns the colour name of the badge variant.
func (v BadgeVariant) String() string {
	switch v {
	case BadgePending:
		return "yellow"
	case BadgeConfirmed:
		return "green"
	case BadgeCancelled:
		return "red"
	case BadgeOther:
		return "blue"
	default:
		return "blue"
	}
}

// normalized lower-cases and trims the status for comparison.
func (s Status) normalized() Status {
	return Status(strings.ToLower(strings.TrimSpace(string(s))))
}

// MarshalText encodes the variant as its colour name.
func (v BadgeVariant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Known reports whether s is one of pending, confirmed or cancelled.
func (s Status) Known() bool {
	switch s.normalized() {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Badge maps the status to its badge variant: confirmed is green, pending yellow,
// cancelled red, and anything else blue.
func (s Status) Badge() BadgeVariant {
	switch s.normalized() {
	case StatusConfirmed:
		return BadgeConfirmed
	case StatusPending:
		return BadgePending
	case StatusCancelled:
		return BadgeCancelled
	default:
		return BadgeOther
	}
}

func (s Status) String() string { return string(s) }
