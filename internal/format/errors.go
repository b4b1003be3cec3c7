package format

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by parsing and formatter construction.
// They can be compared with errors.Is().
var (
	// ErrUnparseable indicates a date, clock or timestamp string in an unsupported shape.
	ErrUnparseable = constError("unparseable date or time")

	// ErrUnknownTimezone indicates an IANA zone name that could not be loaded.
	ErrUnknownTimezone = constError("unknown timezone")

	// ErrInvalidLocale indicates a locale string that is not a valid BCP 47 tag.
	ErrInvalidLocale = constError("invalid locale")
)
