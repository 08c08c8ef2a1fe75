package csrf

// Result is the outcome of Check.
type Result int

const (
	ResultValid Result = iota
	ResultMissingInput
	ResultMalformed
	ResultExpired
	ResultMismatch
)

func (r Result) String() string {
	switch r {
	case ResultValid:
		return "valid"
	case ResultMissingInput:
		return "missing_input"
	case ResultMalformed:
		return "malformed"
	case ResultExpired:
		return "expired"
	case ResultMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}
