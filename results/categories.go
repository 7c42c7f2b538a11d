// Package results defines the RAMP result-code vocabulary: the category
// enumeration, the process-wide code catalog, the acknowledgment envelope
// that reports outcomes back to a sender, and the result-table version rule.
// It is a pure data layer; transports and session managers consume it.
package results

// Category is the coarse outcome class of a result code. The category
// ordinal is also the leading digit of every code string in its domain.
type Category int

const (
	Success Category = iota + 1
	ClientError
	ServerError
	ActionRequired
	Custom
)

func (c Category) String() string {
	switch c {
	case Success:
		return "SUCCESS"
	case ClientError:
		return "CLIENT_ERROR"
	case ServerError:
		return "SERVER_ERROR"
	case ActionRequired:
		return "ACTION_REQUIRED"
	case Custom:
		return "CUSTOM"
	}
	return "UNKNOWN"
}
