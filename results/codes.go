package results

import (
	"errors"
	"fmt"
	"sort"
)

// Code is a single immutable RAMP result code. The code string follows the
// C.MS.SS format: category digit, mid segment grouping a family of related
// results, and a sub segment for the specific result.
type Code struct {
	code        string
	category    Category
	description string
}

// String returns the compact code string, e.g. "2.01.00". This is the only
// representation that goes on the wire.
func (c Code) String() string { return c.code }

// Category returns the outcome class the code belongs to.
func (c Code) Category() Category { return c.category }

// Description returns the human-readable meaning of the code.
func (c Code) Description() string { return c.description }

// ErrUnknownCode is returned by Lookup for code strings outside the catalog.
var ErrUnknownCode = errors.New("ramp: unknown result code")

// catalog indexes every defined code by its code string. Populated through
// define during package init and read-only afterwards, so concurrent lookups
// need no synchronization.
var catalog = map[string]Code{}

func define(code string, category Category, description string) Code {
	c := Code{code: code, category: category, description: description}
	catalog[code] = c
	return c
}

// --- Success (1.xx.xx) ---
var (
	GenericSuccess = define("1.00.00", Success, "Operation completed successfully.")
	Connected      = define("1.01.00", Success, "Connection established successfully.")
	Disconnected   = define("1.02.00", Success, "Disconnect acknowledged; session closed.")
	UpdateApplied  = define("1.03.00", Success, "Update instructions applied.")
	HeartbeatOK    = define("1.06.00", Success, "Heartbeat received and accepted.")
)

// --- Client errors (2.xx.xx) ---
// 2.01.* is the malformed-message family, 2.02.* the auth family.
var (
	MalformedMessage    = define("2.01.00", ClientError, "Message structure invalid or incomplete.")
	UnknownType         = define("2.01.01", ClientError, "Message type not recognized.")
	MissingField        = define("2.01.02", ClientError, "Required payload field missing.")
	Unauthorized        = define("2.02.00", ClientError, "Sender not authorized for this operation.")
	UnknownController   = define("2.02.01", ClientError, "Local Controller is not registered.")
	DuplicateConnection = define("2.03.00", ClientError, "Connection already established for this controller.")
)

// --- Server errors (3.xx.xx) ---
var (
	GenericServerError = define("3.00.00", ServerError, "Internal error while processing the message.")
	DispatchFailure    = define("3.01.00", ServerError, "Message could not be routed to a handler.")
	Overloaded         = define("3.02.00", ServerError, "Controller temporarily unable to process messages.")
)

// --- Action required (4.xx.xx) ---
var (
	ReconnectRequired = define("4.01.00", ActionRequired, "Session state lost; controller must re-handshake.")
	UpgradeRequired   = define("4.02.00", ActionRequired, "Result table version unsupported; upgrade required.")
)

// --- Custom (5.xx.xx) ---
var (
	GenericCustom = define("5.00.00", Custom, "Reserved for deployment-specific results.")
)

// Lookup resolves a wire code string to its catalog entry. Unknown codes are
// reported, never defaulted.
func Lookup(code string) (Code, error) {
	c, ok := catalog[code]
	if !ok {
		return Code{}, fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	return c, nil
}

// All returns every catalog entry ordered by code string.
func All() []Code {
	codes := make([]Code, 0, len(catalog))
	for _, c := range catalog {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].code < codes[j].code })
	return codes
}
