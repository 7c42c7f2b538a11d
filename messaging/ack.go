package messaging

import (
	"errors"
	"fmt"

	"ramp/results"
)

// ErrIncompatibleVersion reports an acknowledgment whose result-table
// version cannot be trusted against the local catalog.
var ErrIncompatibleVersion = errors.New("ramp: incompatible result table version")

// decodeTrustedAck decodes an acknowledgment body, gates it on the version
// compatibility rule, and resolves the result code through the local
// catalog. The payload is returned even on version mismatch so callers can
// log what the remote claimed.
func decodeTrustedAck(data []byte) (*results.AckPayload, results.Code, error) {
	p, err := results.DecodeAckPayload(data)
	if err != nil {
		return nil, results.Code{}, err
	}
	if !results.IsCompatible(p.Version) {
		return p, results.Code{}, fmt.Errorf("%w: %q (local %s)", ErrIncompatibleVersion, p.Version, results.Version)
	}
	code, err := results.Lookup(p.Result)
	if err != nil {
		return p, results.Code{}, err
	}
	return p, code, nil
}
