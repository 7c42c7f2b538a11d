package protocol

import (
	"encoding/json"
	"time"
)

// Message is the contract every RAMP message satisfies. A message knows its
// symbolic type, the pub/sub topic it is routed on, and how to build its
// wire payload. LCID and Timestamp are fixed at construction.
type Message interface {
	// Type returns the symbolic message type identifier (FHM, HM, DCM, UM).
	Type() string

	// Topic returns the pub/sub topic the message is published on.
	Topic() string

	// LCID returns the Local Controller this message originates from or
	// targets.
	LCID() string

	// Timestamp returns the construction time in epoch milliseconds.
	Timestamp() int64

	// Payload builds a fresh JSON-serializable body. The body never carries
	// the LC ID or timestamp unless the concrete type adds them itself.
	Payload() any
}

// attrs carries the fields common to every message. Embedded by value so the
// variants stay immutable after construction.
type attrs struct {
	lcID string
	ts   int64
}

func newAttrs(lcID string) attrs {
	return attrs{lcID: lcID, ts: time.Now().UnixMilli()}
}

func (a attrs) LCID() string     { return a.lcID }
func (a attrs) Timestamp() int64 { return a.ts }

// Encode serializes the message payload to its compact wire form.
func Encode(m Message) ([]byte, error) {
	return json.Marshal(m.Payload())
}
