package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidAck reports an acknowledgment built without its required
// correlation data.
var ErrInvalidAck = errors.New("ramp: invalid acknowledgment")

// Acknowledgment reports the outcome of processing a RAMP message. It
// correlates a result code to the original message by type and timestamp and
// records the result-table version in effect. Built exactly once per inbound
// message, serialized, and discarded; all fields are fixed at construction.
type Acknowledgment struct {
	result     Code
	msgType    string
	originalTS int64
	version    string
	ackTS      int64
}

// NewAcknowledgment builds an acknowledgment stamped with the active table
// version and the current time in epoch milliseconds.
func NewAcknowledgment(result Code, msgType string, originalTS int64) (*Acknowledgment, error) {
	return NewAcknowledgmentForVersion(result, msgType, originalTS, Version)
}

// NewAcknowledgmentForVersion builds an acknowledgment stamped with an
// explicit table version. Exists for replaying or testing against an older
// schema; normal callers use NewAcknowledgment.
func NewAcknowledgmentForVersion(result Code, msgType string, originalTS int64, version string) (*Acknowledgment, error) {
	if result.String() == "" {
		return nil, fmt.Errorf("acknowledgment: missing result code: %w", ErrInvalidAck)
	}
	if msgType == "" {
		return nil, fmt.Errorf("acknowledgment: missing msg_type: %w", ErrInvalidAck)
	}
	return &Acknowledgment{
		result:     result,
		msgType:    msgType,
		originalTS: originalTS,
		version:    version,
		ackTS:      time.Now().UnixMilli(),
	}, nil
}

func (a *Acknowledgment) Result() Code      { return a.result }
func (a *Acknowledgment) MsgType() string   { return a.msgType }
func (a *Acknowledgment) OriginalTS() int64 { return a.originalTS }
func (a *Acknowledgment) Version() string   { return a.version }
func (a *Acknowledgment) AckTS() int64      { return a.ackTS }

// AckPayload is the acknowledgment wire body. Only the compact code string
// is carried; the receiver resolves category and description through its own
// catalog copy.
type AckPayload struct {
	Result     string `json:"result"`
	Version    string `json:"version"`
	MsgType    string `json:"msg_type"`
	OriginalTS int64  `json:"original_ts"`
	AckTS      int64  `json:"ack_ts"`
}

// Payload builds a fresh wire body for the acknowledgment.
func (a *Acknowledgment) Payload() AckPayload {
	return AckPayload{
		Result:     a.result.String(),
		Version:    a.version,
		MsgType:    a.msgType,
		OriginalTS: a.originalTS,
		AckTS:      a.ackTS,
	}
}

// Encode serializes the acknowledgment payload to its compact wire form.
func (a *Acknowledgment) Encode() ([]byte, error) {
	return json.Marshal(a.Payload())
}

// DecodeAckPayload unmarshals an acknowledgment wire body.
func DecodeAckPayload(data []byte) (*AckPayload, error) {
	var p AckPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode acknowledgment: %w", err)
	}
	return &p, nil
}
