package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// Receipt describes an inbound message before payload decode: the topic it
// arrived on, the type and LC parsed from that topic, and the receive time in
// epoch milliseconds. The wire body intentionally carries neither LC ID nor
// timestamp, so correlation data for acknowledgments comes from here.
type Receipt struct {
	Topic      string
	MsgType    string
	LCID       string
	ReceivedAt int64
}

// FilterFunc returns true if the message should be processed.
type FilterFunc func(rcpt Receipt) bool

// MessageHandler defines callbacks for all RAMP message types. Embed
// NoOpHandler and override only the methods you need. HandleInvalid receives
// anything that fails topic parsing or payload decode; the error wraps
// ErrInvalidTopic or ErrInvalidMessage accordingly.
type MessageHandler interface {
	HandleFirstHandshake(rcpt Receipt, p *HandshakePayload)
	HandleHeartbeat(rcpt Receipt, p *HeartbeatPayload)
	HandleDisconnect(rcpt Receipt, p *DisconnectPayload)
	HandleUpdate(rcpt Receipt, updates []Instruction)
	HandleInvalid(rcpt Receipt, err error)
}

// Ingestor parses topics, decodes payloads, and dispatches to a
// MessageHandler. RAMP bodies are not self-describing, so routing is decided
// entirely by the topic the transport delivered the bytes on.
type Ingestor struct {
	handler MessageHandler
	filter  FilterFunc
}

// NewIngestor creates an ingestor with the given handler and filter. A nil
// filter accepts everything.
func NewIngestor(handler MessageHandler, filter FilterFunc) *Ingestor {
	return &Ingestor{handler: handler, filter: filter}
}

// HandleRaw is the entry point for raw message bytes from the messaging
// layer.
func (ing *Ingestor) HandleRaw(topic string, data []byte) {
	rcpt := Receipt{Topic: topic, ReceivedAt: time.Now().UnixMilli()}

	msgType, lcID, err := ParseTopic(topic)
	rcpt.MsgType = msgType
	rcpt.LCID = lcID
	if err != nil {
		ing.handler.HandleInvalid(rcpt, err)
		return
	}

	if ing.filter != nil && !ing.filter(rcpt) {
		return
	}

	switch msgType {
	case TypeFirstHandshake:
		var p HandshakePayload
		if err := json.Unmarshal(data, &p); err != nil {
			ing.handler.HandleInvalid(rcpt, decodeErr(msgType, err))
			return
		}
		if p.ID == "" || p.Name == "" || p.IP == "" {
			ing.handler.HandleInvalid(rcpt, fmt.Errorf("%s: incomplete payload: %w", msgType, ErrInvalidMessage))
			return
		}
		ing.handler.HandleFirstHandshake(rcpt, &p)
	case TypeHeartbeat:
		var p HeartbeatPayload
		if err := json.Unmarshal(data, &p); err != nil {
			ing.handler.HandleInvalid(rcpt, decodeErr(msgType, err))
			return
		}
		ing.handler.HandleHeartbeat(rcpt, &p)
	case TypeDisconnect:
		var p DisconnectPayload
		if err := json.Unmarshal(data, &p); err != nil {
			ing.handler.HandleInvalid(rcpt, decodeErr(msgType, err))
			return
		}
		ing.handler.HandleDisconnect(rcpt, &p)
	case TypeUpdate:
		var updates []Instruction
		if err := json.Unmarshal(data, &updates); err != nil {
			ing.handler.HandleInvalid(rcpt, decodeErr(msgType, err))
			return
		}
		ing.handler.HandleUpdate(rcpt, updates)
	}
}

func decodeErr(msgType string, err error) error {
	return fmt.Errorf("%s: payload decode: %v: %w", msgType, err, ErrInvalidMessage)
}
