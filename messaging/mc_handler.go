package messaging

import (
	"errors"
	"log"
	"sync"

	"ramp/protocol"
	"ramp/results"
)

// MCHandler processes inbound Local Controller traffic on the Main
// Controller and answers every message with an acknowledgment on the LC's
// ack topic.
type MCHandler struct {
	protocol.NoOpHandler

	pub Publisher

	mu        sync.Mutex
	processed map[string]int64
	acksSent  int64
}

// NewMCHandler creates a handler that replies through the given publisher.
func NewMCHandler(pub Publisher) *MCHandler {
	return &MCHandler{
		pub:       pub,
		processed: make(map[string]int64),
	}
}

func (h *MCHandler) HandleFirstHandshake(rcpt protocol.Receipt, p *protocol.HandshakePayload) {
	log.Printf("mc: handshake from %s (name=%s ip=%s)", p.ID, p.Name, p.IP)
	h.count(rcpt.MsgType)
	h.ack(rcpt, results.Connected)
}

func (h *MCHandler) HandleHeartbeat(rcpt protocol.Receipt, p *protocol.HeartbeatPayload) {
	log.Printf("mc: heartbeat from %s (heartrate=%ds)", rcpt.LCID, p.Heartrate)
	h.count(rcpt.MsgType)
	h.ack(rcpt, results.HeartbeatOK)
}

func (h *MCHandler) HandleDisconnect(rcpt protocol.Receipt, _ *protocol.DisconnectPayload) {
	log.Printf("mc: disconnect from %s", rcpt.LCID)
	h.count(rcpt.MsgType)
	h.ack(rcpt, results.Disconnected)
}

func (h *MCHandler) HandleInvalid(rcpt protocol.Receipt, err error) {
	log.Printf("mc: invalid message on %s: %v", rcpt.Topic, err)
	if rcpt.LCID == "" || rcpt.MsgType == "" {
		// Nothing to address an acknowledgment to.
		return
	}
	h.ack(rcpt, ResultForInvalid(err))
}

// HandleAck processes acknowledgments sent back by LCs (replies to UM).
func (h *MCHandler) HandleAck(topic string, data []byte) {
	p, code, err := decodeTrustedAck(data)
	if err != nil {
		log.Printf("mc: ack on %s rejected: %v", topic, err)
		return
	}
	log.Printf("mc: ack for %s (result=%s %s)", p.MsgType, code.String(), code.Category())
}

// Snapshot reports processing counters for the status API.
func (h *MCHandler) Snapshot() map[string]int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]int64, len(h.processed)+1)
	for k, v := range h.processed {
		out[k] = v
	}
	out["acks_sent"] = h.acksSent
	return out
}

func (h *MCHandler) count(msgType string) {
	h.mu.Lock()
	h.processed[msgType]++
	h.mu.Unlock()
}

func (h *MCHandler) ack(rcpt protocol.Receipt, code results.Code) {
	ack, err := results.NewAcknowledgment(code, rcpt.MsgType, rcpt.ReceivedAt)
	if err != nil {
		log.Printf("mc: build ack for %s: %v", rcpt.LCID, err)
		return
	}
	data, err := ack.Encode()
	if err != nil {
		log.Printf("mc: encode ack for %s: %v", rcpt.LCID, err)
		return
	}
	if err := h.pub.Publish(LCAckTopic(rcpt.LCID), data); err != nil {
		log.Printf("mc: send ack to %s: %v", rcpt.LCID, err)
		return
	}
	h.mu.Lock()
	h.acksSent++
	h.mu.Unlock()
}

// ResultForInvalid maps an ingestion failure onto the catalog: topics that
// name no known operation are an unknown-type error, everything else a
// malformed message.
func ResultForInvalid(err error) results.Code {
	if errors.Is(err, protocol.ErrUnknownMsgType) {
		return results.UnknownType
	}
	return results.MalformedMessage
}
