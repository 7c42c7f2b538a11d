package messaging

import (
	"log"
	"sync"

	"ramp/protocol"
	"ramp/results"
)

// ApplyFunc applies one update instruction on the Local Controller. It
// returns an error when the instruction cannot be applied.
type ApplyFunc func(inst protocol.Instruction) error

// LCHandler processes inbound Main Controller traffic on a Local Controller:
// update messages, which it applies and acknowledges, and acknowledgments
// for the LC's own messages.
type LCHandler struct {
	protocol.NoOpHandler

	pub   Publisher
	lcID  string
	apply ApplyFunc

	mu             sync.Mutex
	updatesApplied int64
	lastAck        *results.AckPayload
	lastResult     results.Code
}

// NewLCHandler creates a handler for the given controller. apply may be nil,
// in which case instructions are only logged.
func NewLCHandler(pub Publisher, lcID string, apply ApplyFunc) *LCHandler {
	return &LCHandler{pub: pub, lcID: lcID, apply: apply}
}

func (h *LCHandler) HandleUpdate(rcpt protocol.Receipt, updates []protocol.Instruction) {
	if rcpt.LCID != h.lcID {
		return
	}
	code := results.UpdateApplied
	applied := 0
	for i, inst := range updates {
		if h.apply == nil {
			log.Printf("lc: update %d/%d: %v", i+1, len(updates), inst)
			applied++
			continue
		}
		if err := h.apply(inst); err != nil {
			log.Printf("lc: apply update %d/%d: %v", i+1, len(updates), err)
			code = results.GenericServerError
			continue
		}
		applied++
	}
	h.mu.Lock()
	h.updatesApplied += int64(applied)
	h.mu.Unlock()

	ack, err := results.NewAcknowledgment(code, rcpt.MsgType, rcpt.ReceivedAt)
	if err != nil {
		log.Printf("lc: build update ack: %v", err)
		return
	}
	data, err := ack.Encode()
	if err != nil {
		log.Printf("lc: encode update ack: %v", err)
		return
	}
	if err := h.pub.Publish(MCAckTopic(h.lcID), data); err != nil {
		log.Printf("lc: send update ack: %v", err)
	}
}

func (h *LCHandler) HandleInvalid(rcpt protocol.Receipt, err error) {
	log.Printf("lc: invalid message on %s: %v", rcpt.Topic, err)
}

// HandleAck processes acknowledgments from the MC. The result table version
// is checked before the result code is trusted; incompatible or unknown
// results are logged and dropped.
func (h *LCHandler) HandleAck(topic string, data []byte) {
	p, code, err := decodeTrustedAck(data)
	if err != nil {
		log.Printf("lc: ack on %s rejected: %v", topic, err)
		return
	}
	log.Printf("lc: %s acknowledged: %s %s (%s)", p.MsgType, code.String(), code.Category(), code.Description())

	h.mu.Lock()
	h.lastAck = p
	h.lastResult = code
	h.mu.Unlock()
}

// LastAck returns the most recent trusted acknowledgment, or nil.
func (h *LCHandler) LastAck() (*results.AckPayload, results.Code) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastAck, h.lastResult
}

// UpdatesApplied returns how many update instructions have been handled.
func (h *LCHandler) UpdatesApplied() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.updatesApplied
}
