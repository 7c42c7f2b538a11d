package messaging

import (
	"errors"
	"fmt"
	"testing"

	"ramp/protocol"
	"ramp/results"
)

// spyPublisher records published payloads in place of a live broker.
type spyPublisher struct {
	topics   []string
	payloads [][]byte
	err      error
}

func (s *spyPublisher) Publish(topic string, payload []byte) error {
	if s.err != nil {
		return s.err
	}
	s.topics = append(s.topics, topic)
	s.payloads = append(s.payloads, payload)
	return nil
}

// lastAck decodes the most recent published payload as an acknowledgment.
func (s *spyPublisher) lastAck(t *testing.T) *results.AckPayload {
	t.Helper()
	if len(s.payloads) == 0 {
		t.Fatal("no payload published")
	}
	p, err := results.DecodeAckPayload(s.payloads[len(s.payloads)-1])
	if err != nil {
		t.Fatalf("decode published ack: %v", err)
	}
	return p
}

func TestMCHandlerAckMappings(t *testing.T) {
	cases := []struct {
		name string
		call func(h *MCHandler, rcpt protocol.Receipt)
		want results.Code
	}{
		{
			name: protocol.TypeFirstHandshake,
			call: func(h *MCHandler, rcpt protocol.Receipt) {
				h.HandleFirstHandshake(rcpt, &protocol.HandshakePayload{ID: "LC7", Name: "station-7", IP: "10.0.0.7"})
			},
			want: results.Connected,
		},
		{
			name: protocol.TypeHeartbeat,
			call: func(h *MCHandler, rcpt protocol.Receipt) {
				h.HandleHeartbeat(rcpt, &protocol.HeartbeatPayload{Heartbeat: 1, Heartrate: 30})
			},
			want: results.HeartbeatOK,
		},
		{
			name: protocol.TypeDisconnect,
			call: func(h *MCHandler, rcpt protocol.Receipt) {
				h.HandleDisconnect(rcpt, &protocol.DisconnectPayload{Disconnect: 1})
			},
			want: results.Disconnected,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spy := &spyPublisher{}
			h := NewMCHandler(spy)
			rcpt := protocol.Receipt{MsgType: tc.name, LCID: "LC7", ReceivedAt: 4242}

			tc.call(h, rcpt)

			if len(spy.topics) != 1 {
				t.Fatalf("published %d messages, want 1", len(spy.topics))
			}
			if spy.topics[0] != "/lc/LC7/ack/" {
				t.Errorf("topic = %q, want %q", spy.topics[0], "/lc/LC7/ack/")
			}
			p := spy.lastAck(t)
			if p.Result != tc.want.String() {
				t.Errorf("result = %q, want %q", p.Result, tc.want.String())
			}
			if p.MsgType != tc.name {
				t.Errorf("msg_type = %q, want %q", p.MsgType, tc.name)
			}
			if p.OriginalTS != 4242 {
				t.Errorf("original_ts = %d, want 4242", p.OriginalTS)
			}
			if p.Version != results.Version {
				t.Errorf("version = %q, want %q", p.Version, results.Version)
			}
		})
	}
}

func TestMCHandlerInvalidAcks(t *testing.T) {
	spy := &spyPublisher{}
	h := NewMCHandler(spy)

	// Unknown operation segment: answered with 2.01.01
	rcpt := protocol.Receipt{Topic: "/lc/LC7/selftest/", MsgType: "selftest", LCID: "LC7", ReceivedAt: 1}
	h.HandleInvalid(rcpt, fmt.Errorf("wrap: %w", protocol.ErrUnknownMsgType))
	if p := spy.lastAck(t); p.Result != results.UnknownType.String() {
		t.Errorf("result = %q, want %q", p.Result, results.UnknownType.String())
	}

	// Undecodable payload: answered with 2.01.00
	rcpt = protocol.Receipt{Topic: "/lc/LC7/heartbeat/", MsgType: protocol.TypeHeartbeat, LCID: "LC7", ReceivedAt: 2}
	h.HandleInvalid(rcpt, fmt.Errorf("wrap: %w", protocol.ErrInvalidMessage))
	if p := spy.lastAck(t); p.Result != results.MalformedMessage.String() {
		t.Errorf("result = %q, want %q", p.Result, results.MalformedMessage.String())
	}

	// No LC to address: nothing published
	before := len(spy.topics)
	h.HandleInvalid(protocol.Receipt{Topic: "garbage"}, protocol.ErrInvalidTopic)
	if len(spy.topics) != before {
		t.Errorf("published %d messages for unaddressable failure, want 0", len(spy.topics)-before)
	}
}

func TestMCHandlerIngestorRoundTrip(t *testing.T) {
	spy := &spyPublisher{}
	h := NewMCHandler(spy)
	ingestor := protocol.NewIngestor(h, nil)

	dcm, _ := protocol.NewDisconnect("LC3")
	data, _ := protocol.Encode(dcm)
	ingestor.HandleRaw(dcm.Topic(), data)

	if len(spy.topics) != 1 || spy.topics[0] != "/lc/LC3/ack/" {
		t.Fatalf("topics = %v, want one ack on /lc/LC3/ack/", spy.topics)
	}
	p := spy.lastAck(t)
	if p.Result != results.Disconnected.String() {
		t.Errorf("result = %q, want %q", p.Result, results.Disconnected.String())
	}
	if p.MsgType != protocol.TypeDisconnect {
		t.Errorf("msg_type = %q, want %q", p.MsgType, protocol.TypeDisconnect)
	}

	snap := h.Snapshot()
	if snap[protocol.TypeDisconnect] != 1 {
		t.Errorf("processed[DCM] = %d, want 1", snap[protocol.TypeDisconnect])
	}
	if snap["acks_sent"] != 1 {
		t.Errorf("acks_sent = %d, want 1", snap["acks_sent"])
	}
}

func TestLCHandlerUpdateAck(t *testing.T) {
	spy := &spyPublisher{}
	h := NewLCHandler(spy, "LC7", nil)
	rcpt := protocol.Receipt{MsgType: protocol.TypeUpdate, LCID: "LC7", ReceivedAt: 9000}

	h.HandleUpdate(rcpt, []protocol.Instruction{{"heartrate": 60}, {"sensor_poll": 5}})

	if len(spy.topics) != 1 || spy.topics[0] != "/mc/LC7/ack/" {
		t.Fatalf("topics = %v, want one ack on /mc/LC7/ack/", spy.topics)
	}
	p := spy.lastAck(t)
	if p.Result != results.UpdateApplied.String() {
		t.Errorf("result = %q, want %q", p.Result, results.UpdateApplied.String())
	}
	if p.OriginalTS != 9000 {
		t.Errorf("original_ts = %d, want 9000", p.OriginalTS)
	}
	if h.UpdatesApplied() != 2 {
		t.Errorf("updates applied = %d, want 2", h.UpdatesApplied())
	}

	// Updates for another LC are ignored.
	h.HandleUpdate(protocol.Receipt{MsgType: protocol.TypeUpdate, LCID: "LC8"}, []protocol.Instruction{{"heartrate": 1}})
	if len(spy.topics) != 1 {
		t.Errorf("published %d messages, want foreign update ignored", len(spy.topics))
	}
}

func TestLCHandlerUpdateFailureCounting(t *testing.T) {
	spy := &spyPublisher{}
	h := NewLCHandler(spy, "LC7", func(inst protocol.Instruction) error {
		if _, bad := inst["bad"]; bad {
			return errors.New("unsupported instruction")
		}
		return nil
	})
	rcpt := protocol.Receipt{MsgType: protocol.TypeUpdate, LCID: "LC7", ReceivedAt: 1}

	h.HandleUpdate(rcpt, []protocol.Instruction{{"heartrate": 60}, {"bad": true}, {"sensor_poll": 5}})

	p := spy.lastAck(t)
	if p.Result != results.GenericServerError.String() {
		t.Errorf("result = %q, want %q", p.Result, results.GenericServerError.String())
	}
	// Only the instructions that actually applied are counted.
	if h.UpdatesApplied() != 2 {
		t.Errorf("updates applied = %d, want 2", h.UpdatesApplied())
	}
}
