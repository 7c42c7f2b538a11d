package messaging

import (
	"errors"
	"fmt"
	"testing"

	"ramp/protocol"
	"ramp/results"
)

func TestDecodeTrustedAck(t *testing.T) {
	ack, _ := results.NewAcknowledgment(results.HeartbeatOK, "HM", 5000)
	data, _ := ack.Encode()

	p, code, err := decodeTrustedAck(data)
	if err != nil {
		t.Fatalf("decodeTrustedAck: %v", err)
	}
	if code != results.HeartbeatOK {
		t.Errorf("code = %+v, want HeartbeatOK", code)
	}
	if p.OriginalTS != 5000 {
		t.Errorf("original_ts = %d, want 5000", p.OriginalTS)
	}
}

func TestDecodeTrustedAckRejectsIncompatibleVersion(t *testing.T) {
	ack, _ := results.NewAcknowledgmentForVersion(results.HeartbeatOK, "HM", 5000, "2.0.0")
	data, _ := ack.Encode()

	p, _, err := decodeTrustedAck(data)
	if !errors.Is(err, ErrIncompatibleVersion) {
		t.Fatalf("err = %v, want ErrIncompatibleVersion", err)
	}
	// The payload is still surfaced for logging.
	if p == nil || p.Version != "2.0.0" {
		t.Errorf("payload = %+v, want claimed version preserved", p)
	}
}

func TestDecodeTrustedAckUnknownCode(t *testing.T) {
	data := []byte(fmt.Sprintf(`{"result":"9.99.99","version":%q,"msg_type":"HM","original_ts":1,"ack_ts":2}`, results.Version))
	_, _, err := decodeTrustedAck(data)
	if !errors.Is(err, results.ErrUnknownCode) {
		t.Fatalf("err = %v, want ErrUnknownCode", err)
	}
}

func TestResultForInvalid(t *testing.T) {
	unknown := fmt.Errorf("wrap: %w", protocol.ErrUnknownMsgType)
	if got := ResultForInvalid(unknown); got != results.UnknownType {
		t.Errorf("unknown type mapped to %s, want %s", got.String(), results.UnknownType.String())
	}
	malformed := fmt.Errorf("wrap: %w", protocol.ErrInvalidMessage)
	if got := ResultForInvalid(malformed); got != results.MalformedMessage {
		t.Errorf("malformed mapped to %s, want %s", got.String(), results.MalformedMessage.String())
	}
}

func TestAckTopics(t *testing.T) {
	if got := LCAckTopic("LC7"); got != "/lc/LC7/ack/" {
		t.Errorf("LCAckTopic = %q", got)
	}
	if got := MCAckTopic("LC7"); got != "/mc/LC7/ack/" {
		t.Errorf("MCAckTopic = %q", got)
	}
}
