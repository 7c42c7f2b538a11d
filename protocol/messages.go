package protocol

import "fmt"

// FirstHandshake (FHM) registers a Local Controller with the Main Controller
// and optionally advertises train metadata and attached sensors.
type FirstHandshake struct {
	attrs
	name    string
	ip      string
	trainID *int64
	sensors []Sensor
}

// NewFirstHandshake builds an FHM. trainID may be nil and sensors may be
// empty; both are then left off the wire entirely.
func NewFirstHandshake(lcID, name, ip string, trainID *int64, sensors []Sensor) (*FirstHandshake, error) {
	if lcID == "" {
		return nil, fmt.Errorf("handshake: missing lc_id: %w", ErrInvalidMessage)
	}
	if name == "" {
		return nil, fmt.Errorf("handshake: missing name: %w", ErrInvalidMessage)
	}
	if ip == "" {
		return nil, fmt.Errorf("handshake: missing ip: %w", ErrInvalidMessage)
	}
	return &FirstHandshake{
		attrs:   newAttrs(lcID),
		name:    name,
		ip:      ip,
		trainID: trainID,
		sensors: sensors,
	}, nil
}

func (m *FirstHandshake) Type() string  { return TypeFirstHandshake }
func (m *FirstHandshake) Topic() string { return HandshakeTopic(m.lcID) }

func (m *FirstHandshake) Name() string      { return m.name }
func (m *FirstHandshake) IP() string        { return m.ip }
func (m *FirstHandshake) TrainID() *int64   { return m.trainID }
func (m *FirstHandshake) Sensors() []Sensor { return m.sensors }

// Payload builds the FHM body. The id field duplicates the LC ID; this is
// the one variant that carries it.
func (m *FirstHandshake) Payload() any {
	p := HandshakePayload{
		ID:      m.lcID,
		Name:    m.name,
		IP:      m.ip,
		TrainID: m.trainID,
	}
	if len(m.sensors) > 0 {
		p.Sensors = m.sensors
	}
	return p
}

// Heartbeat (HM) is the periodic liveness signal from a Local Controller.
type Heartbeat struct {
	attrs
	heartrate int
}

// NewHeartbeat builds an HM. heartrate is the send interval in seconds.
func NewHeartbeat(lcID string, heartrate int) (*Heartbeat, error) {
	if lcID == "" {
		return nil, fmt.Errorf("heartbeat: missing lc_id: %w", ErrInvalidMessage)
	}
	return &Heartbeat{attrs: newAttrs(lcID), heartrate: heartrate}, nil
}

func (m *Heartbeat) Type() string   { return TypeHeartbeat }
func (m *Heartbeat) Topic() string  { return HeartbeatTopic(m.lcID) }
func (m *Heartbeat) Heartrate() int { return m.heartrate }

func (m *Heartbeat) Payload() any {
	return HeartbeatPayload{Heartbeat: 1, Heartrate: m.heartrate}
}

// Disconnect (DCM) announces a graceful session termination by an LC.
type Disconnect struct {
	attrs
}

// NewDisconnect builds a DCM.
func NewDisconnect(lcID string) (*Disconnect, error) {
	if lcID == "" {
		return nil, fmt.Errorf("disconnect: missing lc_id: %w", ErrInvalidMessage)
	}
	return &Disconnect{attrs: newAttrs(lcID)}, nil
}

func (m *Disconnect) Type() string  { return TypeDisconnect }
func (m *Disconnect) Topic() string { return DisconnectTopic(m.lcID) }

func (m *Disconnect) Payload() any {
	return DisconnectPayload{Disconnect: 1}
}

// Update (UM) carries runtime reconfiguration instructions from the MC to an
// LC. Its wire body is the bare instruction sequence, not an object.
type Update struct {
	attrs
	updates []Instruction
}

// NewUpdate builds a UM. A nil sequence is normalized to empty so the wire
// body is always a JSON array.
func NewUpdate(lcID string, updates []Instruction) (*Update, error) {
	if lcID == "" {
		return nil, fmt.Errorf("update: missing lc_id: %w", ErrInvalidMessage)
	}
	if updates == nil {
		updates = []Instruction{}
	}
	return &Update{attrs: newAttrs(lcID), updates: updates}, nil
}

func (m *Update) Type() string           { return TypeUpdate }
func (m *Update) Topic() string          { return UpdateTopic(m.lcID) }
func (m *Update) Updates() []Instruction { return m.updates }

func (m *Update) Payload() any { return m.updates }

var (
	_ Message = (*FirstHandshake)(nil)
	_ Message = (*Heartbeat)(nil)
	_ Message = (*Disconnect)(nil)
	_ Message = (*Update)(nil)
)
