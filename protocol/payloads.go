package protocol

// Sensor describes one sensor attached to a Local Controller. The descriptor
// schema is owned by the sensor integration, so it stays free-form here.
type Sensor map[string]any

// Instruction is a single runtime reconfiguration record carried by an
// update message.
type Instruction map[string]any

// HandshakePayload is the FHM wire body. TrainID and Sensors are omitted
// entirely when not provided; presence is meaningful to the MC.
type HandshakePayload struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	IP      string   `json:"ip"`
	TrainID *int64   `json:"train_id,omitempty"`
	Sensors []Sensor `json:"sensors,omitempty"`
}

// HeartbeatPayload is the HM wire body. Heartbeat is always 1 on the wire;
// Heartrate is the send interval in seconds and is emitted even when zero.
type HeartbeatPayload struct {
	Heartbeat int `json:"heartbeat"`
	Heartrate int `json:"heartrate"`
}

// DisconnectPayload is the DCM wire body.
type DisconnectPayload struct {
	Disconnect int `json:"disconnect"`
}
