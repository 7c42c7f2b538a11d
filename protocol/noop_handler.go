package protocol

// NoOpHandler implements MessageHandler with no-op methods.
// Embed this and override only the methods you need.
type NoOpHandler struct{}

func (NoOpHandler) HandleFirstHandshake(Receipt, *HandshakePayload) {}
func (NoOpHandler) HandleHeartbeat(Receipt, *HeartbeatPayload)     {}
func (NoOpHandler) HandleDisconnect(Receipt, *DisconnectPayload)   {}
func (NoOpHandler) HandleUpdate(Receipt, []Instruction)            {}
func (NoOpHandler) HandleInvalid(Receipt, error)                   {}

// Compile-time check that NoOpHandler implements MessageHandler.
var _ MessageHandler = NoOpHandler{}
