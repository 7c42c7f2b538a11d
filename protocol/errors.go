package protocol

import "errors"

var (
	ErrInvalidMessage = errors.New("ramp: invalid message")
	ErrInvalidTopic   = errors.New("ramp: invalid topic")
	ErrUnknownMsgType = errors.New("ramp: unknown message type")
)
