package protocol

import (
	"fmt"
	"strings"
)

// Message type identifiers for the RAMP protocol.
const (
	// LC -> MC
	TypeFirstHandshake = "FHM"
	TypeHeartbeat      = "HM"
	TypeDisconnect     = "DCM"

	// MC -> LC
	TypeUpdate = "UM"
)

// Topic templates keyed by the Local Controller ID. The handshake is the only
// message addressed into the MC namespace; everything else lives under the
// LC's own namespace.
const (
	topicHandshake  = "/mc/%s/new_connection/request"
	topicHeartbeat  = "/lc/%s/heartbeat/"
	topicDisconnect = "/lc/%s/disconnect/"
	topicUpdate     = "/lc/%s/update/"
)

// HandshakeTopic returns the connection request topic for an LC.
func HandshakeTopic(lcID string) string { return fmt.Sprintf(topicHandshake, lcID) }

// HeartbeatTopic returns the heartbeat topic for an LC.
func HeartbeatTopic(lcID string) string { return fmt.Sprintf(topicHeartbeat, lcID) }

// DisconnectTopic returns the disconnect topic for an LC.
func DisconnectTopic(lcID string) string { return fmt.Sprintf(topicDisconnect, lcID) }

// UpdateTopic returns the update topic for an LC.
func UpdateTopic(lcID string) string { return fmt.Sprintf(topicUpdate, lcID) }

// ParseTopic inverts the topic builders: given a concrete topic it returns
// the message type routed on it and the LC ID it is scoped to. A topic that
// fits the /role/lc_id/operation/ shape but names no known operation yields
// the raw operation segment, the LC ID, and ErrUnknownMsgType, so the caller
// can still answer the right controller.
func ParseTopic(topic string) (msgType, lcID string, err error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 5 || parts[0] != "" || parts[2] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
	}
	lcID = parts[2]
	switch {
	case parts[1] == "mc" && parts[3] == "new_connection" && parts[4] == "request":
		return TypeFirstHandshake, lcID, nil
	case parts[1] == "lc" && parts[3] == "heartbeat" && parts[4] == "":
		return TypeHeartbeat, lcID, nil
	case parts[1] == "lc" && parts[3] == "disconnect" && parts[4] == "":
		return TypeDisconnect, lcID, nil
	case parts[1] == "lc" && parts[3] == "update" && parts[4] == "":
		return TypeUpdate, lcID, nil
	}
	return parts[3], lcID, fmt.Errorf("%w: %q", ErrUnknownMsgType, topic)
}
