package messaging

import "fmt"

// Acknowledgment routing. Acks addressed to a Local Controller are published
// under its own namespace; acks addressed to the Main Controller (replies to
// UM) go into the MC namespace. These sit here rather than in protocol
// because ack delivery is a transport concern, not part of the message
// taxonomy.
const (
	topicLCAck = "/lc/%s/ack/"
	topicMCAck = "/mc/%s/ack/"
)

// LCAckTopic returns the topic an LC receives acknowledgments on.
func LCAckTopic(lcID string) string { return fmt.Sprintf(topicLCAck, lcID) }

// MCAckTopic returns the topic the MC receives acknowledgments on for a
// given LC's session.
func MCAckTopic(lcID string) string { return fmt.Sprintf(topicMCAck, lcID) }

// Wildcard subscriptions for the MC side. The '+' single-level wildcard is
// MQTT syntax; the kafka backend has no wildcard equivalent.
const (
	SubHandshakes  = "/mc/+/new_connection/request"
	SubHeartbeats  = "/lc/+/heartbeat/"
	SubDisconnects = "/lc/+/disconnect/"
	SubMCAcks      = "/mc/+/ack/"
)
