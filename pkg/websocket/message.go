package websocket

import "time"

// Envelope - "конверт" сообщения; по Type страница понимает, что делать.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
