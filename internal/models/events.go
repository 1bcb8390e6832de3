package models

// Event types pushed to connected browsers.
const (
	EventMessageCreated  = "message_created"
	EventMessageDeleted  = "message_deleted"
	EventMessagesCleared = "messages_cleared"
)

// Event is the envelope sent over WebSocket connections.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type DeletedEvent struct {
	ID string `json:"id"`
}

type ClearedEvent struct {
	DeletedCount int64 `json:"deletedCount"`
}
