package dto

const (
	EventUserCreated = "user_created"
	EventUserUpdated = "user_updated"
)

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

// UserEvent is the payload published for user lifecycle events.
type UserEvent struct {
	ID          int64  `json:"id"`
	ExternalID  string `json:"external_id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsSuspended bool   `json:"is_suspended"`
}
