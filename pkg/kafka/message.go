package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is one event bound for a Kafka topic.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// Header keys shared by all emitted events.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
)

// NewMessage builds a message with a generated event id and a
// JSON-encoded payload.
func NewMessage(key string, payload any, eventType, source string) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Key:   key,
		Value: value,
		Headers: map[string]string{
			HeaderEventID:   uuid.NewString(),
			HeaderEventType: eventType,
			HeaderSource:    source,
		},
		Timestamp: time.Now(),
	}, nil
}
