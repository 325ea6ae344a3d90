package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event
	// (e.g., "RECOGNITION_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a plain value implementation of Event.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// RecognitionCompleted is emitted after the correction pipeline
// stores a document. Accuracy is nil when the grammar step was
// skipped or soft-failed.
func RecognitionCompleted(key, language, userID string, accuracy *float64) Event {
	data := map[string]interface{}{
		"key":      key,
		"language": language,
		"user_id":  userID,
	}
	if accuracy != nil {
		data["accuracy"] = *accuracy
	}
	return BaseEvent{
		Type:       "RECOGNITION_COMPLETED",
		Data:       data,
		OccurredAt: time.Now(),
	}
}
