package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/contact-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContactCreated EventType = "contact.created"
	EventContactUpdated EventType = "contact.updated"
	EventContactDeleted EventType = "contact.deleted"
)

// ContactEventTypes lists every contact lifecycle event.
var ContactEventTypes = []EventType{EventContactCreated, EventContactUpdated, EventContactDeleted}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ContactID string      `json:"contact_id"`
	OwnerID   string      `json:"owner_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps a new event with a fresh id and the current time.
func NewEvent(eventType EventType, ownerID, contactID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ContactID: contactID,
		OwnerID:   ownerID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// ContactCreatedPayload payload.
type ContactCreatedPayload struct {
	Type domain.ContactType `json:"type"`
}

// ContactUpdatedPayload payload.
type ContactUpdatedPayload struct {
	Fields []string `json:"fields"`
}
