package services

import (
	"log"

	"fastzero/internal/models"
)

// User lifecycle event types.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// EventPublisher publishes user lifecycle events to a broker.
type EventPublisher interface {
	PublishUserEvent(eventType string, payload map[string]interface{}) error
}

func userEventPayload(user models.UserPublic) map[string]interface{} {
	return map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	}
}

// publish never fails the caller. Events are best effort.
func publish(events EventPublisher, eventType string, payload map[string]interface{}) {
	if events == nil {
		return
	}
	if err := events.PublishUserEvent(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
