package services

import "log"

// Routing keys of published domain events.
const (
	EventBrandCreated  = "brand.created"
	EventBrandUpdated  = "brand.updated"
	EventBrandDeleted  = "brand.deleted"
	EventReviewCreated = "review.created"
	EventReviewUpdated = "review.updated"
	EventReviewDeleted = "review.deleted"
)

// EventPublisher publishes domain events. Implemented by rabbitmq.Client.
type EventPublisher interface {
	PublishEvent(routingKey string, payload map[string]interface{}) error
}

// publish sends an event if a publisher is configured. Failures are logged
// and never fail the operation that produced the event.
func publish(p EventPublisher, routingKey string, payload map[string]interface{}) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(routingKey, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
