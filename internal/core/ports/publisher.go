package ports

import "github.com/developia/translation-office/internal/core/domain"

// EventPublisher hands domain events to the notification pipeline.
// Publish is fire-and-forget: it never blocks the workflow, returns nothing,
// and exposes no delivery guarantee to the caller.
type EventPublisher interface {
	Publish(event domain.Event)
}
