package shared

import "context"

// EventHandler reacts to committed ledger events. Handlers run after the
// unit of work has committed, so a failing handler never rolls back stock
// or debt.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the types to receive; empty means every event
	EventTypes() []string
}

// EventPublisher is what the ledger executor needs after commit
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber wires handlers at startup. Explicit eventTypes override
// the handler's own EventTypes.
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is the process-wide bus. Stop waits for in-flight deliveries
// and rejects publishes that arrive afterwards.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
