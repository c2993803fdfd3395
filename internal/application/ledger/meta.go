package ledger

import "github.com/google/uuid"

// Meta carries request provenance into an operation
type Meta struct {
	// Actor is the authenticated user, nil for anonymous calls
	Actor *uuid.UUID
	// IdempotencyKey is the client supplied request key, optional
	IdempotencyKey string
}
