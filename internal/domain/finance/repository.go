package finance

import (
	"context"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentTransactionRepository stores payment records
type PaymentTransactionRepository interface {
	Save(ctx context.Context, tx *PaymentTransaction) error
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]PaymentTransaction, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}

// EmptyReturnRepository stores empty-container records
type EmptyReturnRepository interface {
	Save(ctx context.Context, er *EmptyReturn) error
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]EmptyReturn, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}
