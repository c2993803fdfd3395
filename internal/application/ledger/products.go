package ledger

import (
	"context"

	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LoadProducts loads the given products keyed by id. A missing product
// fails with NOT_FOUND naming the first absent id.
func LoadProducts(ctx context.Context, repo catalog.ProductRepository, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, shared.NewNotFoundError("Product", id)
		}
	}
	return byID, nil
}

// SaveProducts writes each product once, in the order of ids
func SaveProducts(ctx context.Context, u *Unit, products map[uuid.UUID]*catalog.Product, ids []uuid.UUID) error {
	for _, id := range ids {
		p := products[id]
		if err := u.Products().SaveWithLock(ctx, p); err != nil {
			return err
		}
		u.Track(p)
	}
	return nil
}

// DistinctIDs returns ids without duplicates, keeping first occurrence order
func DistinctIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
