package catalog

import (
	"context"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// initialStockNote labels the movement that receives a new product's
// opening stock
const initialStockNote = "Initial stock"

// ProductService handles product-related business operations
type ProductService struct {
	exec   *ledger.Executor
	repos  ledger.Repositories
	logger *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(exec *ledger.Executor, repos ledger.Repositories, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{exec: exec, repos: repos, logger: logger}
}

// Create creates a new product. Opening stock, if any, is received with an
// import movement so that the log accounts for every unit.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest, meta ledger.Meta) (*ProductResponse, error) {
	price, err := valueobject.NewMoneyFromDecimal(req.Price)
	if err != nil {
		return nil, err
	}
	if req.InitialStock < 0 {
		return nil, shared.NewValidationError("Initial stock cannot be negative")
	}

	var product *catalog.Product
	op := ledger.Operation{Name: "product.create", IdempotencyKey: meta.IdempotencyKey}
	err = s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		var err error
		product, err = catalog.NewProduct(req.Name, req.Unit, price, req.Returnable)
		if err != nil {
			return err
		}

		var entry *inventory.MovementLog
		if req.InitialStock > 0 {
			entry, err = inventory.ApplyMovement(product, inventory.MovementTypeImport, req.InitialStock,
				initialStockNote, inventory.ManualSource(), meta.Actor)
			if err != nil {
				return err
			}
		}

		if err := u.Products().Save(ctx, product); err != nil {
			return err
		}
		if entry != nil {
			if err := u.Movements().Append(ctx, entry); err != nil {
				return err
			}
		}
		u.Track(product)
		return nil
	})
	if err != nil {
		s.logger.Warn("Product creation rejected", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
		zap.Int64("stock", product.Stock))
	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.repos.Products().FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with search and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   filter.Search,
	}

	products, err := s.repos.Products().FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.Products().Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// UpdatePrice changes the unit price used for future orders. Orders
// already placed keep their price snapshot.
func (s *ProductService) UpdatePrice(ctx context.Context, productID uuid.UUID, req UpdatePriceRequest, meta ledger.Meta) (*ProductResponse, error) {
	price, err := valueobject.NewMoneyFromDecimal(req.Price)
	if err != nil {
		return nil, err
	}

	var product *catalog.Product
	op := ledger.Operation{
		Name:           "product.update_price",
		IdempotencyKey: meta.IdempotencyKey,
		LockKeys:       []string{ledger.ProductLockKey(productID)},
	}
	err = s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		var err error
		product, err = u.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if err := product.UpdatePrice(price); err != nil {
			return err
		}
		if err := u.Products().SaveWithLock(ctx, product); err != nil {
			return err
		}
		u.Track(product)
		return nil
	})
	if err != nil {
		s.logger.Warn("Price change rejected", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product price changed",
		zap.String("product_id", productID.String()),
		zap.String("price", price.String()))
	response := ToProductResponse(product)
	return &response, nil
}

// Update replaces name, unit, returnability and price in one versioned
// write. A price change is recorded like UpdatePrice.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest, meta ledger.Meta) (*ProductResponse, error) {
	price, err := valueobject.NewMoneyFromDecimal(req.Price)
	if err != nil {
		return nil, err
	}

	var product *catalog.Product
	op := ledger.Operation{
		Name:           "product.update",
		IdempotencyKey: meta.IdempotencyKey,
		LockKeys:       []string{ledger.ProductLockKey(productID)},
	}
	err = s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		var err error
		product, err = u.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if err := product.UpdateDetails(req.Name, req.Unit, req.Returnable); err != nil {
			return err
		}
		if price != product.Price {
			if err := product.UpdatePrice(price); err != nil {
				return err
			}
		}
		if err := u.Products().SaveWithLock(ctx, product); err != nil {
			return err
		}
		u.Track(product)
		return nil
	})
	if err != nil {
		s.logger.Warn("Product update rejected", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", productID.String()))
	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product that has no stock and has never moved any.
// Anything else fails with PRODUCT_IN_USE; history keeps referring to it.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID, meta ledger.Meta) error {
	op := ledger.Operation{
		Name:           "product.delete",
		IdempotencyKey: meta.IdempotencyKey,
		LockKeys:       []string{ledger.ProductLockKey(productID)},
	}
	err := s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		product, err := u.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		movements, err := u.Movements().CountByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if err := product.Remove(movements); err != nil {
			return err
		}
		if err := u.Products().Delete(ctx, product); err != nil {
			return err
		}
		u.Track(product)
		return nil
	})
	if err != nil {
		s.logger.Warn("Product deletion rejected", zap.String("product_id", productID.String()), zap.Error(err))
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", productID.String()))
	return nil
}
