package ledgertest

import (
	"testing"

	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/require"
)

// SeedProduct commits a product with the given stock
func SeedProduct(t testing.TB, s *Store, name string, price valueobject.Money, stock int64, returnable bool) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "bottle", price, returnable)
	require.NoError(t, err)
	if stock > 0 {
		require.NoError(t, p.IncreaseStock(stock))
	}
	p.ClearDomainEvents()
	s.AddProduct(p)
	return p
}

// SeedCustomer commits a customer
func SeedCustomer(t testing.TB, s *Store, name, phone string, customerType partner.CustomerType, agencyLevel int) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(name, phone, "", customerType, agencyLevel)
	require.NoError(t, err)
	c.ClearDomainEvents()
	s.AddCustomer(c)
	return c
}

// SeedSupplier commits a supplier
func SeedSupplier(t testing.TB, s *Store, name string) *partner.Supplier {
	t.Helper()
	sup, err := partner.NewSupplier(name, partner.SupplierContact{})
	require.NoError(t, err)
	sup.ClearDomainEvents()
	s.AddSupplier(sup)
	return sup
}
