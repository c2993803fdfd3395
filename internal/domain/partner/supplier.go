package partner

import (
	"net/mail"

	"github.com/aquaflow/backend/internal/domain/shared"
)

// Supplier is a source of stock. Its debt is not stored here; it is
// derived from the supplier's outstanding purchases.
type Supplier struct {
	shared.BaseAggregateRoot
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
}

// SupplierContact groups the editable contact fields
type SupplierContact struct {
	ContactPerson string
	Phone         string
	Email         string
	Address       string
}

// NewSupplier creates a new supplier
func NewSupplier(name string, contact SupplierContact) (*Supplier, error) {
	s := &Supplier{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if err := s.apply(name, contact); err != nil {
		return nil, err
	}
	s.AddDomainEvent(NewSupplierCreatedEvent(s))
	return s, nil
}

// Update replaces the supplier's name and contact details
func (s *Supplier) Update(name string, contact SupplierContact) error {
	if err := s.apply(name, contact); err != nil {
		return err
	}
	s.Touch()
	return nil
}

func (s *Supplier) apply(name string, contact SupplierContact) error {
	name = shared.NormalizeName(name)
	if name == "" {
		return shared.NewValidationError("Supplier name cannot be empty")
	}
	if contact.Phone != "" && !phonePattern.MatchString(contact.Phone) {
		return shared.NewValidationError("Invalid phone number")
	}
	if contact.Email != "" {
		if _, err := mail.ParseAddress(contact.Email); err != nil {
			return shared.NewValidationError("Invalid email address")
		}
	}
	s.Name = name
	s.ContactPerson = shared.NormalizeName(contact.ContactPerson)
	s.Phone = contact.Phone
	s.Email = contact.Email
	s.Address = contact.Address
	return nil
}
