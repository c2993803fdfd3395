package partner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CustomerType represents the classification of a customer
type CustomerType string

const (
	CustomerTypeRetail CustomerType = "retail"
	CustomerTypeAgency CustomerType = "agency"
)

// IsValid returns true if the customer type is known
func (t CustomerType) IsValid() bool {
	return t == CustomerTypeRetail || t == CustomerTypeAgency
}

// Agency levels
const (
	AgencyLevelOne = 1
	AgencyLevelTwo = 2
)

// Classification keys used to select a pricing strategy
const (
	ClassificationRetail  = "retail"
	ClassificationAgency1 = "agency-1"
	ClassificationAgency2 = "agency-2"
)

// BalanceState describes which side of zero the customer's debt is on
type BalanceState string

const (
	BalanceStateOwing   BalanceState = "owing"
	BalanceStateSettled BalanceState = "settled"
	// BalanceStateCredit means the customer has paid more than they owe
	BalanceStateCredit BalanceState = "creditBalance"
)

var (
	phonePattern    = regexp.MustCompile(`^\+?[0-9]{6,15}$`)
	phoneSeparators = strings.NewReplacer(" ", "", ".", "", "-", "", "\t", "")
)

// NormalizePhone strips the separators people type into phone numbers, so
// "0901 234 567", "0901.234.567" and "0901234567" name the same customer.
// Lookups and stored values both go through it.
func NormalizePhone(phone string) string {
	return phoneSeparators.Replace(strings.TrimSpace(phone))
}

func validatePhone(phone string) error {
	phone = NormalizePhone(phone)
	if err := validatePhone(phone); err != nil {
		return err
	}
	return nil
}

// Customer owns the two running balances of a buyer: money owed (Debt) and
// returnable containers not yet brought back (EmptyDebt).
// Debt may go below zero, which is an explicit credit balance.
// EmptyDebt never goes below zero.
type Customer struct {
	shared.BaseAggregateRoot
	Name        string
	Phone       string
	Address     string
	Type        CustomerType
	AgencyLevel int
	Debt        valueobject.Money
	EmptyDebt   int64
}

// NewCustomer creates a new customer with zero balances
func NewCustomer(name, phone, address string, customerType CustomerType, agencyLevel int) (*Customer, error) {
	name = shared.NormalizeName(name)
	if name == "" {
		return nil, shared.NewValidationError("Customer name cannot be empty")
	}
	phone = NormalizePhone(phone)
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	if err := validateClassification(customerType, agencyLevel); err != nil {
		return nil, err
	}
	if customerType == CustomerTypeRetail {
		agencyLevel = 0
	}

	c := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Address:           address,
		Type:              customerType,
		AgencyLevel:       agencyLevel,
	}
	c.AddDomainEvent(NewCustomerCreatedEvent(c))
	return c, nil
}

// NewRetailCustomer creates a retail customer, used when an order arrives
// with contact details only.
func NewRetailCustomer(name, phone, address string) (*Customer, error) {
	return NewCustomer(name, phone, address, CustomerTypeRetail, 0)
}

func validateClassification(customerType CustomerType, agencyLevel int) error {
	if !customerType.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid customer type: %s", customerType))
	}
	if customerType == CustomerTypeAgency && agencyLevel != AgencyLevelOne && agencyLevel != AgencyLevelTwo {
		return shared.NewValidationError("Agency level must be 1 or 2 for agency customers")
	}
	return nil
}

// UpdateContact changes name, phone and address
func (c *Customer) UpdateContact(name, phone, address string) error {
	name = shared.NormalizeName(name)
	if name == "" {
		return shared.NewValidationError("Customer name cannot be empty")
	}
	phone = NormalizePhone(phone)
	if err := validatePhone(phone); err != nil {
		return err
	}
	c.Name = name
	c.Phone = phone
	c.Address = address
	c.Touch()
	return nil
}

// Reclassify moves the customer to another type/level
func (c *Customer) Reclassify(customerType CustomerType, agencyLevel int) error {
	if err := validateClassification(customerType, agencyLevel); err != nil {
		return err
	}
	if customerType == CustomerTypeRetail {
		agencyLevel = 0
	}
	c.Type = customerType
	c.AgencyLevel = agencyLevel
	c.Touch()
	return nil
}

// Classification returns the pricing key for this customer
func (c *Customer) Classification() string {
	if c.Type != CustomerTypeAgency {
		return ClassificationRetail
	}
	if c.AgencyLevel == AgencyLevelTwo {
		return ClassificationAgency2
	}
	return ClassificationAgency1
}

// ChargeDebt adds an order total to the customer's debt
func (c *Customer) ChargeDebt(amount valueobject.Money, orderID uuid.UUID) error {
	if amount.IsNegative() {
		return shared.NewValidationError("Charged amount cannot be negative")
	}
	if amount == 0 {
		return nil
	}
	debt, err := c.Debt.Add(amount)
	if err != nil {
		return err
	}
	before := c.Debt
	c.Debt = debt
	c.Touch()
	c.AddDomainEvent(NewCustomerDebtChangedEvent(c, before, orderID, "order"))
	return nil
}

// ApplyPayment reduces debt by amount. Paying more than is owed is allowed
// and leaves the customer in credit.
func (c *Customer) ApplyPayment(amount valueobject.Money, sourceID uuid.UUID) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("Payment amount must be positive")
	}
	debt, err := c.Debt.Sub(amount)
	if err != nil {
		return err
	}
	before := c.Debt
	c.Debt = debt
	c.Touch()
	c.AddDomainEvent(NewCustomerDebtChangedEvent(c, before, sourceID, "payment"))
	return nil
}

// AddEmptyDebt records containers handed out
func (c *Customer) AddEmptyDebt(count int64) error {
	if count < 0 {
		return shared.NewValidationError("Container count cannot be negative")
	}
	if count == 0 {
		return nil
	}
	emptyDebt, err := shared.AddInt64(c.EmptyDebt, count)
	if err != nil {
		return err
	}
	before := c.EmptyDebt
	c.EmptyDebt = emptyDebt
	c.Touch()
	c.AddDomainEvent(NewCustomerEmptyDebtChangedEvent(c, before))
	return nil
}

// ReturnEmpties records containers brought back. Returning more than the
// customer owes is rejected and leaves the balance unchanged.
func (c *Customer) ReturnEmpties(count int64) error {
	if count < 0 {
		return shared.NewValidationError("Container count cannot be negative")
	}
	if count == 0 {
		return nil
	}
	if count > c.EmptyDebt {
		return shared.NewDomainErrorWithDetails(shared.CodeReturnExceedsOutstanding,
			"Returned containers exceed the customer's outstanding empties",
			map[string]any{
				"customerId":         c.ID.String(),
				"returnedQuantity":   count,
				"outstandingEmpties": c.EmptyDebt,
			})
	}
	before := c.EmptyDebt
	c.EmptyDebt -= count
	c.Touch()
	c.AddDomainEvent(NewCustomerEmptyDebtChangedEvent(c, before))
	return nil
}

// BalanceState reports whether the customer owes money, is settled, or is in credit
func (c *Customer) BalanceState() BalanceState {
	switch {
	case c.Debt > 0:
		return BalanceStateOwing
	case c.Debt < 0:
		return BalanceStateCredit
	default:
		return BalanceStateSettled
	}
}

// CreditBalance returns the amount the business owes back to the customer
func (c *Customer) CreditBalance() valueobject.Money {
	if c.Debt < 0 {
		return -c.Debt
	}
	return 0
}
