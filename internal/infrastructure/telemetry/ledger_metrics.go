package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/trade"
	"go.opentelemetry.io/otel/metric"
)

// Operation outcomes
const (
	OutcomeOK       = "ok"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// LedgerMetrics counts ledger activity. It is fed by the executor for
// operation timings and by the event bus for business totals.
type LedgerMetrics struct {
	operationDuration *Histogram
	conflictRetries   *Counter
	events            *Counter
	orderAmount       *Counter
	paymentAmount     *Counter
	purchaseAmount    *Counter
	stockUnits        *Counter
	containersBack    *Counter
}

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// NewLedgerMetrics creates the ledger instruments on meter
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	m := &LedgerMetrics{}
	var err error
	if m.operationDuration, err = NewHistogram(meter, "aquaflow_ledger_operation_duration_seconds",
		"Duration of ledger operations including retries", "s", OperationDurationBuckets...); err != nil {
		return nil, err
	}
	counters := []struct {
		dst        **Counter
		name, desc string
		unit       string
	}{
		{&m.conflictRetries, "aquaflow_ledger_conflict_retries_total", "Operations retried after an optimistic-lock conflict", "{retries}"},
		{&m.events, "aquaflow_domain_events_total", "Domain events published after commit", "{events}"},
		{&m.orderAmount, "aquaflow_order_amount_total", "Order totals in dong", "{dong}"},
		{&m.paymentAmount, "aquaflow_payment_amount_total", "Payments applied to orders in dong", "{dong}"},
		{&m.purchaseAmount, "aquaflow_purchase_amount_total", "Purchase totals in dong", "{dong}"},
		{&m.stockUnits, "aquaflow_stock_units_total", "Units moved in or out of stock", "{units}"},
		{&m.containersBack, "aquaflow_containers_returned_total", "Returnable containers brought back", "{containers}"},
	}
	for _, c := range counters {
		if *c.dst, err = NewCounter(meter, c.name, c.desc, c.unit); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordOperation records one finished ledger operation
func (m *LedgerMetrics) RecordOperation(ctx context.Context, name string, d time.Duration, err error) {
	m.operationDuration.RecordDuration(ctx, d, AttrOperation.String(name), AttrOutcome.String(Outcome(err)))
}

// RecordConflictRetry counts one retry of the named operation
func (m *LedgerMetrics) RecordConflictRetry(ctx context.Context, name string) {
	m.conflictRetries.Inc(ctx, AttrOperation.String(name))
}

// Outcome classifies an operation error for metric labels
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, shared.ErrConcurrencyConflict):
		return OutcomeConflict
	}
	if _, ok := shared.AsDomainError(err); ok {
		return OutcomeRejected
	}
	return OutcomeError
}

// Handle implements shared.EventHandler
func (m *LedgerMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	m.events.Inc(ctx, AttrEventType.String(event.EventType()))

	switch e := event.(type) {
	case *trade.OrderCreatedEvent:
		m.orderAmount.Add(ctx, e.TotalAmount.Int64())
	case *trade.OrderPaymentAppliedEvent:
		m.paymentAmount.Add(ctx, e.Amount.Int64())
	case *trade.PurchaseCreatedEvent:
		m.purchaseAmount.Add(ctx, e.TotalAmount.Int64())
	case *trade.OrderReturnAppliedEvent:
		m.containersBack.Add(ctx, e.Quantity)
	case *catalog.StockChangedEvent:
		delta := e.Delta()
		if delta >= 0 {
			m.stockUnits.Add(ctx, delta, AttrDirection.String("in"))
		} else {
			m.stockUnits.Add(ctx, -delta, AttrDirection.String("out"))
		}
	}
	return nil
}

// EventTypes implements shared.EventHandler; all events are counted
func (m *LedgerMetrics) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*LedgerMetrics)(nil)
