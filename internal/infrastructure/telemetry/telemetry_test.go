package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{ServiceName: "test"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("x"))
	tp.EnableSpanProfiles()
	assert.False(t, tp.SpanProfilesEnabled())
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestStartServiceSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx, span := StartServiceSpan(context.Background(), "ledger", "order.create", "items", 2)
	assert.NotEmpty(t, TraceID(ctx))
	AddEvent(span, "conflict_retry", "attempt", 1)
	RecordError(span, shared.ErrInsufficientStock)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "ledger.order.create", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	require.Len(t, spans[0].Events, 2)
	assert.Equal(t, "conflict_retry", spans[0].Events[0].Name)
}

func TestRecordError_Nil(t *testing.T) {
	_, span := StartSpan(context.Background(), "noop")
	RecordError(span, nil)
	RecordError(nil, errors.New("x"))
	span.End()
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeOK, Outcome(nil))
	assert.Equal(t, OutcomeConflict, Outcome(shared.ErrConcurrencyConflict))
	assert.Equal(t, OutcomeRejected, Outcome(shared.NewValidationError("bad")))
	assert.Equal(t, OutcomeError, Outcome(errors.New("db down")))
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					totals[m.Name] += dp.Value
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					totals[m.Name] += int64(dp.Count)
				}
			}
		}
	}
	return totals
}

func TestLedgerMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	_, err := NewLedgerMetrics(nil)
	assert.ErrorIs(t, err, ErrMeterNil)

	m, err := NewLedgerMetrics(provider.Meter("test"))
	require.NoError(t, err)
	ctx := context.Background()

	product := &catalog.Product{Name: "Binh 20L", Stock: 5}
	product.ID = uuid.New()
	out := catalog.NewStockChangedEvent(product, 8)
	in := catalog.NewStockChangedEvent(product, 1)

	order := &trade.Order{CustomerID: uuid.New(), TotalAmount: valueobject.Money(90000)}
	order.ID = uuid.New()

	for _, e := range []shared.DomainEvent{
		out, in,
		trade.NewOrderCreatedEvent(order),
		trade.NewOrderPaymentAppliedEvent(order, valueobject.Money(40000)),
	} {
		require.NoError(t, m.Handle(ctx, e))
	}
	m.RecordOperation(ctx, "order.create", 15*time.Millisecond, nil)
	m.RecordConflictRetry(ctx, "order.create")

	totals := collect(t, reader)
	assert.Equal(t, int64(4), totals["aquaflow_domain_events_total"])
	assert.Equal(t, int64(7), totals["aquaflow_stock_units_total"])
	assert.Equal(t, int64(90000), totals["aquaflow_order_amount_total"])
	assert.Equal(t, int64(40000), totals["aquaflow_payment_amount_total"])
	assert.Equal(t, int64(1), totals["aquaflow_ledger_conflict_retries_total"])
	assert.Equal(t, int64(1), totals["aquaflow_ledger_operation_duration_seconds"])
	assert.Nil(t, m.EventTypes())
}

func TestParseProfileTypes(t *testing.T) {
	types, err := ParseProfileTypes(nil)
	require.NoError(t, err)
	assert.Equal(t, []pyroscope.ProfileType{pyroscope.ProfileCPU, pyroscope.ProfileInuseSpace}, types)

	types, err = ParseProfileTypes([]string{"CPU", " goroutines "})
	require.NoError(t, err)
	assert.Equal(t, []pyroscope.ProfileType{pyroscope.ProfileCPU, pyroscope.ProfileGoroutines}, types)

	_, err = ParseProfileTypes([]string{"gpu"})
	assert.Error(t, err)
}

func TestNewProfiler(t *testing.T) {
	logger := zaptest.NewLogger(t)

	p, err := NewProfiler(ProfilerConfig{}, logger)
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())

	_, err = NewProfiler(ProfilerConfig{Enabled: true}, logger)
	assert.Error(t, err)
}

func TestLoggerProvider_DisabledBridgeIsIdentity(t *testing.T) {
	logger := zaptest.NewLogger(t)
	lp, err := NewLoggerProvider(context.Background(), Config{}, logger)
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	assert.Same(t, logger, lp.Bridge(logger, 0))
	assert.NoError(t, lp.Shutdown(context.Background()))
}
