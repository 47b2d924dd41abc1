package metrics

import (
	"context"
	"strings"
	"sync"
	"time"

	monitoringmetrics "github.com/labelforge/labelforge/engine/infra/monitoring/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	operationLabel = "operation"
	driverLabel    = "driver"
	outcomeLabel   = "outcome"
	formatLabel    = "format"
	itemTypeLabel  = "item_type"
	errorTypeLabel = "error_type"
)

// Outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	metricsOnce sync.Once
	initErr     error

	storeOperations metric.Int64Counter
	storeLatency    metric.Float64Histogram
	importItems     metric.Int64Counter
	importErrors    metric.Int64Counter
	exportItems     metric.Int64Counter
	exportLatency   metric.Float64Histogram
	projectsCreated metric.Int64Counter
	tasksSaved      metric.Int64Counter
)

// EnsureInitialized creates the instruments on the global meter provider.
// Instruments created before the provider is installed are delegated once it
// is.
func EnsureInitialized() {
	metricsOnce.Do(func() {
		initErr = initInstruments(otel.GetMeterProvider().Meter("labelforge.resources"))
	})
}

func initInstruments(meter metric.Meter) error {
	var err error
	if storeOperations, err = meter.Int64Counter(
		monitoringmetrics.Name(monitoringmetrics.SubsystemStore, "operations_total"),
		metric.WithDescription("Storage backend operations"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}
	if storeLatency, err = meter.Float64Histogram(
		monitoringmetrics.Name(monitoringmetrics.SubsystemStore, "operation_duration_seconds"),
		metric.WithDescription("Storage backend operation latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(monitoringmetrics.DurationBuckets...),
	); err != nil {
		return err
	}
	if importItems, err = meter.Int64Counter(
		monitoringmetrics.Name(monitoringmetrics.SubsystemImport, "items_total"),
		metric.WithDescription("Items converted into tasks"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}
	if importErrors, err = meter.Int64Counter(
		monitoringmetrics.Name(monitoringmetrics.SubsystemImport, "errors_total"),
		metric.WithDescription("Rejected project creation requests"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}
	if exportItems, err = meter.Int64Counter(
		monitoringmetrics.Name(monitoringmetrics.SubsystemExport, "items_total"),
		metric.WithDescription("Items exported"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}
	if exportLatency, err = meter.Float64Histogram(
		monitoringmetrics.Name(monitoringmetrics.SubsystemExport, "duration_seconds"),
		metric.WithDescription("Project export duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(monitoringmetrics.DurationBuckets...),
	); err != nil {
		return err
	}
	if projectsCreated, err = meter.Int64Counter(
		monitoringmetrics.Name(monitoringmetrics.SubsystemProjects, "created_total"),
		metric.WithDescription("Projects created"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}
	tasksSaved, err = meter.Int64Counter(
		monitoringmetrics.Name(monitoringmetrics.SubsystemProjects, "tasks_saved_total"),
		metric.WithDescription("Task save attempts by outcome"),
		metric.WithUnit("1"),
	)
	return err
}

func metricsContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}

// Outcome maps an error to the outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

// RecordOperation captures one storage backend call.
func RecordOperation(ctx context.Context, operation, driver, outcome string, duration time.Duration) {
	EnsureInitialized()
	if initErr != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(operationLabel, strings.TrimSpace(operation)),
		attribute.String(driverLabel, strings.TrimSpace(driver)),
		attribute.String(outcomeLabel, normalizeOutcome(outcome)),
	)
	mctx := metricsContext(ctx)
	storeOperations.Add(mctx, 1, attrs)
	if duration > 0 {
		storeLatency.Record(mctx, duration.Seconds(), attrs)
	}
}

// RecordImportItems counts items converted for a project.
func RecordImportItems(ctx context.Context, itemType string, count int) {
	if count <= 0 {
		return
	}
	EnsureInitialized()
	if initErr != nil {
		return
	}
	importItems.Add(metricsContext(ctx), int64(count),
		metric.WithAttributes(attribute.String(itemTypeLabel, itemType)))
}

// RecordImportError counts a rejected creation request by error class.
func RecordImportError(ctx context.Context, errorType string) {
	EnsureInitialized()
	if initErr != nil {
		return
	}
	importErrors.Add(metricsContext(ctx), 1,
		metric.WithAttributes(attribute.String(errorTypeLabel, strings.TrimSpace(errorType))))
}

// RecordExport records an export of count items.
func RecordExport(ctx context.Context, format string, count int, duration time.Duration) {
	EnsureInitialized()
	if initErr != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(formatLabel, format))
	mctx := metricsContext(ctx)
	if count > 0 {
		exportItems.Add(mctx, int64(count), attrs)
	}
	if duration > 0 {
		exportLatency.Record(mctx, duration.Seconds(), attrs)
	}
}

// RecordProjectCreated counts a stored project.
func RecordProjectCreated(ctx context.Context, itemType string) {
	EnsureInitialized()
	if initErr != nil {
		return
	}
	projectsCreated.Add(metricsContext(ctx), 1,
		metric.WithAttributes(attribute.String(itemTypeLabel, itemType)))
}

// RecordTaskSaved counts one task save attempt.
func RecordTaskSaved(ctx context.Context, outcome string) {
	EnsureInitialized()
	if initErr != nil {
		return
	}
	tasksSaved.Add(metricsContext(ctx), 1,
		metric.WithAttributes(attribute.String(outcomeLabel, normalizeOutcome(outcome))))
}

func normalizeOutcome(value string) string {
	if strings.EqualFold(strings.TrimSpace(value), OutcomeSuccess) {
		return OutcomeSuccess
	}
	return OutcomeError
}
