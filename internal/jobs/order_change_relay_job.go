package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultRelaySchedule  = "* * * * * *"
	DefaultRelayBatchSize = 100
)

// AutomationHandler runs the status automation for one order change.
type AutomationHandler interface {
	Handle(ctx context.Context, command commands.AutomateOrderStatusCommand) (commands.AutomationResult, error)
}

// RelayRecorder observes relayed changes.
type RelayRecorder interface {
	RecordRelayed(acknowledged bool)
}

type nopRelayRecorder struct{}

func (nopRelayRecorder) RecordRelayed(bool) {}

// RelayOptions tunes the change relay. Zero values fall back to the defaults.
type RelayOptions struct {
	// Schedule is a cron expression with a seconds field.
	Schedule  string
	BatchSize int
	Recorder  RelayRecorder
}

// OrderChangeRelayJob drains the orders change feed into the status automation.
// A change is acknowledged only after the automation handled it, so delivery
// is at-least-once. The automation's own status write is a change too; it is
// relayed on a later tick and ends as no_change.
type OrderChangeRelayJob struct {
	handler   AutomationHandler
	feed      ports.ChangeFeed
	recorder  RelayRecorder
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOrderChangeRelayJob creates the relay job.
func NewOrderChangeRelayJob(
	handler AutomationHandler,
	feed ports.ChangeFeed,
	options RelayOptions,
	logger *slog.Logger,
) *OrderChangeRelayJob {
	if options.Schedule == "" {
		options.Schedule = DefaultRelaySchedule
	}
	if options.BatchSize <= 0 {
		options.BatchSize = DefaultRelayBatchSize
	}
	if options.Recorder == nil {
		options.Recorder = nopRelayRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OrderChangeRelayJob{
		handler:   handler,
		feed:      feed,
		recorder:  options.Recorder,
		schedule:  options.Schedule,
		batchSize: options.BatchSize,
		// A tick that is still draining the feed makes the next one skip.
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With("component", "order_change_relay_job"),
	}
}

// Start schedules the relay.
func (j *OrderChangeRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Order change relay failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid relay schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order change relay job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running tick to finish.
func (j *OrderChangeRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order change relay job stopped")
}

// RunOnce relays one batch of pending changes and returns how many were
// acknowledged. Once a change of an order fails, later changes of the same
// order in the batch are left pending so they are never handled out of order.
func (j *OrderChangeRelayJob) RunOnce(ctx context.Context) (int, error) {
	changes, err := j.feed.Pending(ctx, order.Collection, j.batchSize)
	if err != nil {
		return 0, fmt.Errorf("read pending order changes: %w", err)
	}

	blocked := make(map[string]bool)
	acknowledged := 0

	for _, change := range changes {
		if blocked[change.DocumentID] {
			continue
		}

		logger := j.logger.With("changeId", change.ID, "orderId", change.DocumentID)

		if err = j.relay(ctx, logger, change); err != nil {
			blocked[change.DocumentID] = true
			j.recorder.RecordRelayed(false)
			logger.WarnContext(ctx, "Order change left pending", "error", err)
			continue
		}

		j.recorder.RecordRelayed(true)
		acknowledged++
	}

	return acknowledged, nil
}

func (j *OrderChangeRelayJob) relay(ctx context.Context, logger *slog.Logger, change ports.Change) (err error) {
	ctx, span := otel.Tracer("orderflow/jobs").Start(ctx, "RelayOrderChange",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("change.id", change.ID),
			attribute.String("order.id", change.DocumentID),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "change left pending")
		}
		span.End()
	}()

	cmd, err := commands.NewAutomateOrderStatusCommand(change.DocumentID, change.Before, change.After)
	if err != nil {
		// Redelivery cannot fix a change that does not form a command.
		logger.ErrorContext(ctx, "Dropping malformed order change", "error", err)
		return j.feed.Acknowledge(ctx, change.ID)
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "Order change relayed", "outcome", result.Outcome)

	return j.feed.Acknowledge(ctx, change.ID)
}
