package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/audit"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "orderflow/commands"

// Pipeline error kinds. Transition and audit write failures end the pipeline
// with an automation_error entry; send failures end up in a notification_failed entry.
var (
	ErrTransitionWrite  = errors.New("failed to apply status transition")
	ErrAuditWrite       = errors.New("failed to write audit entry")
	ErrNotificationSend = errors.New("failed to send notification")
)

// Outcome is the terminal state of one automation run.
type Outcome string

const (
	OutcomeNoChange     Outcome = "no_change"
	OutcomeTransitioned Outcome = "transitioned"
	OutcomeFailed       Outcome = "failed"
)

// AutomationResult describes what a single automation run did.
type AutomationResult struct {
	Outcome               Outcome
	PreviousStatus        order.Status
	NewStatus             order.Status
	Rule                  string
	NotificationDelivered bool
	NotificationToken     string
	// Err is the pipeline failure recorded as automation_error when Outcome is OutcomeFailed.
	Err error
}

// AutomateOrderStatusCommandHandler derives an order's status from its items and,
// when the status has to change, runs the update, audit and notify pipeline.
//
// Pipeline:
//  1. status, statusAutomatedBy and statusAutomatedAt are written to the order
//  2. a status_changed audit entry is appended
//  3. the order-updates topic is notified and the outcome is audited
//
// Steps 1 and 2 share one unit of work, so either both are stored or neither is.
// A failure in them is recorded as a single automation_error entry. A failure
// in step 3 is recorded as notification_failed and never undoes steps 1 and 2;
// only when that entry cannot be stored either does the run end as automation_error.
//
// Example:
//
//	handler := NewAutomateOrderStatusCommandHandler(uowFactory, sender, engine, kernel.SystemClock(), recorder, logger)
//	cmd, _ := NewAutomateOrderStatusCommand(orderID, before, after)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    // the automation_error entry could not be stored, let the source redeliver
//	    return err
//	}
//	log.Printf("order %s: %s", orderID, result.Outcome)
type AutomateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	sender     ports.NotificationSender
	engine     services.StatusRuleEngine
	clock      kernel.Clock
	recorder   AutomationRecorder
	logger     *slog.Logger
}

// NewAutomateOrderStatusCommandHandler creates the automation handler.
// A nil clock, recorder or logger falls back to the system clock, a no-op recorder and slog.Default.
func NewAutomateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	sender ports.NotificationSender,
	engine services.StatusRuleEngine,
	clock kernel.Clock,
	recorder AutomationRecorder,
	logger *slog.Logger,
) AutomateOrderStatusCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock()
	}
	if recorder == nil {
		recorder = NopAutomationRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return AutomateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		sender:     sender,
		engine:     engine,
		clock:      clock,
		recorder:   recorder,
		logger:     logger.With("component", "AutomateOrderStatusCommandHandler"),
	}
}

// Handle runs the automation for one order change.
// It returns an error only for an invalid command or when the automation_error
// entry describing a failed run could not be stored.
func (h AutomateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command AutomateOrderStatusCommand,
) (AutomationResult, error) {
	if err := command.Validate(); err != nil {
		return AutomationResult{}, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "AutomateOrderStatus",
		trace.WithAttributes(attribute.String("order.id", command.OrderID())),
	)
	defer span.End()

	logger := h.logger.With("orderId", command.OrderID())

	after, err := order.FromFields(command.OrderID(), command.After())
	if err != nil {
		return h.fail(ctx, logger, command.OrderID(), AutomationResult{}, fmt.Errorf("decode order snapshot: %w", err))
	}

	transition, ok, err := h.engine.Decide(after)
	if err != nil {
		return h.fail(ctx, logger, command.OrderID(), AutomationResult{}, err)
	}

	if !ok {
		span.SetAttributes(attribute.String("automation.outcome", string(OutcomeNoChange)))
		h.recorder.RecordOutcome(string(OutcomeNoChange))
		logger.DebugContext(ctx, "no status change required", "status", after.Status())
		return AutomationResult{
			Outcome:        OutcomeNoChange,
			PreviousStatus: after.Status(),
			NewStatus:      after.Status(),
		}, nil
	}

	result := AutomationResult{
		PreviousStatus: transition.From,
		NewStatus:      transition.To,
		Rule:           transition.Rule,
	}

	if err = h.applyTransition(ctx, transition); err != nil {
		return h.fail(ctx, logger, command.OrderID(), result, err)
	}

	logger.InfoContext(ctx, "order status automated",
		"prevStatus", transition.From,
		"newStatus", transition.To,
		"rule", transition.Rule,
	)

	if err = h.notify(ctx, logger, transition, &result); err != nil {
		return h.fail(ctx, logger, command.OrderID(), result, err)
	}

	result.Outcome = OutcomeTransitioned
	h.recorder.RecordOutcome(string(OutcomeTransitioned))

	span.SetAttributes(
		attribute.String("automation.outcome", string(OutcomeTransitioned)),
		attribute.String("automation.rule", transition.Rule),
		attribute.String("order.status", transition.To.String()),
		attribute.Bool("notification.delivered", result.NotificationDelivered),
	)

	return result, nil
}

// applyTransition writes the new status and its status_changed entry in one unit of work.
func (h AutomateOrderStatusCommandHandler) applyTransition(ctx context.Context, t services.Transition) error {
	now := h.clock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrTransitionWrite, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	store := uow.DocumentStore()

	err := store.Update(ctx, order.Collection, t.OrderID, map[string]any{
		order.FieldStatus:            t.To.String(),
		order.FieldStatusAutomatedBy: audit.AutomatedByCloud,
		order.FieldStatusAutomatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransitionWrite, err)
	}

	entry, err := audit.NewStatusChangedEntry(t.OrderID, t.From, t.To, audit.AutomatedByCloud, now)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuditWrite, err)
	}

	if _, err = store.Append(ctx, audit.Collection, entry.Fields()); err != nil {
		return fmt.Errorf("%w: %w", ErrAuditWrite, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrTransitionWrite, err)
	}

	return nil
}

// notify sends the status message and audits the outcome. A send failure, or
// a notification_sent entry that cannot be stored, ends up as a
// notification_failed entry. The returned error means no outcome entry could be
// stored at all.
func (h AutomateOrderStatusCommandHandler) notify(
	ctx context.Context,
	logger *slog.Logger,
	t services.Transition,
	result *AutomationResult,
) error {
	notificationType := h.sender.Type()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "NotifyOrderStatus",
		trace.WithAttributes(
			attribute.String("notification.type", notificationType),
			attribute.String("notification.topic", notification.OrderUpdatesTopic),
		),
	)
	defer span.End()

	msg, err := notification.NewStatusChangedMessage(t.OrderID, t.To)
	var token string
	if err == nil {
		token, err = h.sender.Send(ctx, msg)
	}

	failure := err
	if failure != nil {
		failure = fmt.Errorf("%w: %w", ErrNotificationSend, failure)
		logger.WarnContext(ctx, "order status notification failed", "error", failure)
	} else {
		result.NotificationDelivered = true
		result.NotificationToken = token

		var entry audit.Entry
		entry, err = audit.NewNotificationSentEntry(
			t.OrderID, notificationType, notification.OrderUpdatesTopic, token, h.clock(),
		)
		if err == nil {
			err = h.appendEntry(ctx, entry)
		}
		if err != nil {
			failure = fmt.Errorf("%w: notification_sent: %w", ErrAuditWrite, err)
			logger.ErrorContext(ctx, "failed to audit delivered notification", "error", failure)
		}
	}
	h.recorder.RecordNotification(result.NotificationDelivered)

	if failure == nil {
		return nil
	}

	span.RecordError(failure)
	span.SetStatus(codes.Error, "notification failed")

	entry, err := audit.NewNotificationFailedEntry(
		t.OrderID, notificationType, notification.OrderUpdatesTopic, failure, h.clock(),
	)
	if err == nil {
		err = h.appendEntry(ctx, entry)
	}
	if err != nil {
		return fmt.Errorf("%w: notification_failed: %w", ErrAuditWrite, err)
	}
	return nil
}

func (h AutomateOrderStatusCommandHandler) appendEntry(ctx context.Context, entry audit.Entry) error {
	_, err := h.uowFactory.Create().DocumentStore().Append(ctx, audit.Collection, entry.Fields())
	return err
}

// fail records a failed run as one automation_error entry.
func (h AutomateOrderStatusCommandHandler) fail(
	ctx context.Context,
	logger *slog.Logger,
	orderID string,
	result AutomationResult,
	cause error,
) (AutomationResult, error) {
	result.Outcome = OutcomeFailed
	result.Err = cause
	h.recorder.RecordOutcome(string(OutcomeFailed))

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("automation.outcome", string(OutcomeFailed)))
	span.RecordError(cause)
	span.SetStatus(codes.Error, "automation failed")

	logger.ErrorContext(ctx, "order status automation failed", "error", cause)

	entry, err := audit.NewAutomationErrorEntry(orderID, cause, h.clock())
	if err == nil {
		err = h.appendEntry(ctx, entry)
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to record automation error", "error", err)
		return result, fmt.Errorf("record automation error: %w", err)
	}

	return result, nil
}
