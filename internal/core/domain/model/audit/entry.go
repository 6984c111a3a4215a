package audit

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via one of the New*Entry constructors")

// Collection is the document collection holding audit entries.
const Collection = "order_audit_trail"

// AutomatedByCloud marks changes made by the automation rather than a person.
const AutomatedByCloud = "cloud"

// Document field names of an audit entry.
const (
	FieldOrderID          = "orderId"
	FieldAction           = "action"
	FieldTimestamp        = "timestamp"
	FieldPrevStatus       = "prevStatus"
	FieldNewStatus        = "newStatus"
	FieldAutomatedBy      = "automatedBy"
	FieldBefore           = "before"
	FieldAfter            = "after"
	FieldNotificationType = "notificationType"
	FieldTopic            = "topic"
	FieldResult           = "result"
	FieldError            = "error"
)

// Entry is one immutable audit record.
type Entry struct {
	id        string
	orderID   string
	action    Action
	timestamp time.Time

	prevStatus  order.Status
	newStatus   order.Status
	automatedBy string

	notificationType string
	topic            string
	result           string

	errorDescription string

	guard guard.ConstructorGuard
}

// NewStatusChangedEntry records an applied status transition.
func NewStatusChangedEntry(orderID string, prev, next order.Status, automatedBy string, at time.Time) (Entry, error) {
	if next.IsEmpty() {
		return Entry{}, errs.NewValueIsRequiredError(FieldNewStatus)
	}
	if automatedBy == "" {
		return Entry{}, errs.NewValueIsRequiredError(FieldAutomatedBy)
	}

	e, err := newEntry(orderID, StatusChanged, at)
	if err != nil {
		return Entry{}, err
	}
	e.prevStatus = prev
	e.newStatus = next
	e.automatedBy = automatedBy
	return e, nil
}

// NewNotificationSentEntry records a delivered notification and the sender's token.
func NewNotificationSentEntry(orderID, notificationType, topic, result string, at time.Time) (Entry, error) {
	e, err := newNotificationEntry(orderID, NotificationSent, notificationType, topic, at)
	if err != nil {
		return Entry{}, err
	}
	e.result = result
	return e, nil
}

// NewNotificationFailedEntry records a notification the sender rejected.
func NewNotificationFailedEntry(orderID, notificationType, topic string, cause error, at time.Time) (Entry, error) {
	e, err := newNotificationEntry(orderID, NotificationFailed, notificationType, topic, at)
	if err != nil {
		return Entry{}, err
	}
	e.errorDescription = describe(cause)
	return e, nil
}

// NewAutomationErrorEntry records a failed automation run.
func NewAutomationErrorEntry(orderID string, cause error, at time.Time) (Entry, error) {
	e, err := newEntry(orderID, AutomationError, at)
	if err != nil {
		return Entry{}, err
	}
	e.errorDescription = describe(cause)
	return e, nil
}

func newNotificationEntry(orderID string, action Action, notificationType, topic string, at time.Time) (Entry, error) {
	if err := errors.Join(
		required(FieldNotificationType, notificationType),
		required(FieldTopic, topic),
	); err != nil {
		return Entry{}, err
	}

	e, err := newEntry(orderID, action, at)
	if err != nil {
		return Entry{}, err
	}
	e.notificationType = notificationType
	e.topic = topic
	return e, nil
}

func newEntry(orderID string, action Action, at time.Time) (Entry, error) {
	if err := errors.Join(
		required(FieldOrderID, orderID),
		action.Validate(),
	); err != nil {
		return Entry{}, err
	}
	if at.IsZero() {
		return Entry{}, errs.NewValueIsRequiredError(FieldTimestamp)
	}

	return Entry{
		orderID:   orderID,
		action:    action,
		timestamp: at,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func required(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func describe(cause error) string {
	if cause == nil {
		return "unknown error"
	}
	return cause.Error()
}

// Validate ensures the entry was built through a constructor.
func (e Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID is the generated document id; empty until the entry is read back from a store.
func (e Entry) ID() string { return e.id }

// OrderID returns the order the entry belongs to.
func (e Entry) OrderID() string {
	return e.orderID
}

// Action returns what the entry records.
func (e Entry) Action() Action {
	return e.action
}

// Timestamp returns when the recorded action happened.
func (e Entry) Timestamp() time.Time {
	return e.timestamp
}

// PrevStatus returns the status observed before a status change.
func (e Entry) PrevStatus() order.Status {
	return e.prevStatus
}

// NewStatus returns the status written by a status change.
func (e Entry) NewStatus() order.Status {
	return e.newStatus
}

// AutomatedBy returns who applied a status change.
func (e Entry) AutomatedBy() string {
	return e.automatedBy
}

// NotificationType returns the notification channel of a notification entry.
func (e Entry) NotificationType() string {
	return e.notificationType
}

// Topic returns the notification topic of a notification entry.
func (e Entry) Topic() string {
	return e.topic
}

// Result returns the sender's delivery token of a notification_sent entry.
func (e Entry) Result() string {
	return e.result
}

// ErrorDescription returns the failure text of notification_failed and automation_error entries.
func (e Entry) ErrorDescription() string {
	return e.errorDescription
}

// Fields renders the entry as audit document fields. Only the payload fields
// belonging to the entry's action are present.
func (e Entry) Fields() map[string]any {
	fields := map[string]any{
		FieldOrderID:   e.orderID,
		FieldAction:    e.action.String(),
		FieldTimestamp: e.timestamp,
	}

	switch e.action {
	case StatusChanged:
		fields[FieldPrevStatus] = e.prevStatus.String()
		fields[FieldNewStatus] = e.newStatus.String()
		fields[FieldAutomatedBy] = e.automatedBy
		fields[FieldBefore] = map[string]any{order.FieldStatus: e.prevStatus.String()}
		fields[FieldAfter] = map[string]any{order.FieldStatus: e.newStatus.String()}
	case NotificationSent:
		fields[FieldNotificationType] = e.notificationType
		fields[FieldTopic] = e.topic
		fields[FieldResult] = e.result
	case NotificationFailed:
		fields[FieldNotificationType] = e.notificationType
		fields[FieldTopic] = e.topic
		fields[FieldError] = e.errorDescription
	case AutomationError:
		fields[FieldError] = e.errorDescription
	}

	return fields
}

// FromFields restores an entry read back from the audit collection.
func FromFields(id string, fields map[string]any) (Entry, error) {
	action := Action(stringField(fields, FieldAction))
	if err := action.Validate(); err != nil {
		return Entry{}, err
	}

	at, err := timeField(fields[FieldTimestamp])
	if err != nil {
		return Entry{}, err
	}

	e, err := newEntry(stringField(fields, FieldOrderID), action, at)
	if err != nil {
		return Entry{}, err
	}

	e.id = id
	e.prevStatus = order.Status(stringField(fields, FieldPrevStatus))
	e.newStatus = order.Status(stringField(fields, FieldNewStatus))
	e.automatedBy = stringField(fields, FieldAutomatedBy)
	e.notificationType = stringField(fields, FieldNotificationType)
	e.topic = stringField(fields, FieldTopic)
	e.result = stringField(fields, FieldResult)
	e.errorDescription = stringField(fields, FieldError)
	return e, nil
}

func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}

func timeField(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, errs.NewValueIsInvalidErrorWithCause(FieldTimestamp, err)
		}
		return t, nil
	default:
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(FieldTimestamp, fmt.Errorf("%T is not a timestamp", raw))
	}
}
