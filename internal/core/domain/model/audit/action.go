package audit

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Action names what an audit entry records.
type Action string

const (
	StatusChanged      Action = "status_changed"
	NotificationSent   Action = "notification_sent"
	NotificationFailed Action = "notification_failed"
	AutomationError    Action = "automation_error"
)

// Validate rejects labels outside the fixed action set.
func (a Action) Validate() error {
	switch a {
	case StatusChanged, NotificationSent, NotificationFailed, AutomationError:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a known audit action", string(a)))
	}
}

// String implements fmt.Stringer.
func (a Action) String() string {
	return string(a)
}
