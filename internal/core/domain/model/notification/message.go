// Package notification builds the push messages sent when the automation
// changes an order's status.
package notification

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

// OrderUpdatesTopic is the broadcast topic every order status notification goes to.
const OrderUpdatesTopic = "order-updates"

// Data payload keys.
const (
	DataOrderID   = "orderId"
	DataNewStatus = "newStatus"
	DataAutomated = "automated"
)

// Message is an outgoing push notification. It is never persisted.
type Message struct {
	topic string
	title string
	body  string
	data  map[string]string

	guard guard.ConstructorGuard
}

// NewMessage creates a message addressed to topic.
func NewMessage(topic, title, body string, data map[string]string) (Message, error) {
	if topic == "" {
		return Message{}, errs.NewValueIsRequiredError("topic")
	}

	copied := make(map[string]string, len(data))
	for k, v := range data {
		copied[k] = v
	}

	return Message{
		topic: topic,
		title: title,
		body:  body,
		data:  copied,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewStatusChangedMessage builds the broadcast sent after an automated transition.
func NewStatusChangedMessage(orderID string, newStatus order.Status) (Message, error) {
	if orderID == "" {
		return Message{}, errs.NewValueIsRequiredError("order id")
	}

	return NewMessage(
		OrderUpdatesTopic,
		"Order Status Updated",
		fmt.Sprintf("Order %s status changed to %s automatically.", orderID, newStatus),
		map[string]string{
			DataOrderID:   orderID,
			DataNewStatus: newStatus.String(),
			DataAutomated: "true",
		},
	)
}

// Validate ensures the message was built through a constructor.
func (m Message) Validate() error {
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

func (m Message) Topic() string {
	return m.topic
}

func (m Message) Title() string {
	return m.title
}

func (m Message) Body() string {
	return m.body
}

// Data returns a copy of the structured payload.
func (m Message) Data() map[string]string {
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}
