package services

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
)

// ErrNoStatusRules is returned when an engine is built without any rule.
var ErrNoStatusRules = errors.New("status rule engine requires at least one rule")

// StatusRule derives a candidate order status from an order snapshot.
// A rule that does not apply returns ok == false.
type StatusRule interface {
	Name() string
	Evaluate(o *order.Order) (status order.Status, ok bool)
}

// AllItemsFulfilledRule maps an order whose items are all fulfilled to order.Fulfilled.
type AllItemsFulfilledRule struct{}

func (AllItemsFulfilledRule) Name() string {
	return "all_items_fulfilled"
}

func (AllItemsFulfilledRule) Evaluate(o *order.Order) (order.Status, bool) {
	if o.AllItems(order.ItemFulfilled) {
		return order.Fulfilled, true
	}
	return "", false
}

// AnyItemBackorderedRule maps an order with at least one backordered item to order.Backordered.
type AnyItemBackorderedRule struct{}

func (AnyItemBackorderedRule) Name() string {
	return "any_item_backordered"
}

func (AnyItemBackorderedRule) Evaluate(o *order.Order) (order.Status, bool) {
	if o.AnyItem(order.ItemBackordered) {
		return order.Backordered, true
	}
	return "", false
}

// DefaultStatusRules returns the rules the automation ships with, in priority order.
func DefaultStatusRules() []StatusRule {
	return []StatusRule{
		AllItemsFulfilledRule{},
		AnyItemBackorderedRule{},
	}
}

// Transition is a decided status change for a single order.
type Transition struct {
	OrderID string
	From    order.Status
	To      order.Status
	Rule    string
}

// StatusRuleEngine evaluates an ordered list of StatusRules against an order snapshot.
//
// Key responsibilities:
//   - Picking the candidate status of the first rule that applies
//   - Suppressing transitions to the status the order already has
//
// Business rules:
//   - Rules are evaluated in the order they were given; the first match wins
//   - An order without items never matches the built-in rules
//   - New rules (shipped, delivered, ...) are appended without touching existing ones
//
// Example usage:
//
//	engine, _ := services.NewStatusRuleEngine(services.DefaultStatusRules()...)
//	after, _ := order.FromFields(orderID, change.After)
//
//	transition, ok, err := engine.Decide(after)
//	if err != nil {
//	    return err
//	}
//	if !ok {
//	    // nothing to do
//	    return nil
//	}
//	// apply transition.To
type StatusRuleEngine struct {
	rules []StatusRule
}

// NewStatusRuleEngine creates an engine evaluating rules in the given order.
func NewStatusRuleEngine(rules ...StatusRule) (StatusRuleEngine, error) {
	if len(rules) == 0 {
		return StatusRuleEngine{}, ErrNoStatusRules
	}

	copied := make([]StatusRule, len(rules))
	copy(copied, rules)

	return StatusRuleEngine{rules: copied}, nil
}

// Rules returns the engine's rules in evaluation order.
func (e StatusRuleEngine) Rules() []StatusRule {
	out := make([]StatusRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Candidate returns the status proposed by the first matching rule together with the rule's name.
func (e StatusRuleEngine) Candidate(o *order.Order) (order.Status, string, bool) {
	for _, rule := range e.rules {
		if status, ok := rule.Evaluate(o); ok {
			return status, rule.Name(), true
		}
	}
	return "", "", false
}

// Decide returns the transition the order should go through, if any.
//
// Returns:
//   - Transition: the decided change, from the snapshot's status to the candidate
//   - bool: false when no rule matches or the candidate equals the current status
//   - error: validation error when the snapshot was not properly constructed
func (e StatusRuleEngine) Decide(o *order.Order) (Transition, bool, error) {
	if err := o.Validate(); err != nil {
		return Transition{}, false, err
	}

	candidate, rule, ok := e.Candidate(o)
	if !ok || candidate == o.Status() {
		return Transition{}, false, nil
	}

	return Transition{
		OrderID: o.ID(),
		From:    o.Status(),
		To:      candidate,
		Rule:    rule,
	}, true, nil
}
