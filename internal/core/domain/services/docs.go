// Package services provides domain services that derive decisions from order
// snapshots without touching storage or delivery infrastructure.
//
// The package includes:
//   - StatusRule: a single "when the items look like this, the order is that" rule
//   - StatusRuleEngine: an ordered, first-match-wins list of StatusRules
//
// Domain services are pure: they receive snapshots and return decisions, leaving
// side effects to the application layer command handlers.
package services
