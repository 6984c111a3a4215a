// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions keep the status write and its audit entry consistent.
type (
	// TxManager handles transaction lifecycle.
	// Ensures atomic operations across multiple document writes.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DocumentStoreFactory provides access to the document store within a transaction.
	DocumentStoreFactory interface {
		DocumentStore() ports.DocumentStore
	}

	// UoW manages transactions over document writes.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   store := uow.DocumentStore()
	//   // ... perform writes
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DocumentStoreFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)

// AutomationRecorder observes automation outcomes. Implementations must be safe for concurrent use.
type AutomationRecorder interface {
	RecordOutcome(outcome string)
	RecordNotification(delivered bool)
}

// NopAutomationRecorder discards every observation.
type NopAutomationRecorder struct{}

func (NopAutomationRecorder) RecordOutcome(string) {}

func (NopAutomationRecorder) RecordNotification(bool) {}
