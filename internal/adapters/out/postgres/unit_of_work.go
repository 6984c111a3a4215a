// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// The Unit of Work pattern maintains a list of documents affected by a business
// transaction and coordinates writing out changes.
//
// Key Features:
//   - Transaction management across multiple document writes
//   - Document tracking for post-commit processing
//   - Proper isolation between concurrent operations
//   - Change feed entries written in the same transaction as the documents
//
// Usage Patterns:
//
// Basic Transaction Management:
//
//	factory := NewGormUnitOfWorkFactory(db, logger, order.Collection)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	store := uow.DocumentStore()
//	if err := store.Update(ctx, order.Collection, id, fields); err != nil {
//	    return err
//	}
//	if _, err := store.Append(ctx, audit.Collection, entry.Fields()); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Updates lock the document row until the transaction ends
package postgres

import (
	"context"
	"log/slog"

	"orderflow/internal/adapters/out/postgres/docstore"
	"orderflow/internal/core/ports"

	"gorm.io/gorm"
)

// trackedDocument represents a document written during the unit of work.
type trackedDocument struct {
	Collection string
	ID         string
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db      *gorm.DB
	watched []string
	logger  *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// Modifications of documents in the watched collections are recorded on the change feed.
// Every commit is logged at debug level with the documents it wrote; a nil logger
// falls back to slog.Default.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, logger, order.Collection)
func NewGormUnitOfWorkFactory(db *gorm.DB, logger *slog.Logger, watched ...string) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{
		db:      db,
		watched: watched,
		logger:  logger.With("component", "GormUnitOfWork"),
	}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:               f.db,
		watched:          f.watched,
		logger:           f.logger,
		trackedDocuments: make([]trackedDocument, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks the documents
// written through its DocumentStore.
type GormUnitOfWork struct {
	db               *gorm.DB
	tx               *gorm.DB
	watched          []string
	logger           *slog.Logger
	trackedDocuments []trackedDocument
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}
	uow.trackedDocuments = uow.trackedDocuments[:0]

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or if the commit operation fails.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	uow.logger.DebugContext(ctx, "unit of work committed", "documents", uow.TrackedDocuments())
	return nil
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or if the rollback operation fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedDocuments = uow.trackedDocuments[:0]
	return err
}

// DocumentStore provides document persistence within the unit of work.
// Operations execute within the current transaction if one is active,
// otherwise they use the main database connection for immediate execution.
func (uow *GormUnitOfWork) DocumentStore() ports.DocumentStore {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return docstore.NewGormDocumentStore(db, uow, uow.watched...)
}

// TrackDocument registers a document as written within this unit of work.
// Called by the document store on every successful write.
func (uow *GormUnitOfWork) TrackDocument(collection, id string) {
	uow.trackedDocuments = append(uow.trackedDocuments, trackedDocument{
		Collection: collection,
		ID:         id,
	})
}

// TrackedDocuments returns "collection/id" keys of the documents written so far.
func (uow *GormUnitOfWork) TrackedDocuments() []string {
	keys := make([]string, 0, len(uow.trackedDocuments))
	for _, d := range uow.trackedDocuments {
		keys = append(keys, d.Collection+"/"+d.ID)
	}
	return keys
}
