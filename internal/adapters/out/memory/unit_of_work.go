package memory

import (
	"context"
	"errors"
	"sync"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// ErrNoActiveTransaction is returned by Commit and Rollback without a preceding Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates units of work over a shared Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork buffers writes between Begin and Commit and applies them to the
// store atomically. Reads always see committed state.
type UnitOfWork struct {
	mu     sync.Mutex
	store  *Store
	active bool
	ops    []op
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if uow.active {
		return nil
	}
	uow.active = true
	uow.ops = nil
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if !uow.active {
		return ErrNoActiveTransaction
	}

	ops := uow.ops
	uow.active = false
	uow.ops = nil
	return uow.store.applyAll(ops)
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.active = false
	uow.ops = nil
	return nil
}

// DocumentStore returns the store itself outside a transaction and a buffering view inside one.
func (uow *UnitOfWork) DocumentStore() ports.DocumentStore {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if !uow.active {
		return uow.store
	}
	return txStore{uow: uow}
}

func (uow *UnitOfWork) buffer(o op) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if !uow.active {
		return ErrNoActiveTransaction
	}
	o.fields = copyFields(o.fields)
	uow.ops = append(uow.ops, o)
	return nil
}

func (uow *UnitOfWork) pendingCreate(collection, id string) bool {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	for _, o := range uow.ops {
		if o.kind == opSet && o.collection == collection && o.id == id {
			return true
		}
	}
	return false
}

type txStore struct {
	uow *UnitOfWork
}

func (t txStore) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	return t.uow.store.Get(ctx, collection, id)
}

func (t txStore) Set(_ context.Context, collection, id string, fields map[string]any) error {
	return t.uow.buffer(op{kind: opSet, collection: collection, id: id, fields: fields})
}

func (t txStore) Update(_ context.Context, collection, id string, fields map[string]any) error {
	if !t.uow.store.exists(collection, id) && !t.uow.pendingCreate(collection, id) {
		return errs.NewObjectNotFoundError(collection, id)
	}
	return t.uow.buffer(op{kind: opUpdate, collection: collection, id: id, fields: fields})
}

func (t txStore) Append(_ context.Context, collection string, fields map[string]any) (string, error) {
	id := kernel.NewUUID().String()
	if err := t.uow.buffer(op{kind: opSet, collection: collection, id: id, fields: fields}); err != nil {
		return "", err
	}
	return id, nil
}
