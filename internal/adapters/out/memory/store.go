// Package memory provides an in-process implementation of the unit of work
// and repositories. A unit of work holds the store's single writer slot from
// Begin until Commit or Rollback and works on a private copy of the state,
// which Commit swaps in. It backs the Docker-free tests of the command layer.
package memory

import (
	"context"
	"errors"
	"maps"
	"slices"

	"production/internal/core/domain/model/alert"
	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/step"
	"production/internal/core/ports"
)

// ErrNoTransaction is returned when a repository or Commit/Rollback is used
// outside Begin.
var ErrNoTransaction = errors.New("memory: no active transaction")

type lineRecord struct {
	id       kernel.UUID
	name     string
	capacity int
	status   line.Status
}

type state struct {
	lines   map[kernel.UUID]lineRecord
	orders  map[kernel.UUID]order.Record
	steps   map[kernel.UUID]step.Record
	alerts  map[kernel.UUID]alert.Record
	history []history.Record
}

func newState() state {
	return state{
		lines:  map[kernel.UUID]lineRecord{},
		orders: map[kernel.UUID]order.Record{},
		steps:  map[kernel.UUID]step.Record{},
		alerts: map[kernel.UUID]alert.Record{},
	}
}

// clone copies the maps; records are replaced wholesale on write, never mutated.
func (s state) clone() state {
	return state{
		lines:   maps.Clone(s.lines),
		orders:  maps.Clone(s.orders),
		steps:   maps.Clone(s.steps),
		alerts:  maps.Clone(s.alerts),
		history: slices.Clone(s.history),
	}
}

// Store is the shared state behind every unit of work created by its factory.
type Store struct {
	writer chan struct{}
	state  state
}

func NewStore() *Store {
	return &Store{
		writer: make(chan struct{}, 1),
		state:  newState(),
	}
}

// History returns the committed ledger in append order.
func (s *Store) History(ctx context.Context) ([]*history.Entry, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()

	entries := make([]*history.Entry, 0, len(s.state.history))
	for _, r := range s.state.history {
		e, err := history.RestoreEntry(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.writer <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.writer
}

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork is not safe for concurrent use; create one per operation.
type UnitOfWork struct {
	store *Store
	work  *state
}

// Begin waits for the writer slot or for ctx to end. Calling Begin twice is a no-op.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.work != nil {
		return nil
	}
	if err := u.store.acquire(ctx); err != nil {
		return err
	}

	work := u.store.state.clone()
	u.work = &work
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.work == nil {
		return ErrNoTransaction
	}

	u.store.state = *u.work
	u.work = nil
	u.store.release()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.work == nil {
		return ErrNoTransaction
	}

	u.work = nil
	u.store.release()
	return nil
}

func (u *UnitOfWork) LineRepository() ports.LineRepository {
	return &lineRepository{uow: u}
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: u}
}

func (u *UnitOfWork) StepRepository() ports.StepRepository {
	return &stepRepository{uow: u}
}

func (u *UnitOfWork) AlertRepository() ports.AlertRepository {
	return &alertRepository{uow: u}
}

func (u *UnitOfWork) HistoryRepository() ports.HistoryRepository {
	return &historyRepository{uow: u}
}

func (u *UnitOfWork) current() (*state, error) {
	if u.work == nil {
		return nil, ErrNoTransaction
	}
	return u.work, nil
}
