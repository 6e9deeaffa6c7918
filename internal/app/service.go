package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/fatura/internal/state"
)

var (
	// ErrNotFound is returned when an id does not resolve to an entity.
	ErrNotFound = errors.New("not found")
	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("invalid status")
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=app

// Store persists the whole application state as one serialized document.
// Load returns the raw decoded document (nil when nothing has been stored
// yet); the service repairs it through the normalizer before use.
type Store interface {
	Load(ctx context.Context) (any, error)
	Save(ctx context.Context, st *state.State) error
}

// Service owns the current application state. Every mutation derives a new
// state value, persists it, and only then replaces the current one, so a
// failed save leaves the previous state intact.
type Service struct {
	store Store
	ids   state.Generator
	now   func() time.Time
	norm  *state.Normalizer

	st *state.State
}

func NewService(store Store, ids state.Generator, now func() time.Time) *Service {
	return &Service{
		store: store,
		ids:   ids,
		now:   now,
		norm:  state.NewNormalizer(ids, now),
	}
}

// Open loads the stored document and repairs it into the active state.
// A missing document yields the default empty state.
func (s *Service) Open(ctx context.Context) error {
	raw, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	s.st = s.norm.Normalize(raw)

	return nil
}

// State returns the current state. Callers must treat it as read-only; all
// mutations go through the service.
func (s *Service) State() *state.State {
	return s.st
}

// apply runs mutate against a copy of the current state, persists the copy,
// and swaps it in. The previous state survives any failure.
func (s *Service) apply(ctx context.Context, mutate func(st *state.State) error) error {
	next := s.st.Clone()

	if err := mutate(next); err != nil {
		return err
	}

	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	s.st = next

	return nil
}

// Replace normalizes an imported raw document and swaps it in wholesale.
// Recognizing the document at all is the importer's job; by the time a raw
// value reaches here, repair is total.
func (s *Service) Replace(ctx context.Context, raw any) error {
	next := s.norm.Normalize(raw)

	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("saving imported state: %w", err)
	}

	s.st = next

	return nil
}

func (s *Service) today() state.Date {
	return state.DateOf(s.now())
}
