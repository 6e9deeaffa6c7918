package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/fatura/internal/state"
)

// Loader is the read-only companion to Service. It loads and repairs the
// persisted document on every call, so concurrent readers always see the
// latest saved state without holding a copy.
type Loader struct {
	store Store
	norm  *state.Normalizer
}

func NewLoader(store Store, ids state.Generator, now func() time.Time) *Loader {
	return &Loader{
		store: store,
		norm:  state.NewNormalizer(ids, now),
	}
}

func (l *Loader) State(ctx context.Context) (*state.State, error) {
	raw, err := l.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	return l.norm.Normalize(raw), nil
}
