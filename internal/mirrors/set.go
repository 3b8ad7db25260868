package mirrors

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/clevercanary/atlas-sync/internal/status"
)

// ErrStillRefreshing is returned by WaitUntilIdle when mirrors are still
// refreshing after the maximum wait
var ErrStillRefreshing = errors.New("mirrors still refreshing")

// Mirror is the refresh surface shared by all mirrors
//
//go:generate mockgen -destination=mocks/mock_mirror.go -package=mocks github.com/clevercanary/atlas-sync/internal/mirrors Mirror
type Mirror interface {
	Name() string
	Status() status.RefreshStatus
	IsRefreshing() bool
	HasData() bool
	ForceRefresh(ctx context.Context)
	StartRefreshIfNeeded(ctx context.Context, force bool) error
}

// Set groups the mirrors so they can be observed and driven together
type Set struct {
	mirrors []Mirror
}

// NewSet creates a Set of the given mirrors
func NewSet(mirrors ...Mirror) *Set {
	return &Set{mirrors: mirrors}
}

// Names returns the names of the mirrors in registration order
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.mirrors))
	for _, m := range s.mirrors {
		names = append(names, m.Name())
	}
	return names
}

// Get returns the mirror with the given name
func (s *Set) Get(name string) (Mirror, bool) {
	for _, m := range s.mirrors {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// AnyRefreshing reports whether any mirror has a refresh attempt in flight
func (s *Set) AnyRefreshing() bool {
	for _, m := range s.mirrors {
		if m.IsRefreshing() {
			return true
		}
	}
	return false
}

// AllReady reports whether every mirror holds a snapshot
func (s *Set) AllReady() bool {
	for _, m := range s.mirrors {
		if !m.HasData() {
			return false
		}
	}
	return true
}

// Statuses returns the refresh status of each mirror keyed by name
func (s *Set) Statuses() map[string]status.RefreshStatus {
	statuses := make(map[string]status.RefreshStatus, len(s.mirrors))
	for _, m := range s.mirrors {
		statuses[m.Name()] = m.Status()
	}
	return statuses
}

// ForceRefreshAll starts a forced refresh of every mirror in the background
func (s *Set) ForceRefreshAll(ctx context.Context) {
	for _, m := range s.mirrors {
		m.ForceRefresh(ctx)
	}
}

// RefreshAllIfNeeded runs a refresh-if-needed attempt on every mirror and
// waits for the attempts to finish. Parameter resolution errors are joined.
func (s *Set) RefreshAllIfNeeded(ctx context.Context) error {
	errs := make([]error, len(s.mirrors))
	var wg sync.WaitGroup
	for i, m := range s.mirrors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = m.StartRefreshIfNeeded(ctx, false)
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

// WaitUntilIdle polls with exponential backoff until no mirror is refreshing.
// It gives up with ErrStillRefreshing after maxWait.
func (s *Set) WaitUntilIdle(ctx context.Context, maxWait time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 5 * time.Second

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if s.AnyRefreshing() {
			return struct{}{}, ErrStillRefreshing
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(maxWait))
	if err != nil {
		return fmt.Errorf("waiting for mirrors to finish refreshing: %w", err)
	}
	return nil
}
