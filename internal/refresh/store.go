package refresh

import (
	"sync"
	"time"

	"github.com/clevercanary/atlas-sync/internal/status"
)

// Info is the refresh state of a single Service
type Info[T, P any] struct {
	// Data is the last successfully fetched snapshot, nil until the first refresh completes
	Data *T

	// AttemptingRefresh is set while an attempt is being evaluated or performed
	AttemptingRefresh bool

	// Refreshing is set while new data is being fetched
	Refreshing bool

	LastAttemptedAt *time.Time
	LastResolvedAt  *time.Time
	PrevOutcome     status.RefreshOutcome
	ErrorMessage    string

	// PrevRefreshParams are the parameters resolved by the most recent attempt
	PrevRefreshParams *P
}

// InfoStore holds the refresh Info of a Service.
// Get returns nil when no info has been stored yet. Get may return a copy:
// the Service writes every change back with Set.
type InfoStore[T, P any] interface {
	Get() *Info[T, P]
	Set(info *Info[T, P])
}

type memoryStore[T, P any] struct {
	mu   sync.RWMutex
	info *Info[T, P]
}

// NewMemoryStore returns an InfoStore that keeps the info for the lifetime of the process
func NewMemoryStore[T, P any]() InfoStore[T, P] {
	return &memoryStore[T, P]{}
}

func (m *memoryStore[T, P]) Get() *Info[T, P] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.info
}

func (m *memoryStore[T, P]) Set(info *Info[T, P]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.info = info
}
