package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"k8s.io/utils/clock"

	"github.com/clevercanary/atlas-sync/internal/status"
	"github.com/clevercanary/atlas-sync/internal/telemetry"
)

// Source supplies the data held by a Service
type Source[T, P any] interface {
	// RefreshParams resolves the values needed to decide on and perform a refresh,
	// e.g. the name of the latest catalog
	RefreshParams(ctx context.Context, prevData *T, prevParams *P) (P, error)

	// Fetch retrieves fresh data from the external system
	Fetch(ctx context.Context, params P, prevData *T) (T, error)

	// RefreshNeeded reports whether data is stale for the given parameters.
	// data is nil when no snapshot exists yet.
	RefreshNeeded(data *T, params P) bool
}

// Option configures a Service
type Option func(*settings)

type settings struct {
	clock           clock.PassiveClock
	autoStart       bool
	logger          *slog.Logger
	metrics         *telemetry.RefreshMetrics
	notReadyMessage string
	onSuccess       func()
	// infoStore is an InfoStore[T, P] set by WithStore
	infoStore any
}

// WithClock sets the clock used to stamp refresh attempts
func WithClock(c clock.PassiveClock) Option {
	return func(s *settings) {
		s.clock = c
	}
}

// WithAutoStart controls whether an initial refresh is started on construction
func WithAutoStart(autoStart bool) Option {
	return func(s *settings) {
		s.autoStart = autoStart
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithMetrics sets the refresh metrics
func WithMetrics(metrics *telemetry.RefreshMetrics) Option {
	return func(s *settings) {
		s.metrics = metrics
	}
}

// WithNotReadyMessage sets the message of the error returned before the first refresh completes
func WithNotReadyMessage(msg string) Option {
	return func(s *settings) {
		s.notReadyMessage = msg
	}
}

// WithStore sets the store holding the refresh info when New is given a nil
// store. New fails if the store does not match the service's type parameters.
func WithStore[T, P any](store InfoStore[T, P]) Option {
	return func(s *settings) {
		s.infoStore = store
	}
}

// WithOnRefreshSuccess sets a callback invoked after every completed refresh
func WithOnRefreshSuccess(fn func()) Option {
	return func(s *settings) {
		s.onSuccess = fn
	}
}

// Service is a single-flight, stale-tolerant cache over a Source
type Service[T, P any] struct {
	name   string
	source Source[T, P]
	store  InfoStore[T, P]
	settings

	// mu serializes reads and writes of the stored Info. It is never held
	// across parameter resolution or fetches.
	mu sync.Mutex
	// background tracks refreshes started by GetData and ForceRefresh.
	// backgroundMu orders Add calls before a concurrent Wait.
	background   sync.WaitGroup
	backgroundMu sync.RWMutex
}

// New creates a Service for the given source. If store is nil, the store set
// with WithStore is used, or else an in-memory store. When the store holds no
// info yet, fresh info is stored and, unless disabled with WithAutoStart(false),
// an initial forced refresh is started in the background.
func New[T, P any](name string, source Source[T, P], store InfoStore[T, P], opts ...Option) (*Service[T, P], error) {
	if name == "" {
		return nil, fmt.Errorf("refresh service name is required")
	}
	if source == nil {
		return nil, fmt.Errorf("refresh source is required")
	}

	s := &Service[T, P]{
		name:   name,
		source: source,
		settings: settings{
			clock:           clock.RealClock{},
			autoStart:       true,
			logger:          slog.Default(),
			notReadyMessage: fmt.Sprintf("%s data not initialized", name),
		},
	}
	for _, opt := range opts {
		opt(&s.settings)
	}

	if store == nil && s.infoStore != nil {
		typed, ok := s.infoStore.(InfoStore[T, P])
		if !ok {
			return nil, fmt.Errorf("refresh store for %s has type %T", name, s.infoStore)
		}
		store = typed
	}
	if store == nil {
		store = NewMemoryStore[T, P]()
	}
	s.store = store

	if store.Get() == nil {
		store.Set(&Info[T, P]{PrevOutcome: status.RefreshOutcomeNA})
		if s.autoStart {
			s.startInBackground(context.Background(), true)
		}
	}

	return s, nil
}

// Name returns the name of the service
func (s *Service[T, P]) Name() string {
	return s.name
}

// GetData returns the current snapshot after starting a background refresh if
// one may be needed. It never waits for that refresh. A *NotReadyError is
// returned if no snapshot has been produced yet.
func (s *Service[T, P]) GetData(ctx context.Context) (T, error) {
	s.startInBackground(ctx, false)

	s.mu.Lock()
	data := s.store.Get().Data
	s.mu.Unlock()

	if data == nil {
		var zero T
		return zero, &NotReadyError{Name: s.name, Message: s.notReadyMessage}
	}
	return *data, nil
}

// ForceRefresh starts a refresh attempt in the background regardless of
// staleness. An attempt already in flight still takes precedence.
func (s *Service[T, P]) ForceRefresh(ctx context.Context) {
	s.startInBackground(ctx, true)
}

// Status returns an observability snapshot of the service
func (s *Service[T, P]) Status() status.RefreshStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := s.store.Get()
	activity := status.RefreshActivityNotRefreshing
	switch {
	case info.Refreshing:
		activity = status.RefreshActivityRefreshing
	case info.AttemptingRefresh:
		activity = status.RefreshActivityAttemptingRefresh
	}

	return status.RefreshStatus{
		CurrentActivity: activity,
		ErrorMessage:    info.ErrorMessage,
		LastAttemptedAt: info.LastAttemptedAt,
		LastResolvedAt:  info.LastResolvedAt,
		PreviousOutcome: info.PrevOutcome,
	}
}

// IsRefreshing reports whether a refresh attempt is being evaluated or performed
func (s *Service[T, P]) IsRefreshing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := s.store.Get()
	return info.AttemptingRefresh || info.Refreshing
}

// HasData reports whether a snapshot has been produced
func (s *Service[T, P]) HasData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get().Data != nil
}

// Wait blocks until refreshes started in the background have returned.
// GetData and ForceRefresh calls made meanwhile block until Wait returns.
func (s *Service[T, P]) Wait() {
	s.backgroundMu.Lock()
	defer s.backgroundMu.Unlock()
	s.background.Wait()
}

func (s *Service[T, P]) startInBackground(ctx context.Context, force bool) {
	// Background refreshes outlive the request that triggered them
	ctx = context.WithoutCancel(ctx)
	s.backgroundMu.RLock()
	s.background.Add(1)
	s.backgroundMu.RUnlock()
	go func() {
		defer s.background.Done()
		if err := s.StartRefreshIfNeeded(ctx, force); err != nil {
			s.logger.Error("Refresh attempt aborted", "mirror", s.name, "error", err)
		}
	}()
}

// StartRefreshIfNeeded evaluates whether a refresh is needed and performs it,
// returning when the attempt is over. It returns immediately if another
// attempt is in flight. Only a failure to resolve refresh parameters is
// returned; fetch failures are recorded in the status.
func (s *Service[T, P]) StartRefreshIfNeeded(ctx context.Context, force bool) error {
	s.mu.Lock()
	info := s.store.Get()
	if info.AttemptingRefresh {
		s.mu.Unlock()
		return nil
	}
	info.AttemptingRefresh = true
	attemptedAt := s.clock.Now()
	info.LastAttemptedAt = &attemptedAt
	prevData := info.Data
	prevParams := info.PrevRefreshParams
	s.store.Set(info)
	s.mu.Unlock()

	params, err := s.source.RefreshParams(ctx, prevData, prevParams)
	if err != nil {
		s.update(func(info *Info[T, P]) {
			info.PrevOutcome = status.RefreshOutcomeFailed
			info.ErrorMessage = err.Error()
			info.AttemptingRefresh = false
		})
		return fmt.Errorf("failed to resolve refresh parameters for %s: %w", s.name, err)
	}

	var refreshing bool
	s.update(func(info *Info[T, P]) {
		info.PrevRefreshParams = &params
		if !force && (info.Refreshing || !s.source.RefreshNeeded(info.Data, params)) {
			info.AttemptingRefresh = false
			return
		}
		info.Refreshing = true
		refreshing = true
	})
	if !refreshing {
		return nil
	}

	s.logger.Info("Refreshing mirror", "mirror", s.name, "forced", force)
	startTime := s.clock.Now()
	data, fetchErr := s.source.Fetch(ctx, params, prevData)
	resolvedAt := s.clock.Now()

	s.update(func(info *Info[T, P]) {
		info.LastResolvedAt = &resolvedAt
		if fetchErr != nil {
			info.PrevOutcome = status.RefreshOutcomeFailed
			info.ErrorMessage = fetchErr.Error()
		} else {
			info.Data = &data
			info.PrevOutcome = status.RefreshOutcomeCompleted
			info.ErrorMessage = ""
		}
		info.Refreshing = false
		info.AttemptingRefresh = false
	})

	duration := resolvedAt.Sub(startTime)
	s.metrics.RecordRefresh(ctx, s.name, duration, fetchErr == nil)

	if fetchErr != nil {
		s.logger.Error("Mirror refresh failed", "mirror", s.name, "error", fetchErr)
		return nil
	}

	s.logger.Info("Mirror refresh completed", "mirror", s.name, "duration", duration)
	if s.onSuccess != nil {
		s.onSuccess()
	}
	return nil
}

// update applies fn to the current info and writes it back to the store
func (s *Service[T, P]) update(fn func(info *Info[T, P])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := s.store.Get()
	fn(info)
	s.store.Set(info)
}
