package refresh

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/clevercanary/atlas-sync/internal/status"
)

const testMirrorName = "test-mirror"

// fakeSource serves integers; the refresh parameter is a catalog name and a
// refresh is needed whenever the catalog changes, mirroring the project catalog.
type fakeSource struct {
	mu         sync.Mutex
	catalog    string
	paramsErr  error
	fetchErr   error
	fetchValue int
	// block, when set, makes Fetch wait until it is closed
	block      chan struct{}
	entered    chan struct{}
	fetchCalls atomic.Int32
	// fetched is the catalog of the last successful fetch
	fetched string
}

func (f *fakeSource) RefreshParams(_ context.Context, _ *int, _ *string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.paramsErr != nil {
		return "", f.paramsErr
	}
	return f.catalog, nil
}

func (f *fakeSource) Fetch(_ context.Context, catalog string, _ *int) (int, error) {
	f.fetchCalls.Add(1)
	f.mu.Lock()
	block, entered := f.block, f.entered
	f.mu.Unlock()
	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		<-block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return 0, f.fetchErr
	}
	f.fetched = catalog
	return f.fetchValue, nil
}

func (f *fakeSource) RefreshNeeded(data *int, catalog string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return data == nil || f.fetched != catalog
}

func (f *fakeSource) set(fn func(*fakeSource)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func newTestService(t *testing.T, src *fakeSource, opts ...Option) (*Service[int, string], InfoStore[int, string]) {
	t.Helper()
	store := NewMemoryStore[int, string]()
	opts = append([]Option{WithAutoStart(false)}, opts...)
	svc, err := New[int, string](testMirrorName, src, store, opts...)
	require.NoError(t, err)
	return svc, store
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		svcName string
		source  Source[int, string]
		wantErr string
	}{
		{
			name:    "missing name",
			svcName: "",
			source:  &fakeSource{},
			wantErr: "name is required",
		},
		{
			name:    "missing source",
			svcName: testMirrorName,
			source:  nil,
			wantErr: "source is required",
		},
		{
			name:    "valid",
			svcName: testMirrorName,
			source:  &fakeSource{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, err := New[int, string](tt.svcName, tt.source, nil, WithAutoStart(false))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testMirrorName, svc.Name())
			assert.Equal(t, status.RefreshOutcomeNA, svc.Status().PreviousOutcome)
		})
	}
}

func TestNew_AutoStartRunsInitialRefresh(t *testing.T) {
	t.Parallel()

	src := &fakeSource{catalog: "dcp1", fetchValue: 4}
	svc, err := New[int, string](testMirrorName, src, nil)
	require.NoError(t, err)
	svc.Wait()

	data, err := svc.GetData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, data)
	assert.Equal(t, int32(1), src.fetchCalls.Load())
}

func TestNew_ExistingInfoSkipsInitialRefresh(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore[int, string]()
	existing := 7
	store.Set(&Info[int, string]{Data: &existing, PrevOutcome: status.RefreshOutcomeCompleted})

	src := &fakeSource{catalog: "dcp1", fetchValue: 4}
	svc, err := New[int, string](testMirrorName, src, store)
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, int32(0), src.fetchCalls.Load())
	assert.True(t, svc.HasData())
}

func TestGetData_NotReadyGate(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	src := &fakeSource{catalog: "dcp1", fetchValue: 4, block: block}
	svc, _ := newTestService(t, src, WithNotReadyMessage("projects not initialized"))

	_, err := svc.GetData(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotReady)
	var notReady *NotReadyError
	require.True(t, errors.As(err, &notReady))
	assert.Equal(t, "projects not initialized", notReady.Error())
	assert.Equal(t, testMirrorName, notReady.Name)

	close(block)
	svc.Wait()

	for i := 0; i < 3; i++ {
		data, err := svc.GetData(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4, data)
	}
	svc.Wait()
}

func TestStartRefreshIfNeeded_SingleFlight(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	entered := make(chan struct{}, 1)
	src := &fakeSource{catalog: "dcp1", fetchValue: 4, block: block, entered: entered}
	svc, _ := newTestService(t, src)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- svc.StartRefreshIfNeeded(ctx, true)
	}()
	<-entered
	assert.True(t, svc.IsRefreshing())
	assert.Equal(t, status.RefreshActivityRefreshing, svc.Status().CurrentActivity)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.StartRefreshIfNeeded(ctx, false))
		}()
	}
	// Losers return without waiting on the in-flight fetch
	wg.Wait()

	close(block)
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), src.fetchCalls.Load())
	assert.False(t, svc.IsRefreshing())
	assert.Equal(t, status.RefreshActivityNotRefreshing, svc.Status().CurrentActivity)
}

func TestStartRefreshIfNeeded_FailedFetchKeepsStaleData(t *testing.T) {
	t.Parallel()

	src := &fakeSource{catalog: "dcp1", fetchValue: 4}
	svc, _ := newTestService(t, src)
	ctx := context.Background()

	require.NoError(t, svc.StartRefreshIfNeeded(ctx, false))
	before, err := svc.GetData(ctx)
	require.NoError(t, err)
	svc.Wait()

	src.set(func(f *fakeSource) {
		f.catalog = "dcp2"
		f.fetchErr = errors.New("azul unavailable")
	})
	require.NoError(t, svc.StartRefreshIfNeeded(ctx, false))

	after, err := svc.GetData(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	st := svc.Status()
	assert.Equal(t, status.RefreshOutcomeFailed, st.PreviousOutcome)
	assert.Equal(t, "azul unavailable", st.ErrorMessage)
	svc.Wait()
}

func TestStartRefreshIfNeeded_ParamsFailurePropagates(t *testing.T) {
	t.Parallel()

	src := &fakeSource{catalog: "dcp1", fetchValue: 4}
	svc, _ := newTestService(t, src)
	ctx := context.Background()
	require.NoError(t, svc.StartRefreshIfNeeded(ctx, false))

	paramsErr := errors.New("catalog lookup failed")
	src.set(func(f *fakeSource) { f.paramsErr = paramsErr })

	err := svc.StartRefreshIfNeeded(ctx, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, paramsErr)

	st := svc.Status()
	assert.Equal(t, status.RefreshOutcomeFailed, st.PreviousOutcome)
	assert.Equal(t, "catalog lookup failed", st.ErrorMessage)
	assert.False(t, svc.IsRefreshing())
	assert.Equal(t, int32(1), src.fetchCalls.Load())

	data, err := svc.GetData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, data)
	svc.Wait()
}

func TestStartRefreshIfNeeded_SkipsWhenNotNeeded(t *testing.T) {
	t.Parallel()

	src := &fakeSource{catalog: "dcp1", fetchValue: 4}
	svc, store := newTestService(t, src)
	ctx := context.Background()

	require.NoError(t, svc.StartRefreshIfNeeded(ctx, false))
	require.NoError(t, svc.StartRefreshIfNeeded(ctx, false))
	assert.Equal(t, int32(1), src.fetchCalls.Load())

	info := store.Get()
	require.NotNil(t, info.PrevRefreshParams)
	assert.Equal(t, "dcp1", *info.PrevRefreshParams)

	// Forcing refreshes even though the catalog has not changed
	require.NoError(t, svc.StartRefreshIfNeeded(ctx, true))
	assert.Equal(t, int32(2), src.fetchCalls.Load())
}

func TestStartRefreshIfNeeded_OnRefreshSuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	src := &fakeSource{catalog: "dcp1", fetchValue: 4}
	svc, _ := newTestService(t, src, WithOnRefreshSuccess(func() { calls.Add(1) }))
	ctx := context.Background()

	require.NoError(t, svc.StartRefreshIfNeeded(ctx, true))
	assert.Equal(t, int32(1), calls.Load())

	src.set(func(f *fakeSource) { f.fetchErr = errors.New("boom") })
	require.NoError(t, svc.StartRefreshIfNeeded(ctx, true))
	assert.Equal(t, int32(1), calls.Load())
}

func TestStatus_Timestamps(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clk := testingclock.NewFakePassiveClock(now)
	src := &fakeSource{catalog: "dcp1", fetchValue: 4}
	svc, _ := newTestService(t, src, WithClock(clk))

	st := svc.Status()
	assert.Nil(t, st.LastAttemptedAt)
	assert.Nil(t, st.LastResolvedAt)

	require.NoError(t, svc.StartRefreshIfNeeded(context.Background(), false))

	st = svc.Status()
	require.NotNil(t, st.LastAttemptedAt)
	require.NotNil(t, st.LastResolvedAt)
	assert.Equal(t, now, *st.LastAttemptedAt)
	assert.Equal(t, now, *st.LastResolvedAt)
	assert.Equal(t, status.RefreshOutcomeCompleted, st.PreviousOutcome)
	assert.Empty(t, st.ErrorMessage)
}

// copyStore hands out copies of the info, like a store backed by a database
type copyStore struct {
	mu   sync.Mutex
	info *Info[int, string]
	sets atomic.Int32
}

func (c *copyStore) Get() *Info[int, string] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.info == nil {
		return nil
	}
	cp := *c.info
	return &cp
}

func (c *copyStore) Set(info *Info[int, string]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *info
	c.info = &cp
	c.sets.Add(1)
}

func TestGetData_SingleFlight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		store func() InfoStore[int, string]
	}{
		{name: "memory store", store: NewMemoryStore[int, string]},
		{name: "copying store", store: func() InfoStore[int, string] { return &copyStore{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			block := make(chan struct{})
			entered := make(chan struct{}, 1)
			src := &fakeSource{catalog: "dcp1", fetchValue: 4, block: block, entered: entered}
			store := tt.store()
			svc, err := New[int, string](testMirrorName, src, store, WithAutoStart(false))
			require.NoError(t, err)
			ctx := context.Background()

			svc.ForceRefresh(ctx)
			<-entered
			assert.Equal(t, status.RefreshActivityRefreshing, svc.Status().CurrentActivity)

			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := svc.GetData(ctx)
					assert.ErrorIs(t, err, ErrNotReady)
				}()
			}
			wg.Wait()

			close(block)
			svc.Wait()

			data, err := svc.GetData(ctx)
			require.NoError(t, err)
			assert.Equal(t, 4, data)
			svc.Wait()

			assert.Equal(t, int32(1), src.fetchCalls.Load())
			assert.True(t, svc.HasData())
			assert.False(t, svc.IsRefreshing())
			assert.Equal(t, status.RefreshOutcomeCompleted, store.Get().PrevOutcome)
		})
	}
}

func TestStartRefreshIfNeeded_CopyingStorePersistsEveryStep(t *testing.T) {
	t.Parallel()

	src := &fakeSource{catalog: "dcp1", paramsErr: errors.New("catalogs unavailable")}
	store := &copyStore{}
	svc, err := New[int, string](testMirrorName, src, store, WithAutoStart(false))
	require.NoError(t, err)
	ctx := context.Background()

	require.Error(t, svc.StartRefreshIfNeeded(ctx, false))
	st := svc.Status()
	assert.Equal(t, status.RefreshOutcomeFailed, st.PreviousOutcome)
	assert.Equal(t, "catalogs unavailable", st.ErrorMessage)
	assert.NotNil(t, st.LastAttemptedAt)
	assert.False(t, svc.IsRefreshing())

	src.set(func(f *fakeSource) { f.paramsErr = nil })
	require.NoError(t, svc.StartRefreshIfNeeded(ctx, false))
	assert.True(t, svc.HasData())
	assert.Equal(t, "dcp1", *store.Get().PrevRefreshParams)
	assert.Equal(t, status.RefreshOutcomeCompleted, svc.Status().PreviousOutcome)
}

func TestNew_WithStore(t *testing.T) {
	t.Parallel()

	t.Run("used when no store is passed", func(t *testing.T) {
		t.Parallel()

		store := &copyStore{}
		svc, err := New[int, string](testMirrorName, &fakeSource{catalog: "dcp1", fetchValue: 2}, nil,
			WithAutoStart(false), WithStore[int, string](store))
		require.NoError(t, err)
		require.NotNil(t, store.Get())

		require.NoError(t, svc.StartRefreshIfNeeded(context.Background(), false))
		require.NotNil(t, store.Get().Data)
		assert.Equal(t, 2, *store.Get().Data)
	})

	t.Run("rejects a store of another type", func(t *testing.T) {
		t.Parallel()

		_, err := New[int, string](testMirrorName, &fakeSource{}, nil,
			WithAutoStart(false), WithStore[string, string](NewMemoryStore[string, string]()))
		assert.ErrorContains(t, err, "refresh store for test-mirror")
	})
}

func TestWait_ConcurrentWithGetData(t *testing.T) {
	t.Parallel()

	src := &fakeSource{catalog: "dcp1", fetchValue: 7}
	svc, _ := newTestService(t, src)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.GetData(ctx)
		}()
		go func() {
			defer wg.Done()
			svc.Wait()
		}()
	}
	wg.Wait()
	svc.Wait()

	data, err := svc.GetData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, data)
	svc.Wait()
}
