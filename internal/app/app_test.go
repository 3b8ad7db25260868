package app

import (
	"context"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/clevercanary/atlas-sync/internal/config"
	"github.com/clevercanary/atlas-sync/internal/mirrors"
	mirrormocks "github.com/clevercanary/atlas-sync/internal/mirrors/mocks"
)

// mockCoordinator implements the coordinator.Coordinator interface for testing
type mockCoordinator struct {
	mu          sync.Mutex
	startCalled bool
	stopCalled  bool
	startErr    error
	stopErr     error
}

func (m *mockCoordinator) Start(ctx context.Context) error {
	m.mu.Lock()
	m.startCalled = true
	err := m.startErr
	m.mu.Unlock()

	<-ctx.Done()
	return err
}

func (m *mockCoordinator) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalled = true
	return m.stopErr
}

func (m *mockCoordinator) wasStartCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startCalled
}

func (m *mockCoordinator) wasStopCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalled
}

// createTestApp builds an AtlasSyncApp around a mock coordinator and a
// single ready mirror without touching a database
func createTestApp(t *testing.T, ctrl *gomock.Controller, addr string) *AtlasSyncApp {
	t.Helper()

	mirror := mirrormocks.NewMockMirror(ctrl)
	mirror.EXPECT().Name().Return(mirrors.HCAProjectsName).AnyTimes()
	mirror.EXPECT().HasData().Return(true).AnyTimes()

	components := &AppComponents{
		Mirrors:         mirrors.NewSet(mirror),
		SyncCoordinator: &mockCoordinator{},
	}

	appCfg := &appConfig{
		config:         createTestAppConfig(),
		address:        addr,
		requestTimeout: defaultRequestTimeout,
		readTimeout:    defaultReadTimeout,
		writeTimeout:   defaultWriteTimeout,
		idleTimeout:    defaultIdleTimeout,
	}
	server, err := buildHTTPServer(context.Background(), appCfg, components)
	require.NoError(t, err)

	appCtx, cancel := context.WithCancel(context.Background())
	return &AtlasSyncApp{
		config:     appCfg.config,
		components: components,
		httpServer: server,
		ctx:        appCtx,
		cancelFunc: cancel,
	}
}

// createTestAppConfig creates a minimal valid config for testing
func createTestAppConfig() *config.Config {
	return &config.Config{
		Server: &config.ServerConfig{Address: ":0"},
		Database: &config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "atlas",
			Database: "atlas",
		},
	}
}

func startApp(t *testing.T, app *AtlasSyncApp) <-chan error {
	t.Helper()
	errChan := make(chan error, 1)
	go func() {
		errChan <- app.Start()
	}()
	return errChan
}

func TestAtlasSyncApp_Start(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		addr string
	}{
		{name: "ephemeral port", addr: ":0"},
		{name: "localhost", addr: "127.0.0.1:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			app := createTestApp(t, ctrl, tt.addr)
			errChan := startApp(t, app)

			mockCoord := app.components.SyncCoordinator.(*mockCoordinator)
			assert.Eventually(t, mockCoord.wasStartCalled, 2*time.Second, 10*time.Millisecond,
				"sync coordinator should be started")

			require.NoError(t, app.Stop(5*time.Second))

			select {
			case startErr := <-errChan:
				require.NoError(t, startErr)
			case <-time.After(5 * time.Second):
				t.Fatal("Start() did not return after Stop()")
			}
		})
	}
}

func TestAtlasSyncApp_ServesHealth(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	app := createTestApp(t, ctrl, ":0")

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	actualAddr := listener.Addr().String()
	require.NoError(t, listener.Close())
	app.httpServer.Addr = actualAddr

	errChan := startApp(t, app)

	for _, path := range []string{"/health", "/readiness"} {
		require.Eventually(t, func() bool {
			resp, err := http.Get("http://" + actualAddr + path)
			if err != nil {
				return false
			}
			defer resp.Body.Close()
			return resp.StatusCode == http.StatusOK
		}, 2*time.Second, 20*time.Millisecond, path)
	}

	require.NoError(t, app.Stop(5*time.Second))
	select {
	case startErr := <-errChan:
		require.NoError(t, startErr)
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after Stop()")
	}
}

func TestAtlasSyncApp_Stop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
		start   bool
	}{
		{name: "graceful shutdown with normal timeout", timeout: 5 * time.Second, start: true},
		{name: "graceful shutdown with short timeout", timeout: time.Second, start: true},
		{name: "stop without starting first", timeout: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			app := createTestApp(t, ctrl, ":0")
			if tt.start {
				startApp(t, app)
				time.Sleep(100 * time.Millisecond)
			}

			require.NoError(t, app.Stop(tt.timeout))

			mockCoord := app.components.SyncCoordinator.(*mockCoordinator)
			assert.True(t, mockCoord.wasStopCalled(), "sync coordinator Stop should be called")
			assert.ErrorIs(t, app.ctx.Err(), context.Canceled)
		})
	}
}

func TestAtlasSyncApp_StopWithNilCancelFunc(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	app := createTestApp(t, ctrl, ":0")
	app.cancelFunc = nil

	require.NoError(t, app.Stop(5*time.Second))
}

func TestAtlasSyncApp_Accessors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	app := createTestApp(t, ctrl, ":0")

	require.NotNil(t, app.GetConfig())
	assert.Equal(t, ":0", app.GetConfig().GetServerAddress())
	assert.Equal(t, ":0", app.GetHTTPServer().Addr)
	assert.Same(t, app.components, app.Components())
}

func TestAppComponents_CloseNil(t *testing.T) {
	t.Parallel()

	var c *AppComponents
	assert.NotPanics(t, func() { c.Close(context.Background()) })
	assert.NotPanics(t, func() { (&AppComponents{}).Close(context.Background()) })
}
