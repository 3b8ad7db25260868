package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clevercanary/atlas-sync/internal/api"
	v1 "github.com/clevercanary/atlas-sync/internal/api/v1"
	"github.com/clevercanary/atlas-sync/internal/config"
	"github.com/clevercanary/atlas-sync/internal/db"
	"github.com/clevercanary/atlas-sync/internal/entrysheets"
	"github.com/clevercanary/atlas-sync/internal/httpclient"
	"github.com/clevercanary/atlas-sync/internal/mirrors"
	"github.com/clevercanary/atlas-sync/internal/refresh"
	pkgsync "github.com/clevercanary/atlas-sync/internal/sync"
	"github.com/clevercanary/atlas-sync/internal/sync/coordinator"
	"github.com/clevercanary/atlas-sync/internal/sync/state"
	"github.com/clevercanary/atlas-sync/internal/telemetry"
	"github.com/clevercanary/atlas-sync/internal/validation"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 15 * time.Second
	defaultIdleTimeout    = 60 * time.Second

	validationTracerName  = "github.com/clevercanary/atlas-sync/validation"
	entrySheetsTracerName = "github.com/clevercanary/atlas-sync/entrysheets"
)

// AtlasSyncAppOptions is a function that configures the app builder
type AtlasSyncAppOptions func(*appConfig) error

// appConfig collects the builder settings. It supports dependency injection
// for testing while providing production defaults.
type appConfig struct {
	config *config.Config

	// Optional component overrides (primarily for testing)
	pool        *pgxpool.Pool
	httpClient  httpclient.Client
	syncManager pkgsync.Manager
	autoStart   bool

	// HTTP server options
	address        string
	middlewares    []func(http.Handler) http.Handler
	requestTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
}

func baseConfig(opts ...AtlasSyncAppOptions) (*appConfig, error) {
	cfg := &appConfig{
		autoStart:      true,
		requestTimeout: defaultRequestTimeout,
		readTimeout:    defaultReadTimeout,
		writeTimeout:   defaultWriteTimeout,
		idleTimeout:    defaultIdleTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.address == "" {
		cfg.address = cfg.config.GetServerAddress()
	}

	return cfg, nil
}

// NewAtlasSyncApp builds the application: every component plus the HTTP server
func NewAtlasSyncApp(
	ctx context.Context,
	opts ...AtlasSyncAppOptions,
) (*AtlasSyncApp, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}

	components, err := buildComponents(ctx, cfg)
	if err != nil {
		return nil, err
	}

	httpServer, err := buildHTTPServer(ctx, cfg, components)
	if err != nil {
		components.Close(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("failed to build HTTP server: %w", err)
	}

	appCtx, cancel := context.WithCancel(ctx)

	return &AtlasSyncApp{
		config:     cfg.config,
		components: components,
		httpServer: httpServer,
		ctx:        appCtx,
		cancelFunc: cancel,
	}, nil
}

// NewComponents builds the application components without an HTTP server.
// The caller must Close them.
func NewComponents(ctx context.Context, opts ...AtlasSyncAppOptions) (*AppComponents, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}
	return buildComponents(ctx, cfg)
}

// WithConfig sets the configuration
func WithConfig(c *config.Config) AtlasSyncAppOptions {
	return func(cfg *appConfig) error {
		cfg.config = c
		return nil
	}
}

// WithAddress sets the HTTP server address, overriding the configured one
func WithAddress(addr string) AtlasSyncAppOptions {
	return func(cfg *appConfig) error {
		if addr == "" {
			return fmt.Errorf("address cannot be empty")
		}

		host, port, found := strings.Cut(addr, ":")
		if !found || port == "" {
			return fmt.Errorf("address is not a valid port: %s", addr)
		}
		if host == "localhost" {
			host = "127.0.0.1"
		}
		if host == "" {
			host = "0.0.0.0"
		}

		if _, err := netip.ParseAddrPort(host + ":" + port); err != nil {
			return fmt.Errorf("address is not a valid port: %w", err)
		}

		cfg.address = addr
		return nil
	}
}

// WithMiddlewares replaces the default HTTP middlewares
func WithMiddlewares(mw ...func(http.Handler) http.Handler) AtlasSyncAppOptions {
	return func(cfg *appConfig) error {
		cfg.middlewares = mw
		return nil
	}
}

// WithPool injects a database pool. The app does not close an injected pool.
func WithPool(pool *pgxpool.Pool) AtlasSyncAppOptions {
	return func(cfg *appConfig) error {
		cfg.pool = pool
		return nil
	}
}

// WithHTTPClient injects the client used for the mirrors and the validation tools
func WithHTTPClient(client httpclient.Client) AtlasSyncAppOptions {
	return func(cfg *appConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithSyncManager allows injecting a custom sync manager (for testing)
func WithSyncManager(sm pkgsync.Manager) AtlasSyncAppOptions {
	return func(cfg *appConfig) error {
		cfg.syncManager = sm
		return nil
	}
}

// WithMirrorAutoStart controls whether the mirrors start refreshing on construction
func WithMirrorAutoStart(autoStart bool) AtlasSyncAppOptions {
	return func(cfg *appConfig) error {
		cfg.autoStart = autoStart
		return nil
	}
}

// buildComponents wires telemetry, the database, the mirrors, the validation
// engine, the entry sheet pipeline and the background job
func buildComponents(ctx context.Context, b *appConfig) (_ *AppComponents, err error) {
	c := &AppComponents{}
	defer func() {
		if err != nil {
			c.Close(context.WithoutCancel(ctx))
		}
	}()

	c.Telemetry, err = telemetry.New(ctx, telemetry.WithTelemetryConfig(b.config.Telemetry))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	pool := b.pool
	if pool == nil {
		c.Pool, err = db.NewPool(ctx, b.config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		pool = c.Pool
	}

	if b.httpClient == nil {
		b.httpClient = httpclient.NewDefaultClient(
			httpclient.WithTimeout(b.config.GetHTTPTimeout()),
			httpclient.WithRetryMax(b.config.GetRetryMax()),
		)
	}

	c.Trigger = coordinator.NewTrigger()
	if err = buildMirrors(c, b); err != nil {
		return nil, fmt.Errorf("failed to build mirrors: %w", err)
	}
	if err = buildValidation(c, b, pool); err != nil {
		return nil, fmt.Errorf("failed to build validation components: %w", err)
	}
	if err = buildEntrySheets(c, b, pool); err != nil {
		return nil, fmt.Errorf("failed to build entry sheet components: %w", err)
	}
	if err = buildSyncComponents(c, b, pool); err != nil {
		return nil, fmt.Errorf("failed to build sync components: %w", err)
	}

	return c, nil
}

// buildMirrors creates the mirrors. Every completed refresh fires the trigger
// so the validations job picks up new mirror data.
func buildMirrors(c *AppComponents, b *appConfig) error {
	refreshMetrics, err := telemetry.NewRefreshMetrics(c.Telemetry.MeterProvider())
	if err != nil {
		return fmt.Errorf("failed to create refresh metrics: %w", err)
	}
	opts := []refresh.Option{
		refresh.WithAutoStart(b.autoStart),
		refresh.WithMetrics(refreshMetrics),
		refresh.WithOnRefreshSuccess(c.Trigger.Fire),
	}

	c.Projects, err = mirrors.NewHCAProjects(b.httpClient, b.config.GetAzulURL(), opts...)
	if err != nil {
		return err
	}
	c.Collections, err = mirrors.NewCellxGene(b.httpClient, b.config.GetCellxGeneURL(), nil, opts...)
	if err != nil {
		return err
	}
	c.Mirrors = mirrors.NewSet(c.Projects, c.Collections)

	slog.Info("Mirrors initialized", "mirrors", c.Mirrors.Names())
	return nil
}

func buildValidation(c *AppComponents, _ *appConfig, pool *pgxpool.Pool) error {
	metrics, err := telemetry.NewValidationMetrics(c.Telemetry.MeterProvider())
	if err != nil {
		return fmt.Errorf("failed to create validation metrics: %w", err)
	}

	c.Engine = validation.NewEngine(
		validation.NewDBStore(pool),
		validation.DefaultRegistry(c.Projects),
		validation.WithMetrics(metrics),
		validation.WithTracer(c.Telemetry.Tracer(validationTracerName)),
	)
	return nil
}

// buildEntrySheets creates the entry sheet pipeline when a validation tools
// URL is configured
func buildEntrySheets(c *AppComponents, b *appConfig, pool *pgxpool.Pool) error {
	url := b.config.GetValidationToolsURL()
	if url == "" {
		slog.Warn("No validation tools URL configured, entry sheet sync disabled")
		return nil
	}

	client, err := entrysheets.NewToolsClient(b.httpClient, url)
	if err != nil {
		return err
	}
	metrics, err := telemetry.NewEntrySheetMetrics(c.Telemetry.MeterProvider())
	if err != nil {
		return fmt.Errorf("failed to create entry sheet metrics: %w", err)
	}

	c.EntrySheets = entrysheets.NewPipeline(client, entrysheets.NewDBStore(pool),
		entrysheets.WithConcurrency(b.config.GetEntrySheetConcurrency()),
		entrysheets.WithMetrics(metrics),
		entrysheets.WithTracer(c.Telemetry.Tracer(entrySheetsTracerName)),
	)
	return nil
}

// buildSyncComponents builds the state service, sync manager and coordinator
func buildSyncComponents(c *AppComponents, b *appConfig, pool *pgxpool.Pool) error {
	c.StateService = state.NewDBStateService(pool)

	c.SyncManager = b.syncManager
	if c.SyncManager == nil {
		c.SyncManager = pkgsync.NewDefaultSyncManager(
			c.Mirrors,
			c.Engine,
			c.Projects,
			c.Collections,
			pkgsync.WithIdleWait(b.config.GetIdleWait()),
		)
	}

	syncMetrics, err := telemetry.NewSyncMetrics(c.Telemetry.MeterProvider())
	if err != nil {
		return fmt.Errorf("failed to create sync metrics: %w", err)
	}

	c.SyncCoordinator = coordinator.New(c.SyncManager, c.StateService, c.Mirrors,
		coordinator.WithPollingInterval(b.config.GetSyncInterval()),
		coordinator.WithTrigger(c.Trigger),
		coordinator.WithSyncMetrics(syncMetrics),
	)
	slog.Info("Sync components initialized", "interval", b.config.GetSyncInterval())
	return nil
}

// buildRoutes exposes the components through the v1 API
func buildRoutes(c *AppComponents) *v1.Routes {
	opts := []v1.RoutesOption{
		v1.WithLookups(c.Projects, c.Collections),
		v1.WithJobs(c.StateService, c.Trigger),
	}
	if c.EntrySheets != nil {
		opts = append(opts, v1.WithEntrySheets(c.EntrySheets))
	}
	return v1.NewRoutes(c.Mirrors, opts...)
}

// buildHTTPServer builds the HTTP server with router and middleware
//
//nolint:unparam // we prefer having a similar interface
func buildHTTPServer(
	_ context.Context,
	b *appConfig,
	c *AppComponents,
) (*http.Server, error) {
	slog.Info("Initializing HTTP server")

	if b.middlewares == nil {
		b.middlewares = []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(b.requestTimeout),
			api.LoggingMiddleware,
		}
	}

	serverOpts := []api.ServerOption{}
	if c.Telemetry != nil {
		httpMetrics, err := telemetry.NewHTTPMetrics(c.Telemetry.MeterProvider())
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
		}
		// Metrics and tracing come first so they see every request
		serverOpts = append(serverOpts,
			api.WithMiddlewares(httpMetrics.Middleware, telemetry.TracingMiddleware(c.Telemetry.TracerProvider())))
		if h := c.Telemetry.MetricsHandler(); h != nil {
			serverOpts = append(serverOpts, api.WithMetricsHandler(h))
		}
	}
	serverOpts = append(serverOpts, api.WithMiddlewares(b.middlewares...))

	router := api.NewServer(c.Mirrors, buildRoutes(c), serverOpts...)

	server := &http.Server{
		Addr:         b.address,
		Handler:      router,
		ReadTimeout:  b.readTimeout,
		WriteTimeout: b.writeTimeout,
		IdleTimeout:  b.idleTimeout,
	}

	slog.Info("HTTP server configured", "address", b.address)
	return server, nil
}
