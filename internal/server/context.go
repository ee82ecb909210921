package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/schedbot/schedbot/internal/calendar"
	"github.com/schedbot/schedbot/internal/geo"
	"github.com/schedbot/schedbot/internal/instrumentation"
	"github.com/schedbot/schedbot/internal/logging"
	"github.com/schedbot/schedbot/internal/search"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx          context.Context
	cancel       context.CancelFunc
	schedulers   map[string]*calendar.Scheduler // Maps account name to calendar scheduler
	calendarCfg  calendar.Config
	geoClient    *geo.Client
	searchClient *search.Client
	metrics      *instrumentation.Metrics
	auditLogger  *instrumentation.AuditLogger
	mu           sync.RWMutex
	shutdown     bool
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context, calendarCfg calendar.Config) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	schedulers := make(map[string]*calendar.Scheduler)

	// Try to create the default scheduler, but don't fail if the token is
	// missing. Schedulers are lazily initialized when first needed.
	if calendar.HasTokenForAccount("default") {
		client, err := calendar.NewClientForAccount(shutdownCtx, "default")
		if err != nil {
			slog.Warn("failed to create calendar client for default account", logging.Err(err))
		} else {
			schedulers["default"] = calendar.NewScheduler(client, calendarCfg, slog.Default())
		}
	}

	return &ServerContext{
		ctx:          shutdownCtx,
		cancel:       cancel,
		schedulers:   schedulers,
		calendarCfg:  calendarCfg,
		geoClient:    geo.NewClient(),
		searchClient: search.NewClient(),
		shutdown:     false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// SchedulerForAccount returns the calendar scheduler for a specific account.
// Creates and caches the scheduler if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) SchedulerForAccount(account string) *calendar.Scheduler {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if s, ok := sc.schedulers[account]; ok {
		return s
	}

	if !calendar.HasTokenForAccount(account) {
		return nil
	}

	client, err := calendar.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create calendar client", logging.Account(account), logging.Err(err))
		return nil
	}

	s := calendar.NewScheduler(client, sc.calendarCfg, slog.Default())
	sc.schedulers[account] = s
	return s
}

// Scheduler returns the calendar scheduler for the default account
func (sc *ServerContext) Scheduler() *calendar.Scheduler {
	return sc.SchedulerForAccount("default")
}

// SetSchedulerForAccount sets the calendar scheduler for a specific account
func (sc *ServerContext) SetSchedulerForAccount(account string, s *calendar.Scheduler) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.schedulers[account] = s
}

// CalendarConfig returns the calendar configuration
func (sc *ServerContext) CalendarConfig() calendar.Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.calendarCfg
}

// GeoClient returns the geolocation client
func (sc *ServerContext) GeoClient() *geo.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.geoClient
}

// SetGeoClient sets the geolocation client
func (sc *ServerContext) SetGeoClient(client *geo.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.geoClient = client
}

// SearchClient returns the web search client
func (sc *ServerContext) SearchClient() *search.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.searchClient
}

// SetSearchClient sets the web search client
func (sc *ServerContext) SetSearchClient(client *search.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.searchClient = client
}

// Metrics returns the metrics recorder, or nil if instrumentation is not configured
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// AuditLogger returns the audit logger, or nil if not configured
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger
func (sc *ServerContext) SetAuditLogger(auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
