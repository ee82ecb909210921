// Package server provides the MCP server context, health probes, and the
// dedicated metrics endpoint for the schedbot application.
//
// # Key Components
//
// ServerContext manages per-account calendar schedulers with lazy
// initialization and caching, plus the shared geolocation and web search
// clients. OAuth tokens are read from disk via the calendar package's
// file token provider.
//
// HealthChecker serves /healthz, /readyz, and /healthz/detailed for
// Kubernetes probes.
//
// MetricsServer exposes Prometheus metrics on a dedicated port so
// operational metrics never share a listener with MCP traffic.
package server
