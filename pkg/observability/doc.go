// Package observability exposes machine activity as Prometheus metrics.
//
// Metrics.Hooks plugs into any component that accepts domain.LifecycleHooks,
// so the core machine never depends on Prometheus.
package observability
