// Package metrics collects runtime memory snapshots and the Prometheus
// counters of cross-check runs.
package metrics
