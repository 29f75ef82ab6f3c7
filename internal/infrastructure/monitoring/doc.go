/*
Package monitoring collects engine metrics with Prometheus client_golang.

Each Metrics value owns a private registry. Nothing is exported over HTTP;
the dashboard command reads a Snapshot and the counters directly.

# Usage

	metrics := monitoring.NewMetrics()

	timer := monitoring.NewTimer(metrics, "copy")
	// ... perform operation ...
	timer.Stop(monitoring.OutcomeSuccess)

	snap := metrics.Snapshot()
*/
package monitoring
