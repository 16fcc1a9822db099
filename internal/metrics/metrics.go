package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// The refresh job is one-shot, so there is no /metrics endpoint; counters are
// collected on a private registry and dumped to a textfile for the
// node_exporter textfile collector to pick up.
var (
	registry = prometheus.NewRegistry()

	RecordsFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "calendar",
		Name:      "records_fetched_total",
		Help:      "Records fetched per source before merging",
	}, []string{"source"})
	FetchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "calendar",
		Name:      "fetch_errors_total",
		Help:      "Sources that could not be fetched",
	}, []string{"source"})
	ParseErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "calendar",
		Name:      "parse_errors_total",
		Help:      "Records dropped because required fields were absent or malformed",
	}, []string{"source"})
	TableRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "calendar",
		Name:      "table_rows",
		Help:      "Rows in the tournament table after merge",
	})
	LastRefresh = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "calendar",
		Name:      "last_refresh_timestamp_seconds",
		Help:      "Unix timestamp of the last successful refresh",
	})
)

func init() {
	registry.MustRegister(RecordsFetched, FetchErrors, ParseErrors, TableRows, LastRefresh)
}

// WriteTextfile dumps the registry to a .prom file. The write is atomic
// (temp file + rename) so a half-written snapshot is never observed.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, registry)
}
