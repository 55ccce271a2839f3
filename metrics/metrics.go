// Package metrics provides Prometheus observability metrics for the call
// distribution pipeline.
package metrics

import (
	"call-distributions/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// Rejection reasons used as the "reason" label.
const (
	ReasonEmpty       = "empty_field"
	ReasonMalformed   = "malformed_timestamp"
	ReasonAnomalous   = "anomalous_duration"
	ReasonOutOfDomain = "out_of_domain"
)

// =============================================================================
// DATA QUALITY METRICS
// =============================================================================

// RowsTotal tracks rows read from the call log, header excluded.
var RowsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "calldist",
	Name:      "rows_total",
	Help:      "Total call log rows read, header excluded",
})

// RowsAdmittedTotal tracks rows that passed every validation check.
var RowsAdmittedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "calldist",
	Name:      "rows_admitted_total",
	Help:      "Total rows admitted into the distributions",
})

// RowsInDomainTotal tracks rows whose call received year matched the filter.
var RowsInDomainTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "calldist",
	Name:      "rows_in_domain_total",
	Help:      "Total rows whose call received year matched the year filter",
})

// RowsRejectedTotal tracks rejected rows by reason.
var RowsRejectedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "calldist",
	Name:      "rows_rejected_total",
	Help:      "Total rows rejected, by reason",
}, []string{"reason"})

// DistinctHours tracks how many hours of the day received at least one call.
var DistinctHours = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "calldist",
	Name:      "distinct_hours",
	Help:      "Number of distinct call received hours in the last run",
})

// SeriesLength tracks the number of values written per distribution.
var SeriesLength = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "calldist",
	Name:      "series_length",
	Help:      "Number of values in each derived distribution",
}, []string{"series"})

// =============================================================================
// TIMING METRICS
// =============================================================================

// ParserDurationSeconds tracks time to read the input file.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to read the TSV input file",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 5.0},
})

// PipelineDurationSeconds tracks time from validation through ranking.
var PipelineDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "calldist",
	Name:      "pipeline_duration_seconds",
	Help:      "Time taken to validate, aggregate and rank the call log",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1.0},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetRunGauges resets the per-run gauges before a new pipeline run.
func ResetRunGauges() {
	DistinctHours.Set(0)
	SeriesLength.Reset()
}

// RecordTally adds a finished run's tally to the counters.
func RecordTally(t models.Tally) {
	RowsTotal.Add(float64(t.Rows))
	RowsAdmittedTotal.Add(float64(t.Admitted))
	RowsInDomainTotal.Add(float64(t.InDomain))
	RowsRejectedTotal.WithLabelValues(ReasonEmpty).Add(float64(t.RejectedEmpty))
	RowsRejectedTotal.WithLabelValues(ReasonMalformed).Add(float64(t.RejectedMalformed))
	RowsRejectedTotal.WithLabelValues(ReasonAnomalous).Add(float64(t.RejectedAnomalous))
	RowsRejectedTotal.WithLabelValues(ReasonOutOfDomain).Add(float64(t.OutOfDomain))
}

// RecordSeries sets the per-distribution length gauges.
func RecordSeries(s models.Series) {
	SeriesLength.WithLabelValues("call_hour").Set(float64(len(s.CallHours)))
	SeriesLength.WithLabelValues("wait").Set(float64(len(s.Wait)))
	SeriesLength.WithLabelValues("travel").Set(float64(len(s.Travel)))
	SeriesLength.WithLabelValues("duration").Set(float64(len(s.Duration)))
}
