// Package pipeline drives a single cleaning run over a call log: read,
// validate, derive, aggregate and rank, then hand the finished dataset to
// the output sinks.
package pipeline

import (
	"call-distributions/aggregator"
	"call-distributions/metrics"
	"call-distributions/models"
	"call-distributions/parser"
	"call-distributions/validator"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Result is the in-memory dataset produced by one run.
type Result struct {
	RunID   string
	Clean   []models.RawRecord
	Calls   []models.ParsedCall
	Tally   models.Tally
	Hours   *models.HourCount
	Ranking []models.HourVolume
	Series  models.Series
}

// Sink consumes a finished Result, typically by writing output files.
type Sink interface {
	Write(res *Result) error
}

// Pipeline holds the settings for a run.
type Pipeline struct {
	validator *validator.Validator
	logger    *slog.Logger
}

// New returns a Pipeline applying the given year filter.
func New(filter models.YearFilter, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		validator: validator.New(filter),
		logger:    logger.With(slog.Int("year_filter", filter.Year)),
	}
}

// Run reads the whole call log from r, processes it and passes the result
// to each sink in order. A read failure or sink failure is returned; row
// rejections are not errors.
func (p *Pipeline) Run(r io.Reader, sinks ...Sink) (*Result, error) {
	start := time.Now()
	records, err := parser.Read(r)
	metrics.ParserDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("reading call log: %w", err)
	}
	p.logger.Info("Call log read", slog.Int("rows", len(records)))

	res := p.Process(records)

	for _, sink := range sinks {
		if err := sink.Write(res); err != nil {
			return res, fmt.Errorf("writing output: %w", err)
		}
	}
	return res, nil
}

// Process validates every record, then aggregates and ranks the admitted
// calls.
func (p *Pipeline) Process(records []models.RawRecord) *Result {
	start := time.Now()
	defer func() {
		metrics.PipelineDurationSeconds.Observe(time.Since(start).Seconds())
	}()
	metrics.ResetRunGauges()

	res := &Result{
		RunID: uuid.NewString(),
	}
	logger := p.logger.With(slog.String("run_id", res.RunID))

	for _, rec := range records {
		call, err := p.validator.Check(rec, &res.Tally)
		if err != nil {
			logger.Debug("Row rejected",
				slog.Int("line", rec.Line),
				slog.String("reason", err.Error()))
			continue
		}
		res.Clean = append(res.Clean, rec)
		res.Calls = append(res.Calls, *call)
	}

	res.Hours = aggregator.CountHours(res.Calls)
	res.Ranking = aggregator.Rank(res.Hours)
	res.Series = aggregator.BuildSeries(res.Calls)

	metrics.RecordTally(res.Tally)
	metrics.RecordSeries(res.Series)
	metrics.DistinctHours.Set(float64(res.Hours.Len()))

	logger.Info("Call log processed",
		slog.Int("rows", res.Tally.Rows),
		slog.Int("in_domain", res.Tally.InDomain),
		slog.Int("admitted", res.Tally.Admitted),
		slog.Int("rejected_empty", res.Tally.RejectedEmpty),
		slog.Int("rejected_malformed", res.Tally.RejectedMalformed),
		slog.Int("rejected_anomalous", res.Tally.RejectedAnomalous),
		slog.Int("out_of_domain", res.Tally.OutOfDomain),
		slog.Int("distinct_hours", res.Hours.Len()))

	return res
}
