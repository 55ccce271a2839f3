// Package validator decides which call records are admitted into the
// distributions and derives the per-call durations.
package validator

import (
	"call-distributions/errors"
	"call-distributions/models"
	"call-distributions/parser"
	"time"
)

// MaxDurationMinutes is the largest derived interval, in either direction,
// a row may carry. Larger gaps come from transposed keystrokes in the source
// data (for example a wrong year) rather than from real calls.
const MaxDurationMinutes = 1000

// Validator checks raw records against field presence, the year filter and
// the anomalous duration cutoff.
type Validator struct {
	filter models.YearFilter
}

// New returns a Validator for the given year filter.
func New(filter models.YearFilter) *Validator {
	return &Validator{filter: filter}
}

// Check validates one record and updates tally with the outcome.
// On admission it returns the parsed call. Otherwise it returns an
// *errors.RowError wrapping the rejection reason; a rejected row never
// stops the caller.
func (v *Validator) Check(rec models.RawRecord, tally *models.Tally) (*models.ParsedCall, error) {
	tally.Rows++

	badCol := false
	for _, field := range rec.Fields() {
		if field == "" {
			badCol = true
		}
	}

	var stamps [4]time.Time
	var parsed [4]bool
	malformed := false
	for i, field := range timestampFields(rec) {
		if field == "" {
			continue
		}
		t, err := parser.ParseTimestamp(field)
		if err != nil {
			malformed = true
			continue
		}
		stamps[i] = t
		parsed[i] = true
	}

	// A row whose received time is missing or unreadable cannot match a
	// specific year.
	if !v.filter.All() && !(parsed[0] && v.filter.Matches(stamps[0])) {
		tally.OutOfDomain++
		return nil, &errors.RowError{Line: rec.Line, Err: errors.ErrOutOfDomain}
	}
	tally.InDomain++

	if badCol {
		tally.RejectedEmpty++
		return nil, &errors.RowError{Line: rec.Line, Err: errors.ErrMissingField}
	}

	if malformed {
		tally.RejectedMalformed++
		return nil, &errors.RowError{Line: rec.Line, Err: errors.ErrMalformedTimestamp}
	}

	call := Derive(rec, stamps[0], stamps[1], stamps[2], stamps[3])
	if anomalous(call.Wait) || anomalous(call.Travel) || anomalous(call.Duration) {
		tally.RejectedAnomalous++
		return nil, &errors.RowError{Line: rec.Line, Err: errors.ErrAnomalousDuration}
	}

	tally.Admitted++
	return &call, nil
}

// Derive computes the wait, travel and resolution durations of a call.
func Derive(rec models.RawRecord, received, dispatched, arrived, resolved time.Time) models.ParsedCall {
	return models.ParsedCall{
		Record:            rec,
		CallReceived:      received,
		OfficerDispatched: dispatched,
		OfficerArrived:    arrived,
		CallResolved:      resolved,
		Wait:              Minutes(received, dispatched),
		Travel:            Minutes(dispatched, arrived),
		Duration:          Minutes(arrived, resolved),
		Hour:              received.Hour(),
	}
}

// Minutes returns the whole minutes from start to end, truncated toward zero.
func Minutes(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}

func anomalous(minutes int) bool {
	return minutes > MaxDurationMinutes || minutes < -MaxDurationMinutes
}

func timestampFields(rec models.RawRecord) [4]string {
	return [4]string{rec.CallReceived, rec.OfficerDispatched, rec.OfficerArrived, rec.CallResolved}
}
