package models

import "time"

// RawRecord is one row of the police call log, with the positional columns
// bound to names at read time.
// Columns: id, (unused), call received, officer dispatched, officer arrived,
// call resolved, priority.
type RawRecord struct {
	Line              int
	ID                string
	Unused            string
	CallReceived      string
	OfficerDispatched string
	OfficerArrived    string
	CallResolved      string
	Priority          string
	// Extra holds any columns past the seventh.
	Extra []string
}

// RecordColumns is the number of named columns in a RawRecord.
const RecordColumns = 7

// NewRawRecord binds positional fields to a RawRecord. Missing trailing
// columns are left empty.
func NewRawRecord(line int, fields []string) RawRecord {
	get := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	r := RawRecord{
		Line:              line,
		ID:                get(0),
		Unused:            get(1),
		CallReceived:      get(2),
		OfficerDispatched: get(3),
		OfficerArrived:    get(4),
		CallResolved:      get(5),
		Priority:          get(6),
	}
	if len(fields) > RecordColumns {
		r.Extra = append([]string(nil), fields[RecordColumns:]...)
	}
	return r
}

// Fields returns the record in its original column order.
func (r RawRecord) Fields() []string {
	fields := []string{
		r.ID,
		r.Unused,
		r.CallReceived,
		r.OfficerDispatched,
		r.OfficerArrived,
		r.CallResolved,
		r.Priority,
	}
	return append(fields, r.Extra...)
}

// ParsedCall is an admitted record with its parsed instants and the
// durations derived from them.
type ParsedCall struct {
	Record            RawRecord
	CallReceived      time.Time
	OfficerDispatched time.Time
	OfficerArrived    time.Time
	CallResolved      time.Time
	// Wait, Travel and Duration are whole minutes, truncated toward zero.
	Wait     int
	Travel   int
	Duration int
	Hour     int
}

// Tally counts what happened to each row during validation. Every row lands
// in exactly one of OutOfDomain or InDomain, and every in-domain row in
// exactly one of the three rejection counters or Admitted.
type Tally struct {
	Rows              int `json:"rows"`
	InDomain          int `json:"in_domain"`
	RejectedEmpty     int `json:"rejected_empty"`
	RejectedMalformed int `json:"rejected_malformed"`
	RejectedAnomalous int `json:"rejected_anomalous"`
	OutOfDomain       int `json:"out_of_domain"`
	Admitted          int `json:"admitted"`
}

// YearFilter restricts processing to calls received in one year.
// The zero value accepts every year.
type YearFilter struct {
	Year int
}

// All reports whether the filter accepts any year.
func (f YearFilter) All() bool {
	return f.Year == 0
}

// Matches reports whether a call received at t falls in the filtered year.
func (f YearFilter) Matches(t time.Time) bool {
	return f.All() || t.Year() == f.Year
}

// HourVolume is one entry of the hourly volume ranking.
type HourVolume struct {
	Hour  int `json:"hour"`
	Calls int `json:"calls"`
}

// Series holds the four distributions handed to the simulation.
type Series struct {
	CallHours []int
	Wait      []int
	Travel    []int
	Duration  []int
}
