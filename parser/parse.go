package parser

import (
	"call-distributions/errors"
	"call-distributions/models"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"time"
)

// TimestampLayout matches timestamps such as "05 Jan 2016 13:42:07".
// The day may be one or two digits and the month abbreviation is matched
// case-insensitively.
const TimestampLayout = "2 Jan 2006 15:04:05"

// timestampShape rejects input time.Parse would otherwise tolerate, such as
// surrounding whitespace or fractional seconds.
var timestampShape = regexp.MustCompile(`^\d{1,2} [A-Za-z]{3} \d{4} \d{1,2}:\d{2}:\d{2}$`)

// ParseTimestamp parses a call log timestamp. Timestamps carry no zone and
// are returned in UTC. Any deviation from the layout is reported as
// errors.ErrMalformedTimestamp.
func ParseTimestamp(value string) (time.Time, error) {
	if !timestampShape.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: %q", errors.ErrMalformedTimestamp, value)
	}
	t, err := time.ParseInLocation(TimestampLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", errors.ErrMalformedTimestamp, value, err)
	}
	return t, nil
}

// Read reads a tab-separated call log and returns its records.
// The first row is a header and is discarded. Rows may have any number of
// columns; short rows leave their trailing fields empty so the validator can
// reject them.
func Read(r io.Reader) ([]models.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []models.RawRecord
	header := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			if pe, ok := err.(*csv.ParseError); ok {
				line = pe.Line
			}
			return nil, &errors.ParseError{
				Line:   line,
				Record: record,
				Err:    fmt.Errorf("error reading TSV: %w", err),
			}
		}

		if header {
			header = false
			continue
		}

		line, _ := reader.FieldPos(0)
		records = append(records, models.NewRawRecord(line, record))
	}

	return records, nil
}
