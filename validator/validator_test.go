package validator_test

import (
	"errors"
	"testing"
	"time"

	customerrors "call-distributions/errors"
	"call-distributions/models"
	"call-distributions/parser"
	"call-distributions/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(received, dispatched, arrived, resolved string) models.RawRecord {
	return models.NewRawRecord(2, []string{"1", "X", received, dispatched, arrived, resolved, "2"})
}

func TestCheck(t *testing.T) {
	tests := map[string]struct {
		filter        models.YearFilter
		record        models.RawRecord
		expectedError error
		expectedTally models.Tally
	}{
		"Admitted": {
			record: record("01 Jan 2020 08:00:00", "01 Jan 2020 08:03:00", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
			expectedTally: models.Tally{
				Rows: 1, InDomain: 1, Admitted: 1,
			},
		},
		"Admitted_NegativeDurationWithinCutoff": {
			record: record("01 Jan 2020 08:00:00", "01 Jan 2020 07:58:00", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
			expectedTally: models.Tally{
				Rows: 1, InDomain: 1, Admitted: 1,
			},
		},
		"Admitted_ExactlyAtCutoff": {
			record: record("01 Jan 2020 00:00:00", "01 Jan 2020 16:40:00", "01 Jan 2020 16:41:00", "01 Jan 2020 16:42:00"),
			expectedTally: models.Tally{
				Rows: 1, InDomain: 1, Admitted: 1,
			},
		},
		"Rejected_EmptyUnusedColumn": {
			record: models.NewRawRecord(2, []string{"1", "", "05 Jan 2016 10:00:00", "05 Jan 2016 10:05:00", "05 Jan 2016 10:20:00", "05 Jan 2016 10:40:00", "2"}),
			expectedError: customerrors.ErrMissingField,
			expectedTally: models.Tally{
				Rows: 1, InDomain: 1, RejectedEmpty: 1,
			},
		},
		"Rejected_EmptyTimestampAlsoMalformed": {
			record:        record("01 Jan 2020 08:00:00", "", "garbage", "01 Jan 2020 08:45:00"),
			expectedError: customerrors.ErrMissingField,
			expectedTally: models.Tally{
				Rows: 1, InDomain: 1, RejectedEmpty: 1,
			},
		},
		"Rejected_Malformed": {
			record:        record("01 Jan 2020 08:00:00", "2020-01-01 08:03:00", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
			expectedError: customerrors.ErrMalformedTimestamp,
			expectedTally: models.Tally{
				Rows: 1, InDomain: 1, RejectedMalformed: 1,
			},
		},
		"Rejected_AnomalousYearTypo": {
			record:        record("01 Jan 2020 08:00:00", "01 Jan 2002 08:03:00", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
			expectedError: customerrors.ErrAnomalousDuration,
			expectedTally: models.Tally{
				Rows: 1, InDomain: 1, RejectedAnomalous: 1,
			},
		},
		"Rejected_DispatchedSeventeenHoursEarly": {
			record:        record("02 Jan 2020 08:00:00", "01 Jan 2020 15:00:00", "02 Jan 2020 08:15:00", "02 Jan 2020 08:45:00"),
			expectedError: customerrors.ErrAnomalousDuration,
			expectedTally: models.Tally{
				Rows: 1, InDomain: 1, RejectedAnomalous: 1,
			},
		},
		"Rejected_AnomalousResolution": {
			record:        record("01 Jan 2020 08:00:00", "01 Jan 2020 08:03:00", "01 Jan 2020 08:15:00", "02 Jan 2020 01:00:00"),
			expectedError: customerrors.ErrAnomalousDuration,
			expectedTally: models.Tally{
				Rows: 1, InDomain: 1, RejectedAnomalous: 1,
			},
		},
		"YearFilter_Matches": {
			filter: models.YearFilter{Year: 2020},
			record: record("01 Jan 2020 08:00:00", "01 Jan 2020 08:03:00", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
			expectedTally: models.Tally{
				Rows: 1, InDomain: 1, Admitted: 1,
			},
		},
		"YearFilter_OtherYearSilent": {
			filter:        models.YearFilter{Year: 2019},
			record:        record("01 Jan 2020 08:00:00", "01 Jan 2020 08:03:00", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
			expectedError: customerrors.ErrOutOfDomain,
			expectedTally: models.Tally{
				Rows: 1, OutOfDomain: 1,
			},
		},
		"YearFilter_EmptyFieldOtherYearOutOfDomain": {
			filter:        models.YearFilter{Year: 2019},
			record:        record("01 Jan 2020 08:00:00", "", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
			expectedError: customerrors.ErrOutOfDomain,
			expectedTally: models.Tally{
				Rows: 1, OutOfDomain: 1,
			},
		},
		"YearFilter_EmptyFieldMatchingYearTallied": {
			filter:        models.YearFilter{Year: 2020},
			record:        record("01 Jan 2020 08:00:00", "", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
			expectedError: customerrors.ErrMissingField,
			expectedTally: models.Tally{
				Rows: 1, InDomain: 1, RejectedEmpty: 1,
			},
		},
		"YearFilter_MissingReceivedOutOfDomain": {
			filter:        models.YearFilter{Year: 2020},
			record:        record("", "01 Jan 2020 08:03:00", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
			expectedError: customerrors.ErrOutOfDomain,
			expectedTally: models.Tally{
				Rows: 1, OutOfDomain: 1,
			},
		},
		"YearFilter_MalformedReceivedOutOfDomain": {
			filter:        models.YearFilter{Year: 2020},
			record:        record("2020-01-01 08:00:00", "01 Jan 2020 08:03:00", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
			expectedError: customerrors.ErrOutOfDomain,
			expectedTally: models.Tally{
				Rows: 1, OutOfDomain: 1,
			},
		},
		"AllYears_MalformedReceivedRejected": {
			record:        record("2020-01-01 08:00:00", "01 Jan 2020 08:03:00", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
			expectedError: customerrors.ErrMalformedTimestamp,
			expectedTally: models.Tally{
				Rows: 1, InDomain: 1, RejectedMalformed: 1,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var tally models.Tally
			call, err := validator.New(tt.filter).Check(tt.record, &tally)

			assert.Equal(t, tt.expectedTally, tally)
			if tt.expectedError != nil {
				assert.Nil(t, call)
				assert.True(t, errors.Is(err, tt.expectedError), "Check() error = %v, want %v", err, tt.expectedError)
				var rowErr *customerrors.RowError
				require.True(t, errors.As(err, &rowErr))
				assert.Equal(t, tt.record.Line, rowErr.Line)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, call)
		})
	}
}

func TestCheck_AnyEmptyColumnRejectsOnce(t *testing.T) {
	full := []string{"1", "X", "05 Jan 2016 10:00:00", "05 Jan 2016 10:05:00", "05 Jan 2016 10:20:00", "05 Jan 2016 10:40:00", "2"}
	v := validator.New(models.YearFilter{})

	for i := range full {
		fields := append([]string(nil), full...)
		fields[i] = ""

		var tally models.Tally
		_, err := v.Check(models.NewRawRecord(2, fields), &tally)

		assert.True(t, errors.Is(err, customerrors.ErrMissingField), "column %d: got %v", i, err)
		assert.Equal(t, 1, tally.RejectedEmpty, "column %d", i)
		assert.Equal(t, 0, tally.Admitted, "column %d", i)
	}
}

func TestCheck_EmptyExtraColumnRejects(t *testing.T) {
	rec := models.NewRawRecord(2, []string{"1", "X", "05 Jan 2016 10:00:00", "05 Jan 2016 10:05:00", "05 Jan 2016 10:20:00", "05 Jan 2016 10:40:00", "2", ""})

	var tally models.Tally
	_, err := validator.New(models.YearFilter{}).Check(rec, &tally)

	assert.True(t, errors.Is(err, customerrors.ErrMissingField))
	assert.Equal(t, 1, tally.RejectedEmpty)
}

func TestCheck_TallyInvariant(t *testing.T) {
	rows := []models.RawRecord{
		record("01 Jan 2020 08:00:00", "01 Jan 2020 08:03:00", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
		record("01 Jan 2019 08:00:00", "01 Jan 2019 08:03:00", "01 Jan 2019 08:15:00", "01 Jan 2019 08:45:00"),
		record("01 Jan 2020 08:00:00", "", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
		record("01 Jan 2020 08:00:00", "bad", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
		record("01 Jan 2020 08:00:00", "01 Jan 2021 08:03:00", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
		record("", "", "", ""),
		record("garbage", "01 Jan 2020 08:03:00", "01 Jan 2020 08:15:00", "01 Jan 2020 08:45:00"),
	}

	for _, filter := range []models.YearFilter{{}, {Year: 2020}, {Year: 2019}} {
		v := validator.New(filter)
		var tally models.Tally
		for _, rec := range rows {
			_, _ = v.Check(rec, &tally)
		}
		assert.Equal(t, len(rows), tally.Rows)
		assert.Equal(t, tally.Rows, tally.InDomain+tally.OutOfDomain, "filter %+v", filter)
		assert.Equal(t,
			tally.InDomain,
			tally.Admitted+tally.RejectedEmpty+tally.RejectedMalformed+tally.RejectedAnomalous,
			"filter %+v", filter)
	}
}

func TestDerive(t *testing.T) {
	ts := func(s string) time.Time {
		t.Helper()
		v, err := parser.ParseTimestamp(s)
		require.NoError(t, err)
		return v
	}

	call := validator.Derive(models.RawRecord{},
		ts("01 Jan 2020 08:00:00"),
		ts("01 Jan 2020 08:03:00"),
		ts("01 Jan 2020 08:15:00"),
		ts("01 Jan 2020 08:45:00"),
	)

	assert.Equal(t, 3, call.Wait)
	assert.Equal(t, 12, call.Travel)
	assert.Equal(t, 30, call.Duration)
	assert.Equal(t, 8, call.Hour)
}

func TestDerive_TranslationInvariant(t *testing.T) {
	received := time.Date(2016, time.March, 10, 23, 50, 10, 0, time.UTC)
	dispatched := received.Add(4*time.Minute + 59*time.Second)
	arrived := dispatched.Add(17 * time.Minute)
	resolved := arrived.Add(-90 * time.Second)

	base := validator.Derive(models.RawRecord{}, received, dispatched, arrived, resolved)

	for _, offset := range []time.Duration{time.Second, 37 * time.Minute, 25 * time.Hour, -400 * 24 * time.Hour} {
		shifted := validator.Derive(models.RawRecord{},
			received.Add(offset), dispatched.Add(offset), arrived.Add(offset), resolved.Add(offset))
		assert.Equal(t, base.Wait, shifted.Wait, "offset %v", offset)
		assert.Equal(t, base.Travel, shifted.Travel, "offset %v", offset)
		assert.Equal(t, base.Duration, shifted.Duration, "offset %v", offset)
	}
}

func TestMinutes_TruncatesTowardZero(t *testing.T) {
	start := time.Date(2020, time.January, 1, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 4, validator.Minutes(start, start.Add(4*time.Minute+59*time.Second)))
	assert.Equal(t, -1, validator.Minutes(start, start.Add(-90*time.Second)))
	assert.Equal(t, 0, validator.Minutes(start, start.Add(-59*time.Second)))
}
