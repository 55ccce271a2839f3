package formatter_test

import (
	"call-distributions/formatter"
	"call-distributions/models"
	"call-distributions/pipeline"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		RunID: "run-1",
		Tally: models.Tally{
			Rows:              12,
			InDomain:          11,
			RejectedEmpty:     2,
			RejectedMalformed: 1,
			RejectedAnomalous: 1,
			OutOfDomain:       1,
			Admitted:          7,
		},
		Ranking: []models.HourVolume{
			{Hour: 3, Calls: 4},
			{Hour: 8, Calls: 2},
			{Hour: 14, Calls: 1},
		},
		Series: models.Series{
			CallHours: []int{3, 3, 3, 3, 8, 8, 14},
			Wait:      []int{1, 2, 3},
		},
	}
}

func TestFormatText(t *testing.T) {
	tests := map[string]struct {
		result   *pipeline.Result
		contains []string
	}{
		"EmptyRun": {
			result: &pipeline.Result{},
			contains: []string{
				"Rows read: 0",
				"Admitted: 0",
				"Decreasing order of call quantities:\nDone!",
			},
		},
		"RankedRun": {
			result: sampleResult(),
			contains: []string{
				"Rows read: 12",
				"Calls in domain: 11",
				"Rejected for empty field: 2",
				"Rejected for malformed timestamp: 1",
				"Rejected for anomalous duration: 1",
				"Outside year filter: 1",
				"Admitted: 7",
				"Decreasing order of call quantities:\nHour: 3, Calls: 4\nHour: 8, Calls: 2\nHour: 14, Calls: 1\nDone!\n",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			output := formatter.FormatText(tt.result)
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
		})
	}
}

func TestFormatJSON(t *testing.T) {
	var decoded struct {
		RunID   string       `json:"run_id"`
		Tally   models.Tally `json:"tally"`
		Ranking []struct {
			Rank    int     `json:"rank"`
			Hour    int     `json:"hour"`
			Calls   int     `json:"calls"`
			Percent float64 `json:"percent"`
		} `json:"ranking"`
		Series map[string]int `json:"series_lengths"`
	}
	require.NoError(t, json.Unmarshal([]byte(formatter.FormatJSON(sampleResult())), &decoded))

	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, sampleResult().Tally, decoded.Tally)
	require.Len(t, decoded.Ranking, 3)
	assert.Equal(t, 1, decoded.Ranking[0].Rank)
	assert.Equal(t, 3, decoded.Ranking[0].Hour)
	assert.InDelta(t, 57.14, decoded.Ranking[0].Percent, 0.01)
	assert.Equal(t, 7, decoded.Series["call_hour"])
	assert.Equal(t, 3, decoded.Series["wait"])
	assert.Equal(t, 0, decoded.Series["duration"])
}

func TestFormatCSV(t *testing.T) {
	output := formatter.FormatCSV(sampleResult())
	lines := strings.Split(strings.TrimSpace(output), "\n")

	assert.Equal(t, []string{
		"Rank,Hour,Calls,Percent",
		"1,03:00,4,57.14",
		"2,08:00,2,28.57",
		"3,14:00,1,14.29",
	}, lines)
}

func TestFormat_Dispatch(t *testing.T) {
	res := sampleResult()
	assert.Equal(t, formatter.FormatJSON(res), formatter.Format("json", res))
	assert.Equal(t, formatter.FormatCSV(res), formatter.Format("csv", res))
	assert.Equal(t, formatter.FormatText(res), formatter.Format("text", res))
	assert.Equal(t, formatter.FormatText(res), formatter.Format("", res))
}
