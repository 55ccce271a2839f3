package formatter

import (
	"call-distributions/models"
	"call-distributions/pipeline"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ReportData holds prepared report data used by all formatters
type ReportData struct {
	RunID   string         `json:"run_id"`
	Tally   models.Tally   `json:"tally"`
	Ranking []RankedHour   `json:"ranking"`
	Series  map[string]int `json:"series_lengths"`
}

// RankedHour is one ranking line with its share of admitted calls.
type RankedHour struct {
	Rank    int     `json:"rank"`
	Hour    int     `json:"hour"`
	Calls   int     `json:"calls"`
	Percent float64 `json:"percent"`
}

// prepareReportData extracts and organizes run data for formatting
func prepareReportData(res *pipeline.Result) *ReportData {
	ranking := make([]RankedHour, 0, len(res.Ranking))
	for i, hv := range res.Ranking {
		pct := 0.0
		if res.Tally.Admitted > 0 {
			pct = 100 * float64(hv.Calls) / float64(res.Tally.Admitted)
		}
		ranking = append(ranking, RankedHour{
			Rank:    i + 1,
			Hour:    hv.Hour,
			Calls:   hv.Calls,
			Percent: pct,
		})
	}

	return &ReportData{
		RunID:   res.RunID,
		Tally:   res.Tally,
		Ranking: ranking,
		Series: map[string]int{
			"call_hour": len(res.Series.CallHours),
			"wait":      len(res.Series.Wait),
			"travel":    len(res.Series.Travel),
			"duration":  len(res.Series.Duration),
		},
	}
}

// FormatText returns the console report: rejection counters followed by
// hours in decreasing order of call volume.
func FormatText(res *pipeline.Result) string {
	data := prepareReportData(res)
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Rows read: %d\n", data.Tally.Rows))
	sb.WriteString(fmt.Sprintf("Calls in domain: %d\n", data.Tally.InDomain))
	sb.WriteString(fmt.Sprintf("Rejected for empty field: %d\n", data.Tally.RejectedEmpty))
	sb.WriteString(fmt.Sprintf("Rejected for malformed timestamp: %d\n", data.Tally.RejectedMalformed))
	sb.WriteString(fmt.Sprintf("Rejected for anomalous duration: %d\n", data.Tally.RejectedAnomalous))
	sb.WriteString(fmt.Sprintf("Outside year filter: %d\n", data.Tally.OutOfDomain))
	sb.WriteString(fmt.Sprintf("Admitted: %d\n", data.Tally.Admitted))

	sb.WriteString("Decreasing order of call quantities:\n")
	for _, rh := range data.Ranking {
		sb.WriteString(formatTextLine(rh))
		sb.WriteString("\n")
	}
	sb.WriteString("Done!\n")

	return sb.String()
}

// FormatJSON returns the JSON representation of the run
func FormatJSON(res *pipeline.Result) string {
	data := prepareReportData(res)
	jsonBytes, _ := json.MarshalIndent(data, "", "  ")
	return string(jsonBytes) + "\n"
}

// FormatCSV returns the hour ranking as CSV with a header row
func FormatCSV(res *pipeline.Result) string {
	data := prepareReportData(res)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write([]string{"Rank", "Hour", "Calls", "Percent"})
	for _, rh := range data.Ranking {
		writer.Write([]string{
			strconv.Itoa(rh.Rank),
			fmt.Sprintf("%02d:00", rh.Hour),
			strconv.Itoa(rh.Calls),
			fmt.Sprintf("%.2f", rh.Percent),
		})
	}

	writer.Flush()
	return sb.String()
}

// Format dispatches on the report format name, defaulting to text.
func Format(format string, res *pipeline.Result) string {
	switch format {
	case "json":
		return FormatJSON(res)
	case "csv":
		return FormatCSV(res)
	default:
		return FormatText(res)
	}
}

// formatTextLine formats a single ranking line for text output
func formatTextLine(rh RankedHour) string {
	return fmt.Sprintf("Hour: %d, Calls: %d", rh.Hour, rh.Calls)
}
