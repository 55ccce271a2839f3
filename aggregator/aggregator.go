package aggregator

import (
	"call-distributions/models"
	"sort"
)

// CountHours tallies the call received hour of every admitted call.
func CountHours(calls []models.ParsedCall) *models.HourCount {
	counts := models.NewHourCount()
	for _, c := range calls {
		counts.Add(c.Hour)
	}
	return counts
}

// Rank orders hours by descending call count.
// Hours with equal counts keep the order in which they were first observed.
// Time: O(h log h) for at most 24 hours.
func Rank(counts *models.HourCount) []models.HourVolume {
	hours := counts.Hours()
	ranking := make([]models.HourVolume, 0, len(hours))
	for _, h := range hours {
		ranking = append(ranking, models.HourVolume{Hour: h, Calls: counts.Get(h)})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Calls > ranking[j].Calls
	})
	return ranking
}

// BuildSeries extracts the four distributions from the admitted calls.
// Negative durations stay on the calls themselves but are dropped from the
// wait, travel and duration series.
func BuildSeries(calls []models.ParsedCall) models.Series {
	series := models.Series{
		CallHours: make([]int, 0, len(calls)),
		Wait:      make([]int, 0, len(calls)),
		Travel:    make([]int, 0, len(calls)),
		Duration:  make([]int, 0, len(calls)),
	}
	for _, c := range calls {
		series.CallHours = append(series.CallHours, c.Hour)
		series.Wait = appendNonNegative(series.Wait, c.Wait)
		series.Travel = appendNonNegative(series.Travel, c.Travel)
		series.Duration = appendNonNegative(series.Duration, c.Duration)
	}
	return series
}

func appendNonNegative(values []int, v int) []int {
	if v < 0 {
		return values
	}
	return append(values, v)
}
