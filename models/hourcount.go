package models

// HourCount maps hour of day to admitted call count. Hours only appear once
// observed, and Hours returns them in first-insertion order.
type HourCount struct {
	counts map[int]int
	order  []int
}

// NewHourCount returns an empty HourCount.
func NewHourCount() *HourCount {
	return &HourCount{counts: make(map[int]int)}
}

// Add increments the count for hour.
func (h *HourCount) Add(hour int) {
	if h.counts == nil {
		h.counts = make(map[int]int)
	}
	if _, ok := h.counts[hour]; !ok {
		h.order = append(h.order, hour)
	}
	h.counts[hour]++
}

// Get returns the count for hour, zero if never observed.
func (h *HourCount) Get(hour int) int {
	return h.counts[hour]
}

// Hours returns the observed hours in first-insertion order.
func (h *HourCount) Hours() []int {
	return append([]int(nil), h.order...)
}

// Len returns the number of distinct hours.
func (h *HourCount) Len() int {
	return len(h.order)
}

// Total returns the sum of all counts.
func (h *HourCount) Total() int {
	total := 0
	for _, c := range h.counts {
		total += c
	}
	return total
}
