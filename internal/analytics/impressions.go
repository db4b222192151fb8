package analytics

import (
	"sort"
	"time"

	"travelmate/internal/model"
)

// HourlyImpressions aggregates impression events into per-hour buckets
// keyed by recommendation kind.
func HourlyImpressions(events []model.ImpressionEvent) map[time.Time]map[string]int {
	buckets := make(map[time.Time]map[string]int)
	for _, e := range events {
		key := time.Date(e.ShownAt.Year(), e.ShownAt.Month(), e.ShownAt.Day(), e.ShownAt.Hour(), 0, 0, 0, time.UTC)
		if _, ok := buckets[key]; !ok {
			buckets[key] = make(map[string]int)
		}
		buckets[key][e.Kind]++
	}
	return buckets
}

// SortedBucketKeys returns sorted hour keys.
func SortedBucketKeys(m map[time.Time]map[string]int) []time.Time {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}

// TopCandidates returns the most-shown candidate ids across events,
// highest count first, id asc on ties.
func TopCandidates(events []model.ImpressionEvent, n int) []string {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.CandidateID]++
	}
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}
