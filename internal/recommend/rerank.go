package recommend

import (
	"sort"
	"time"

	"travelmate/internal/directory"
	"travelmate/internal/impressions"
)

// Diversity caps: a single cluster must not monopolize results.
const (
	MaxSamePrimaryCulture  = 6
	MaxSamePrimaryLanguage = 8
	MaxPostsSameAuthor     = 3
)

// New-user boost.
const (
	NewUserWindowDays = 14
	NewUserBoost      = 0.03
)

// Impression penalties. Mutually exclusive, the stronger applies.
const (
	recentWindowPenalty = 0.05 // shown within the viewer's last 50 impressions
	recentDaysPenalty   = 0.02 // else shown within the last 7 days
	recentWindowSize    = 50
	recentDaysWindow    = 7
)

// ScoredPerson is a transient per-request person candidate with its
// score and the primary attributes used for diversity capping.
type ScoredPerson struct {
	ID              string
	Score           float64
	PrimaryCulture  string
	PrimaryLanguage string
}

// ScoredPost is a transient per-request post candidate.
type ScoredPost struct {
	ID       string
	Score    float64
	AuthorID string
}

func impressionPenalty(store *impressions.Store, viewerID, candidateID string) float64 {
	if store.IsRecentlyShown(viewerID, candidateID, recentWindowSize) {
		return recentWindowPenalty
	}
	if store.WasShownWithinDays(viewerID, candidateID, recentDaysWindow) {
		return recentDaysPenalty
	}
	return 0.0
}

// RerankPeople adjusts pre-sorted (score desc, id asc) person candidates
// for recency and repeat exposure, re-sorts, then greedily admits results
// under the per-culture and per-language caps up to limit. Candidates
// violating a cap are skipped, not deferred.
func RerankPeople(viewerID string, scored []ScoredPerson, store *impressions.Store, limit int, snap *directory.Snapshot, now time.Time) []ScoredPerson {
	adjusted := make([]ScoredPerson, 0, len(scored))
	for _, sc := range scored {
		candidate, ok := snap.User(sc.ID)
		if !ok {
			continue
		}
		score := sc.Score
		if now.Sub(candidate.CreatedAt).Hours()/24 <= NewUserWindowDays {
			score += NewUserBoost
		}
		score -= impressionPenalty(store, viewerID, sc.ID)

		primaryCulture := ""
		if len(candidate.CulturalBackgrounds) > 0 {
			primaryCulture = candidate.CulturalBackgrounds[0]
		}
		primaryLanguage := ""
		if len(candidate.Languages) > 0 {
			primaryLanguage = candidate.Languages[0]
		}
		adjusted = append(adjusted, ScoredPerson{
			ID:              sc.ID,
			Score:           score,
			PrimaryCulture:  primaryCulture,
			PrimaryLanguage: primaryLanguage,
		})
	}

	// stable keeps the incoming (score desc, id asc) order for ties
	sort.SliceStable(adjusted, func(i, j int) bool { return adjusted[i].Score > adjusted[j].Score })

	result := make([]ScoredPerson, 0, limit)
	cultureCounts := make(map[string]int)
	languageCounts := make(map[string]int)
	for _, sc := range adjusted {
		if len(result) >= limit {
			break
		}
		if sc.PrimaryCulture != "" && cultureCounts[sc.PrimaryCulture] >= MaxSamePrimaryCulture {
			continue
		}
		if sc.PrimaryLanguage != "" && languageCounts[sc.PrimaryLanguage] >= MaxSamePrimaryLanguage {
			continue
		}
		result = append(result, sc)
		if sc.PrimaryCulture != "" {
			cultureCounts[sc.PrimaryCulture]++
		}
		if sc.PrimaryLanguage != "" {
			languageCounts[sc.PrimaryLanguage]++
		}
	}
	return result
}

// RerankPosts applies the impression penalties (no new-item boost),
// re-sorts, and greedily admits at most MaxPostsSameAuthor per author up
// to limit.
func RerankPosts(viewerID string, scored []ScoredPost, store *impressions.Store, limit int) []ScoredPost {
	adjusted := make([]ScoredPost, 0, len(scored))
	for _, sc := range scored {
		sc.Score -= impressionPenalty(store, viewerID, sc.ID)
		adjusted = append(adjusted, sc)
	}

	sort.SliceStable(adjusted, func(i, j int) bool { return adjusted[i].Score > adjusted[j].Score })

	result := make([]ScoredPost, 0, limit)
	authorCounts := make(map[string]int)
	for _, sc := range adjusted {
		if len(result) >= limit {
			break
		}
		if sc.AuthorID != "" {
			if authorCounts[sc.AuthorID] >= MaxPostsSameAuthor {
				continue
			}
			authorCounts[sc.AuthorID]++
		}
		result = append(result, sc)
	}
	return result
}
