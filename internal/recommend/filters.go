package recommend

import "travelmate/internal/directory"

// maxAgeGap is the widest acceptable age difference when the viewer
// prefers near-age matches.
const maxAgeGap = 5

// ApplyPeopleHardFilters drops people candidates violating the viewer's
// preferences: outside the ±5-year window when prefer_near_age is set,
// and not fully verified (student + age) when verified_only is set.
// Posts have no equivalent hard filter.
func ApplyPeopleHardFilters(snap *directory.Snapshot, viewerID string, candidateIDs []string) []string {
	viewer, ok := snap.User(viewerID)
	if !ok {
		return nil
	}
	filtered := make([]string, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		candidate, ok := snap.User(id)
		if !ok {
			continue
		}
		if viewer.PreferNearAge {
			gap := viewer.Age - candidate.Age
			if gap < 0 {
				gap = -gap
			}
			if gap > maxAgeGap {
				continue
			}
		}
		if viewer.VerifiedOnly && !(candidate.VerifiedStudent && candidate.AgeVerified) {
			continue
		}
		filtered = append(filtered, id)
	}
	return filtered
}
