package recommend

import (
	"travelmate/internal/directory"
	"travelmate/internal/util"
)

// excludedPeople is the uniform exclusion set for people generation:
// self, current friends, users the viewer blocked, users who blocked the
// viewer.
func excludedPeople(snap *directory.Snapshot, viewerID string) map[string]struct{} {
	excluded := map[string]struct{}{viewerID: {}}
	for id := range snap.Friends(viewerID) {
		excluded[id] = struct{}{}
	}
	for id := range snap.Blocks(viewerID) {
		excluded[id] = struct{}{}
	}
	for id := range snap.BlockedBy(viewerID) {
		excluded[id] = struct{}{}
	}
	return excluded
}

// GeneratePeopleCandidates produces the unordered, unfiltered people
// candidate set for a viewer: friends-of-friends, city/destination
// cross-matches, and users sharing any goal, language, or cultural
// background. Ordering is irrelevant here; determinism is enforced at
// scoring/sort time.
func GeneratePeopleCandidates(snap *directory.Snapshot, viewerID string) []string {
	viewer, ok := snap.User(viewerID)
	if !ok {
		return nil
	}
	excluded := excludedPeople(snap, viewerID)
	candidates := make(map[string]struct{})

	// friends of friends
	for friendID := range snap.Friends(viewerID) {
		for fofID := range snap.Friends(friendID) {
			if _, skip := excluded[fofID]; skip {
				continue
			}
			candidates[fofID] = struct{}{}
		}
	}

	// same city or destination cross-match
	for id, u := range snap.Users() {
		if _, skip := excluded[id]; skip {
			continue
		}
		switch {
		case u.CurrentCity == viewer.CurrentCity:
			candidates[id] = struct{}{}
		case viewer.DestinationCity != "" && u.CurrentCity == viewer.DestinationCity:
			candidates[id] = struct{}{}
		case u.DestinationCity != "" && u.DestinationCity == viewer.CurrentCity:
			candidates[id] = struct{}{}
		case viewer.DestinationCity != "" && u.DestinationCity != "" && u.DestinationCity == viewer.DestinationCity:
			candidates[id] = struct{}{}
		}
	}

	// shared goals, languages, or cultural backgrounds
	goals := util.ToSet(viewer.Goals)
	langs := util.ToSet(viewer.Languages)
	cultures := util.ToSet(viewer.CulturalBackgrounds)
	for id, u := range snap.Users() {
		if _, skip := excluded[id]; skip {
			continue
		}
		switch {
		case util.IntersectionSize(goals, util.ToSet(u.Goals)) > 0:
			candidates[id] = struct{}{}
		case util.IntersectionSize(langs, util.ToSet(u.Languages)) > 0:
			candidates[id] = struct{}{}
		case util.IntersectionSize(cultures, util.ToSet(u.CulturalBackgrounds)) > 0:
			candidates[id] = struct{}{}
		}
	}

	out := make([]string, 0, len(candidates))
	for id := range candidates {
		out = append(out, id)
	}
	return out
}

// GeneratePostCandidates produces the unordered post candidate set for a
// viewer: posts authored by friends, posts liked by at least one friend,
// and friend-of-friend posts whose coarse location mentions the viewer's
// current or destination city. Posts by authors in a block relation with
// the viewer (either direction) are excluded.
func GeneratePostCandidates(snap *directory.Snapshot, viewerID string) []string {
	viewer, ok := snap.User(viewerID)
	if !ok {
		return nil
	}
	friends := snap.Friends(viewerID)
	excludedAuthors := make(map[string]struct{})
	for id := range snap.Blocks(viewerID) {
		excludedAuthors[id] = struct{}{}
	}
	for id := range snap.BlockedBy(viewerID) {
		excludedAuthors[id] = struct{}{}
	}

	candidates := make(map[string]struct{})

	// posts by friends
	for id, p := range snap.Posts() {
		if _, blocked := excludedAuthors[p.AuthorID]; blocked {
			continue
		}
		if _, isFriend := friends[p.AuthorID]; isFriend {
			candidates[id] = struct{}{}
		}
	}

	// posts liked by friends
	for id, p := range snap.Posts() {
		if _, blocked := excludedAuthors[p.AuthorID]; blocked {
			continue
		}
		for likerID := range snap.Likes(id) {
			if _, isFriend := friends[likerID]; isFriend {
				candidates[id] = struct{}{}
				break
			}
		}
	}

	// friend-of-friend posts in the viewer's current or destination city
	fof := make(map[string]struct{})
	for friendID := range friends {
		for fofID := range snap.Friends(friendID) {
			if fofID == viewerID {
				continue
			}
			if _, isFriend := friends[fofID]; isFriend {
				continue
			}
			fof[fofID] = struct{}{}
		}
	}
	for id, p := range snap.Posts() {
		if _, blocked := excludedAuthors[p.AuthorID]; blocked {
			continue
		}
		if _, isFOF := fof[p.AuthorID]; !isFOF {
			continue
		}
		if util.ContainsCaseInsensitive(p.CoarseLocation, viewer.CurrentCity) ||
			(viewer.DestinationCity != "" && util.ContainsCaseInsensitive(p.CoarseLocation, viewer.DestinationCity)) {
			candidates[id] = struct{}{}
		}
	}

	out := make([]string, 0, len(candidates))
	for id := range candidates {
		out = append(out, id)
	}
	return out
}
