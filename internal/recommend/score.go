package recommend

import (
	"time"

	"travelmate/internal/directory"
	"travelmate/internal/similarity"
)

// Person score weights. They sum to 1.05 at maximum: the verified bonus
// is additive headroom, not renormalized.
const (
	personWeightLocation = 0.30
	personWeightGoals    = 0.25
	personWeightCulture  = 0.20
	personWeightLanguage = 0.15
	personWeightMutual   = 0.05
	personWeightRecency  = 0.05
	verifiedBonus        = 0.05
)

// Post score weights.
const (
	postWeightFriendAuthor = 0.35
	postWeightFriendLikes  = 0.20
	postWeightLocation     = 0.20
	postWeightGoals        = 0.15
	postWeightRecency      = 0.10
)

// ScorePerson computes the deterministic compatibility score of a person
// candidate for a viewer. Pure given the snapshot and now.
func ScorePerson(snap *directory.Snapshot, viewerID, candidateID string, highSignal map[string]struct{}, now time.Time) float64 {
	viewer, ok := snap.User(viewerID)
	if !ok {
		return 0.0
	}
	candidate, ok := snap.User(candidateID)
	if !ok {
		return 0.0
	}

	loc := similarity.LocationScore(viewer.CurrentCity, viewer.DestinationCity, candidate.CurrentCity, candidate.DestinationCity)
	goals := similarity.Jaccard(viewer.Goals, candidate.Goals)
	culture := similarity.CultureScore(viewer.CulturalBackgrounds, candidate.CulturalBackgrounds)
	lang := similarity.LanguageScore(viewer.Languages, candidate.Languages, highSignal)
	mutual := similarity.MutualFriendsScore(viewerID, candidateID, snap.FriendsGraph())
	recent := similarity.RecencyScore(candidate.LastActiveAt, similarity.DefaultRecencyWindowDays, now)

	score := personWeightLocation*loc +
		personWeightGoals*goals +
		personWeightCulture*culture +
		personWeightLanguage*lang +
		personWeightMutual*mutual +
		personWeightRecency*recent
	if candidate.VerifiedStudent {
		score += verifiedBonus
	}
	return score
}

// ScorePost computes the deterministic score of a post candidate for a
// viewer. Returns 0.0 when the author record dangles.
func ScorePost(snap *directory.Snapshot, viewerID, postID string, now time.Time) float64 {
	viewer, ok := snap.User(viewerID)
	if !ok {
		return 0.0
	}
	post, ok := snap.Post(postID)
	if !ok {
		return 0.0
	}
	author, ok := snap.User(post.AuthorID)
	if !ok {
		return 0.0
	}

	friends := snap.Friends(viewerID)
	friendAuthor := 0.0
	if _, isFriend := friends[post.AuthorID]; isFriend {
		friendAuthor = 1.0
	}

	friendLikes := 0
	for likerID := range snap.Likes(postID) {
		if _, isFriend := friends[likerID]; isFriend {
			friendLikes++
		}
	}
	if friendLikes > 5 {
		friendLikes = 5
	}
	likedNorm := float64(friendLikes) / 5

	locMatch := similarity.PostLocationMatch(post.CoarseLocation, viewer.CurrentCity, viewer.DestinationCity)
	goalsMatch := similarity.Jaccard(viewer.Goals, post.Tags)
	recent := similarity.RecencyScore(post.CreatedAt, similarity.DefaultRecencyWindowDays, now)

	score := postWeightFriendAuthor*friendAuthor +
		postWeightFriendLikes*likedNorm +
		postWeightLocation*locMatch +
		postWeightGoals*goalsMatch +
		postWeightRecency*recent
	if author.VerifiedStudent {
		score += verifiedBonus
	}
	return score
}
