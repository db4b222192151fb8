package recommend

import (
	"sort"
	"time"

	"travelmate/internal/directory"
	"travelmate/internal/impressions"
	"travelmate/internal/model"
	"travelmate/internal/similarity"
	"travelmate/internal/util"
)

// Default result limits when the caller passes limit <= 0.
const (
	DefaultPeopleLimit = 20
	DefaultPostLimit   = 30
)

const maxResultTags = 6

// Recommender runs the full pipeline for a viewer: generate candidates,
// hard-filter (people only), score, sort, rerank, build results. It holds
// no per-request state; each call reads one snapshot from the source and
// the injected impression stores.
type Recommender struct {
	source     directory.Source
	people     *impressions.Store
	posts      *impressions.Store
	highSignal map[string]struct{}
	now        func() time.Time
}

// New builds a recommender over the given snapshot source and impression
// stores (one per kind). highSignalLanguages may be nil to use the
// default set.
func New(source directory.Source, people, posts *impressions.Store, highSignalLanguages []string) *Recommender {
	if highSignalLanguages == nil {
		highSignalLanguages = similarity.DefaultHighSignalLanguages
	}
	return &Recommender{
		source:     source,
		people:     people,
		posts:      posts,
		highSignal: util.ToSet(highSignalLanguages),
		now:        time.Now,
	}
}

// PeopleStore returns the injected people impression store.
func (r *Recommender) PeopleStore() *impressions.Store { return r.people }

// PostStore returns the injected post impression store.
func (r *Recommender) PostStore() *impressions.Store { return r.posts }

// RecommendPeople returns ranked person results for a viewer. An unknown
// viewer yields an empty list: absence is a normal no-candidates outcome
// here; the API boundary decides whether it is a client-visible error.
// With recordImpressions=false the call is pure and repeatable. debug
// attaches the adjusted score to each result and never affects ordering.
func (r *Recommender) RecommendPeople(viewerID string, limit int, debug, recordImpressions bool) []model.PersonRecommendation {
	if limit <= 0 {
		limit = DefaultPeopleLimit
	}
	snap := r.source.Snapshot()
	now := r.now()

	if _, ok := snap.User(viewerID); !ok {
		return []model.PersonRecommendation{}
	}

	candidateIDs := GeneratePeopleCandidates(snap, viewerID)
	filteredIDs := ApplyPeopleHardFilters(snap, viewerID, candidateIDs)

	scored := make([]ScoredPerson, 0, len(filteredIDs))
	for _, id := range filteredIDs {
		scored = append(scored, ScoredPerson{ID: id, Score: ScorePerson(snap, viewerID, id, r.highSignal, now)})
	}
	sortScoredPeople(scored)

	reranked := RerankPeople(viewerID, scored, r.people, limit, snap, now)

	viewerFriends := snap.Friends(viewerID)
	results := make([]model.PersonRecommendation, 0, len(reranked))
	for _, sc := range reranked {
		candidate, ok := snap.User(sc.ID)
		if !ok {
			continue
		}
		mutual := util.IntersectionSize(viewerFriends, snap.Friends(sc.ID))

		tags := make([]string, 0, maxResultTags)
		tags = append(tags, firstN(candidate.Goals, 2)...)
		tags = append(tags, firstN(candidate.Languages, 2)...)
		tags = append(tags, firstN(candidate.CulturalBackgrounds, 2)...)
		if len(tags) > maxResultTags {
			tags = tags[:maxResultTags]
		}

		rec := model.PersonRecommendation{
			ID:                 candidate.ID,
			DisplayName:        candidate.DisplayName,
			Bio:                candidate.Bio,
			VerifiedStudent:    candidate.VerifiedStudent,
			AgeVerified:        candidate.AgeVerified,
			Tags:               tags,
			MutualFriendsCount: mutual,
			LocationHidden:     true,
		}
		if debug {
			score := sc.Score
			rec.DebugScore = &score
		}
		results = append(results, rec)

		if recordImpressions {
			_ = r.people.RecordImpression(viewerID, sc.ID)
		}
	}
	return results
}

// RecommendPosts returns ranked post results for a viewer. Same flag
// semantics as RecommendPeople; posts have no hard filters.
func (r *Recommender) RecommendPosts(viewerID string, limit int, debug, recordImpressions bool) []model.PostRecommendation {
	if limit <= 0 {
		limit = DefaultPostLimit
	}
	snap := r.source.Snapshot()
	now := r.now()

	if _, ok := snap.User(viewerID); !ok {
		return []model.PostRecommendation{}
	}

	candidateIDs := GeneratePostCandidates(snap, viewerID)

	scored := make([]ScoredPost, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		post, ok := snap.Post(id)
		if !ok {
			continue
		}
		scored = append(scored, ScoredPost{ID: id, Score: ScorePost(snap, viewerID, id, now), AuthorID: post.AuthorID})
	}
	sortScoredPosts(scored)

	reranked := RerankPosts(viewerID, scored, r.posts, limit)

	viewerFriends := snap.Friends(viewerID)
	results := make([]model.PostRecommendation, 0, len(reranked))
	for _, sc := range reranked {
		post, ok := snap.Post(sc.ID)
		if !ok {
			continue
		}
		author, ok := snap.User(post.AuthorID)
		if !ok {
			// referential dangling: skip the candidate, not the batch
			continue
		}

		friendLikes := 0
		for likerID := range snap.Likes(sc.ID) {
			if _, isFriend := viewerFriends[likerID]; isFriend {
				friendLikes++
			}
		}

		var dateRange *model.DateRange
		if post.StartDate != "" || post.EndDate != "" {
			dateRange = &model.DateRange{StartDate: post.StartDate, EndDate: post.EndDate}
		}

		rec := model.PostRecommendation{
			ID:                    post.ID,
			AuthorID:              post.AuthorID,
			AuthorName:            author.DisplayName,
			AuthorVerifiedStudent: author.VerifiedStudent,
			Text:                  post.Text,
			CoarseLocation:        post.CoarseLocation,
			DateRange:             dateRange,
			LikedByFriendsCount:   friendLikes,
		}
		if debug {
			score := sc.Score
			rec.DebugScore = &score
		}
		results = append(results, rec)

		if recordImpressions {
			_ = r.posts.RecordImpression(viewerID, sc.ID)
		}
	}
	return results
}

// sortScoredPeople orders score desc, id asc. The id tie-break is what
// makes the whole pipeline deterministic: generation is unordered.
func sortScoredPeople(scored []ScoredPerson) {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ID < scored[j].ID
	})
}

func sortScoredPosts(scored []ScoredPost) {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ID < scored[j].ID
	})
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
