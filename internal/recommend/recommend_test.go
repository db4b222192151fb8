package recommend

import (
	"reflect"
	"testing"
	"time"

	"travelmate/internal/demo"
	"travelmate/internal/directory"
	"travelmate/internal/impressions"
)

func demoRecommender(t *testing.T) *Recommender {
	t.Helper()
	snap := demo.Snapshot(testNow)
	r := New(directory.Static{Snap: snap}, impressions.New(), impressions.New(), nil)
	r.now = func() time.Time { return testNow }
	return r
}

func TestRecommendPeopleDeterministic(t *testing.T) {
	r := demoRecommender(t)
	first := r.RecommendPeople("user_1", 10, false, false)
	second := r.RecommendPeople("user_1", 10, false, false)
	if len(first) == 0 {
		t.Fatal("expected results for demo viewer")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same input produced different results")
	}
}

func TestRecommendPeopleUnknownViewer(t *testing.T) {
	r := demoRecommender(t)
	out := r.RecommendPeople("ghost", 10, false, false)
	if out == nil || len(out) != 0 {
		t.Fatalf("unknown viewer: want empty non-nil, got %v", out)
	}
	posts := r.RecommendPosts("ghost", 10, false, false)
	if posts == nil || len(posts) != 0 {
		t.Fatalf("unknown viewer posts: want empty non-nil, got %v", posts)
	}
}

func TestRecommendPeopleExcludesBlocksAndFriends(t *testing.T) {
	r := demoRecommender(t)
	// user_2 blocked user_9, and user_2 is friends with user_6 and user_12.
	for _, banned := range []string{"user_2", "user_9", "user_6", "user_12"} {
		for _, rec := range r.RecommendPeople("user_2", 50, false, false) {
			if rec.ID == banned {
				t.Fatalf("%s should never appear for user_2", banned)
			}
		}
	}
	// The block is bidirectional in effect.
	for _, rec := range r.RecommendPeople("user_9", 50, false, false) {
		if rec.ID == "user_2" {
			t.Fatal("blocker should not be recommended to the blocked user")
		}
	}
}

func TestRecommendPeopleResultShape(t *testing.T) {
	r := demoRecommender(t)
	for _, rec := range r.RecommendPeople("user_1", 10, false, false) {
		if len(rec.Tags) > 6 {
			t.Fatalf("too many tags: %v", rec.Tags)
		}
		if !rec.LocationHidden {
			t.Fatal("location must be hidden on person results")
		}
		if rec.DebugScore != nil {
			t.Fatal("debug score attached without debug flag")
		}
	}
}

func TestRecommendPeopleDebugDoesNotReorder(t *testing.T) {
	r := demoRecommender(t)
	plain := r.RecommendPeople("user_1", 10, false, false)
	debug := r.RecommendPeople("user_1", 10, true, false)
	if len(plain) != len(debug) {
		t.Fatalf("debug changed result count: %d vs %d", len(plain), len(debug))
	}
	for i := range plain {
		if plain[i].ID != debug[i].ID {
			t.Fatalf("debug changed ordering at %d: %s vs %s", i, plain[i].ID, debug[i].ID)
		}
		if debug[i].DebugScore == nil {
			t.Fatalf("missing debug score at %d", i)
		}
	}
}

func TestRecommendPeopleRecordsImpressions(t *testing.T) {
	r := demoRecommender(t)
	out := r.RecommendPeople("user_1", 5, false, true)
	if len(out) == 0 {
		t.Fatal("expected results")
	}
	for _, rec := range out {
		got := r.PeopleStore().Get("user_1", rec.ID)
		if got.Count != 1 {
			t.Fatalf("impression not recorded for %s: %+v", rec.ID, got)
		}
	}
	// Evaluation reads leave the store untouched.
	r2 := demoRecommender(t)
	_ = r2.RecommendPeople("user_1", 5, false, false)
	if r2.PeopleStore().IsRecentlyShown("user_1", out[0].ID, 50) {
		t.Fatal("record=false wrote to the store")
	}
}

func TestRecommendPeopleRepeatExposureDemotes(t *testing.T) {
	r := demoRecommender(t)
	before := r.RecommendPeople("user_1", 50, true, true)
	after := r.RecommendPeople("user_1", 50, true, false)
	if len(before) == 0 || len(after) == 0 {
		t.Fatal("expected results both passes")
	}
	// Every result of the first pass now carries the recent-window penalty.
	firstSeen := *before[0].DebugScore
	found := false
	for _, rec := range after {
		if rec.ID != before[0].ID {
			continue
		}
		found = true
		if *rec.DebugScore >= firstSeen {
			t.Fatalf("expected penalty after exposure: %v >= %v", *rec.DebugScore, firstSeen)
		}
	}
	if !found {
		t.Fatalf("previously shown candidate %s missing from second pass", before[0].ID)
	}
}

func TestRecommendPostsExcludesBlockedAuthors(t *testing.T) {
	r := demoRecommender(t)
	// post_8 is authored by user_9, whom user_2 blocked.
	for _, rec := range r.RecommendPosts("user_2", 50, false, false) {
		if rec.AuthorID == "user_9" {
			t.Fatalf("blocked author's post surfaced: %s", rec.ID)
		}
	}
}

func TestRecommendPostsDeterministicAndShaped(t *testing.T) {
	r := demoRecommender(t)
	first := r.RecommendPosts("user_1", 10, false, false)
	second := r.RecommendPosts("user_1", 10, false, false)
	if len(first) == 0 {
		t.Fatal("expected post results for demo viewer")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same input produced different post results")
	}
	for _, rec := range first {
		if rec.AuthorName == "" {
			t.Fatalf("missing author name on %s", rec.ID)
		}
	}
}

func TestRecommendPostsFriendAuthoredRanksHigh(t *testing.T) {
	r := demoRecommender(t)
	out := r.RecommendPosts("user_1", 10, false, false)
	if len(out) == 0 {
		t.Fatal("expected results")
	}
	// user_1's friends are user_4, user_5, user_9; a friend post leads.
	friends := map[string]bool{"user_4": true, "user_5": true, "user_9": true}
	if !friends[out[0].AuthorID] {
		t.Fatalf("top post authored by %s, expected a friend", out[0].AuthorID)
	}
}

func TestRecommendDefaultLimits(t *testing.T) {
	r := demoRecommender(t)
	if got := len(r.RecommendPeople("user_1", 0, false, false)); got > DefaultPeopleLimit {
		t.Fatalf("limit<=0 exceeded default: %d", got)
	}
	if got := len(r.RecommendPosts("user_1", -1, false, false)); got > DefaultPostLimit {
		t.Fatalf("limit<=0 exceeded default: %d", got)
	}
}
