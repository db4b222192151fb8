package recommend

import (
	"fmt"
	"testing"
	"time"

	"travelmate/internal/directory"
	"travelmate/internal/impressions"
)

func TestRerankPeopleCultureCap(t *testing.T) {
	snap := directory.NewSnapshot()
	snap.AddUser(baseUser("viewer", "Toronto"))

	scored := make([]ScoredPerson, 0, 9)
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("same_%d", i)
		u := baseUser(id, "Toronto")
		u.CulturalBackgrounds = []string{"Brazilian"}
		u.Languages = []string{fmt.Sprintf("lang_%d", i)}
		snap.AddUser(u)
		scored = append(scored, ScoredPerson{ID: id, Score: 0.9 - float64(i)*0.01})
	}
	other := baseUser("other", "Toronto")
	other.CulturalBackgrounds = []string{"Japanese"}
	other.Languages = []string{"Japanese"}
	snap.AddUser(other)
	scored = append(scored, ScoredPerson{ID: "other", Score: 0.1})

	out := RerankPeople("viewer", scored, impressions.New(), 20, snap, testNow)

	sameCulture := 0
	for _, sc := range out {
		if sc.PrimaryCulture == "Brazilian" {
			sameCulture++
		}
	}
	if sameCulture != MaxSamePrimaryCulture {
		t.Fatalf("admitted %d same-culture results, want %d", sameCulture, MaxSamePrimaryCulture)
	}
	// The capped-out candidates are skipped, so the low scorer still lands.
	if len(out) != MaxSamePrimaryCulture+1 || out[len(out)-1].ID != "other" {
		t.Fatalf("expected low-scoring diverse candidate admitted, got %v", out)
	}
}

func TestRerankPeopleLanguageCap(t *testing.T) {
	snap := directory.NewSnapshot()
	snap.AddUser(baseUser("viewer", "Toronto"))
	scored := make([]ScoredPerson, 0, 10)
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("c_%d", i)
		u := baseUser(id, "Toronto")
		u.Languages = []string{"English"}
		u.CulturalBackgrounds = []string{fmt.Sprintf("culture_%d", i)}
		snap.AddUser(u)
		scored = append(scored, ScoredPerson{ID: id, Score: 0.9 - float64(i)*0.01})
	}
	out := RerankPeople("viewer", scored, impressions.New(), 20, snap, testNow)
	if len(out) != MaxSamePrimaryLanguage {
		t.Fatalf("admitted %d, want language cap %d", len(out), MaxSamePrimaryLanguage)
	}
}

func TestRerankPeopleNewUserBoost(t *testing.T) {
	snap := directory.NewSnapshot()
	snap.AddUser(baseUser("viewer", "Toronto"))

	fresh := baseUser("fresh", "Toronto")
	fresh.CreatedAt = testNow.Add(-10 * 24 * time.Hour)
	fresh.CulturalBackgrounds = []string{"A"}
	snap.AddUser(fresh)

	settled := baseUser("settled", "Toronto")
	settled.CulturalBackgrounds = []string{"B"}
	snap.AddUser(settled)

	// Gap below the boost flips the order.
	out := RerankPeople("viewer", []ScoredPerson{
		{ID: "settled", Score: 0.52},
		{ID: "fresh", Score: 0.50},
	}, impressions.New(), 10, snap, testNow)
	if out[0].ID != "fresh" {
		t.Fatalf("boost should promote the new user, got %v", out)
	}

	// Gap above the boost does not.
	out = RerankPeople("viewer", []ScoredPerson{
		{ID: "settled", Score: 0.55},
		{ID: "fresh", Score: 0.50},
	}, impressions.New(), 10, snap, testNow)
	if out[0].ID != "settled" {
		t.Fatalf("boost should not outweigh a 0.05 gap, got %v", out)
	}
}

func TestRerankPeopleImpressionPenalties(t *testing.T) {
	snap := directory.NewSnapshot()
	snap.AddUser(baseUser("viewer", "Toronto"))
	a := baseUser("a", "Toronto")
	a.CulturalBackgrounds = []string{"A"}
	snap.AddUser(a)
	b := baseUser("b", "Toronto")
	b.CulturalBackgrounds = []string{"B"}
	snap.AddUser(b)

	// a was just shown: in the last-50 list, the 0.05 penalty applies and
	// drops it below b.
	store := impressions.New()
	if err := store.RecordImpression("viewer", "a"); err != nil {
		t.Fatal(err)
	}
	out := RerankPeople("viewer", []ScoredPerson{
		{ID: "a", Score: 0.60},
		{ID: "b", Score: 0.57},
	}, store, 10, snap, testNow)
	if out[0].ID != "b" {
		t.Fatalf("recent-window penalty should demote a, got %v", out)
	}

	// Seen within 7 days but no longer in the recency list: only the
	// lighter 0.02 penalty applies, not enough against a 0.03 gap.
	store2 := impressions.New()
	store2.Restore("viewer", "a", 1, time.Now().Add(-48*time.Hour))
	out = RerankPeople("viewer", []ScoredPerson{
		{ID: "a", Score: 0.60},
		{ID: "b", Score: 0.57},
	}, store2, 10, snap, testNow)
	if out[0].ID != "a" {
		t.Fatalf("days penalty alone should not demote a, got %v", out)
	}
}

func TestRerankPostsAuthorCap(t *testing.T) {
	scored := make([]ScoredPost, 0, 6)
	for i := 0; i < 5; i++ {
		scored = append(scored, ScoredPost{ID: fmt.Sprintf("p_%d", i), Score: 0.9 - float64(i)*0.01, AuthorID: "prolific"})
	}
	scored = append(scored, ScoredPost{ID: "p_other", Score: 0.1, AuthorID: "other"})

	out := RerankPosts("viewer", scored, impressions.New(), 10)
	byProlific := 0
	for _, sc := range out {
		if sc.AuthorID == "prolific" {
			byProlific++
		}
	}
	if byProlific != MaxPostsSameAuthor {
		t.Fatalf("admitted %d posts from one author, want %d", byProlific, MaxPostsSameAuthor)
	}
	if out[len(out)-1].ID != "p_other" {
		t.Fatalf("diverse post should still be admitted, got %v", out)
	}
}

func TestRerankPostsLimit(t *testing.T) {
	scored := make([]ScoredPost, 0, 10)
	for i := 0; i < 10; i++ {
		scored = append(scored, ScoredPost{ID: fmt.Sprintf("p_%d", i), Score: 0.5, AuthorID: fmt.Sprintf("a_%d", i)})
	}
	out := RerankPosts("viewer", scored, impressions.New(), 4)
	if len(out) != 4 {
		t.Fatalf("limit not enforced: %d results", len(out))
	}
}
