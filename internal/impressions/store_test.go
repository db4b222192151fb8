package impressions

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestUnseenPairReadsZero(t *testing.T) {
	s := New()
	rec := s.Get("v", "c")
	if rec.Count != 0 || !rec.LastShown.IsZero() {
		t.Fatalf("expected zero record, got %+v", rec)
	}
	if s.IsRecentlyShown("v", "c", 50) {
		t.Fatal("unseen pair reported recent")
	}
	if s.WasShownWithinDays("v", "c", 7) {
		t.Fatal("unseen pair reported within days")
	}
}

func TestRecordImpressionCounts(t *testing.T) {
	s := New()
	if err := s.RecordImpression("v", "c"); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordImpression("v", "c"); err != nil {
		t.Fatal(err)
	}
	rec := s.Get("v", "c")
	if rec.Count != 2 {
		t.Fatalf("count = %d, want 2", rec.Count)
	}
	if rec.LastShown.IsZero() {
		t.Fatal("last shown not stamped")
	}
	if !s.WasShownWithinDays("v", "c", 7) {
		t.Fatal("fresh impression not within 7 days")
	}
}

func TestRecencyListAgesOutAtFifty(t *testing.T) {
	s := New()
	for i := 0; i < 51; i++ {
		if err := s.RecordImpression("v", fmt.Sprintf("c%02d", i)); err != nil {
			t.Fatal(err)
		}
	}
	// c00 was pushed out by the 51st impression.
	if s.IsRecentlyShown("v", "c00", 50) {
		t.Fatal("oldest entry should have aged out")
	}
	if !s.IsRecentlyShown("v", "c01", 50) {
		t.Fatal("second-oldest entry should survive")
	}
	if !s.IsRecentlyShown("v", "c50", 50) {
		t.Fatal("newest entry missing")
	}
	// The pair counter survives eviction from the recency list.
	if s.Get("v", "c00").Count != 1 {
		t.Fatal("aggregate lost on recency eviction")
	}
}

func TestReExposureMovesToFront(t *testing.T) {
	s := New()
	for _, id := range []string{"a", "b", "c"} {
		if err := s.RecordImpression("v", id); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.RecordImpression("v", "a"); err != nil {
		t.Fatal(err)
	}
	// a is now the newest entry; b is the oldest of three.
	if !s.IsRecentlyShown("v", "a", 1) {
		t.Fatal("re-exposed candidate should be most recent")
	}
	if s.IsRecentlyShown("v", "b", 1) {
		t.Fatal("b should not be most recent")
	}
	if s.Get("v", "a").Count != 2 {
		t.Fatalf("count = %d, want 2", s.Get("v", "a").Count)
	}
}

func TestViewersIsolated(t *testing.T) {
	s := New()
	if err := s.RecordImpression("v1", "c"); err != nil {
		t.Fatal(err)
	}
	if s.IsRecentlyShown("v2", "c", 50) {
		t.Fatal("impression leaked across viewers")
	}
	if s.Get("v2", "c").Count != 0 {
		t.Fatal("aggregate leaked across viewers")
	}
}

func TestWasShownWithinDays(t *testing.T) {
	s := New()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	if err := s.RecordImpression("v", "c"); err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return base.AddDate(0, 0, 3) }
	if !s.WasShownWithinDays("v", "c", 7) {
		t.Fatal("3-day-old impression should be within 7 days")
	}
	s.now = func() time.Time { return base.AddDate(0, 0, 8) }
	if s.WasShownWithinDays("v", "c", 7) {
		t.Fatal("8-day-old impression should be outside 7 days")
	}
}

func TestClear(t *testing.T) {
	s := New()
	if err := s.RecordImpression("v", "c"); err != nil {
		t.Fatal(err)
	}
	s.Clear()
	if s.Get("v", "c").Count != 0 || s.IsRecentlyShown("v", "c", 50) {
		t.Fatal("state survived clear")
	}
}

func TestRestoreWarmsAggregatesAndRecent(t *testing.T) {
	s := New()
	last := time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC)
	s.Restore("v", "c", 4, last)
	rec := s.Get("v", "c")
	if rec.Count != 4 || !rec.LastShown.Equal(last) {
		t.Fatalf("restored record = %+v", rec)
	}
	s.RestoreRecent("v", []string{"a", "b", "c"})
	if !s.IsRecentlyShown("v", "c", 1) || !s.IsRecentlyShown("v", "a", 3) {
		t.Fatal("recency order not restored oldest-first")
	}
}

type journalSpy struct {
	appended [][2]string
	err      error
}

func (j *journalSpy) Append(viewerID, candidateID string, shownAt time.Time) error {
	j.appended = append(j.appended, [2]string{viewerID, candidateID})
	return j.err
}

func TestJournalReceivesImpressions(t *testing.T) {
	spy := &journalSpy{}
	s := NewWithJournal(spy)
	if err := s.RecordImpression("v", "c"); err != nil {
		t.Fatal(err)
	}
	if len(spy.appended) != 1 || spy.appended[0] != [2]string{"v", "c"} {
		t.Fatalf("journal entries = %v", spy.appended)
	}
}

func TestJournalErrorDoesNotBlockMemory(t *testing.T) {
	spy := &journalSpy{err: errors.New("disk full")}
	s := NewWithJournal(spy)
	if err := s.RecordImpression("v", "c"); err == nil {
		t.Fatal("expected journal error surfaced")
	}
	if s.Get("v", "c").Count != 1 {
		t.Fatal("in-memory update should land despite journal error")
	}
}
