package impressions

import (
	"sync"
	"time"
)

// DefaultMaxRecent bounds the per-viewer recency list.
const DefaultMaxRecent = 50

// Record tracks total exposures of one candidate to one viewer.
// The zero value means "never shown".
type Record struct {
	Count     int
	LastShown time.Time
}

// Journal receives every recorded impression for durable storage.
// Implementations must tolerate being called under the store lock.
type Journal interface {
	Append(viewerID, candidateID string, shownAt time.Time) error
}

// Store tracks per-(viewer,candidate) exposure history for anti-repeat
// penalties. One store per recommendation kind; construct and inject
// explicitly so tests and tenants get isolated instances.
//
// A single mutex serializes all writes. Contention is low: writes happen
// once per recommendation response.
type Store struct {
	mu        sync.Mutex
	records   map[string]map[string]Record // viewer -> candidate -> record
	recent    map[string][]string          // viewer -> candidate ids, oldest first
	maxRecent int
	journal   Journal
	now       func() time.Time
}

// New returns an empty store with the default recency window.
func New() *Store {
	return &Store{
		records:   make(map[string]map[string]Record),
		recent:    make(map[string][]string),
		maxRecent: DefaultMaxRecent,
		now:       time.Now,
	}
}

// NewWithJournal returns a store that forwards every impression to j.
// Journal errors are returned from RecordImpression but do not block the
// in-memory update.
func NewWithJournal(j Journal) *Store {
	s := New()
	s.journal = j
	return s
}

// RecordImpression notes that viewer saw candidate now. It increments the
// pair counter, stamps last_shown, and moves the candidate to the
// most-recent position of the viewer's bounded recency list.
func (s *Store) RecordImpression(viewerID, candidateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	byCand := s.records[viewerID]
	if byCand == nil {
		byCand = make(map[string]Record)
		s.records[viewerID] = byCand
	}
	rec := byCand[candidateID]
	rec.Count++
	rec.LastShown = now
	byCand[candidateID] = rec

	recent := s.recent[viewerID]
	for i, id := range recent {
		if id == candidateID {
			recent = append(recent[:i], recent[i+1:]...)
			break
		}
	}
	recent = append(recent, candidateID)
	if len(recent) > s.maxRecent {
		recent = recent[len(recent)-s.maxRecent:]
	}
	s.recent[viewerID] = recent

	if s.journal != nil {
		return s.journal.Append(viewerID, candidateID, now)
	}
	return nil
}

// Get returns the impression record for a pair. Unseen pairs read as a
// zero-valued record, never an error.
func (s *Store) Get(viewerID, candidateID string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[viewerID][candidateID]
}

// IsRecentlyShown reports whether candidate appears within the last
// withinLastN entries of the viewer's recency list.
func (s *Store) IsRecentlyShown(viewerID, candidateID string, withinLastN int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	recent := s.recent[viewerID]
	if len(recent) == 0 || withinLastN <= 0 {
		return false
	}
	start := len(recent) - withinLastN
	if start < 0 {
		start = 0
	}
	for _, id := range recent[start:] {
		if id == candidateID {
			return true
		}
	}
	return false
}

// WasShownWithinDays reports whether the pair's last impression is within
// the given number of days of now.
func (s *Store) WasShownWithinDays(viewerID, candidateID string, days int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.records[viewerID][candidateID]
	if rec.LastShown.IsZero() {
		return false
	}
	cutoff := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	return !rec.LastShown.Before(cutoff)
}

// Clear drops all impression state. Test and ops use only.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]map[string]Record)
	s.recent = make(map[string][]string)
}

// Restore seeds a pair's aggregate without touching the recency list or
// the journal. Used to warm a store from durable state at startup.
func (s *Store) Restore(viewerID, candidateID string, count int, lastShown time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byCand := s.records[viewerID]
	if byCand == nil {
		byCand = make(map[string]Record)
		s.records[viewerID] = byCand
	}
	byCand[candidateID] = Record{Count: count, LastShown: lastShown}
}

// RestoreRecent seeds a viewer's recency list, oldest first, truncating
// to the store's bound.
func (s *Store) RestoreRecent(viewerID string, candidateIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(candidateIDs) > s.maxRecent {
		candidateIDs = candidateIDs[len(candidateIDs)-s.maxRecent:]
	}
	s.recent[viewerID] = append([]string(nil), candidateIDs...)
}
