package model

import "time"

// UserProfile is the directory view of a user used for recommendations.
// Ordered list attributes matter: the first entry of CulturalBackgrounds
// and Languages is the primary attribute used for diversity capping.
type UserProfile struct {
	ID                  string
	DisplayName         string
	Age                 int
	VerifiedStudent     bool
	AgeVerified         bool
	CurrentCity         string
	DestinationCity     string // empty when the user has no planned destination
	CulturalBackgrounds []string
	Languages           []string
	Goals               []string
	Bio                 string
	CreatedAt           time.Time
	LastActiveAt        time.Time

	// viewer preferences applied as hard filters
	PreferNearAge bool
	VerifiedOnly  bool
}

// Post is the post-store view of a post. CoarseLocation is city/area-level
// text only; exact coordinates never enter this system.
type Post struct {
	ID             string
	AuthorID       string
	Text           string
	CreatedAt      time.Time
	StartDate      string // YYYY-MM-DD, empty when unset
	EndDate        string
	CoarseLocation string
	Tags           []string
}

// ImpressionEvent is a single recorded exposure, as loaded from the journal.
type ImpressionEvent struct {
	ShownAt     time.Time
	Kind        string // "people" or "posts"
	ViewerID    string
	CandidateID string
}
