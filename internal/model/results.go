package model

// DateRange is the optional travel window attached to a post result.
type DateRange struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// PersonRecommendation is the API shape of one ranked person.
// LocationHidden is always true: results carry no location at all.
type PersonRecommendation struct {
	ID                 string   `json:"id"`
	DisplayName        string   `json:"display_name"`
	Bio                string   `json:"bio"`
	VerifiedStudent    bool     `json:"verified_student"`
	AgeVerified        bool     `json:"age_verified"`
	Tags               []string `json:"tags"`
	MutualFriendsCount int      `json:"mutual_friends_count"`
	LocationHidden     bool     `json:"location_hidden"`
	DebugScore         *float64 `json:"debug_score,omitempty"`
}

// PostRecommendation is the API shape of one ranked post.
type PostRecommendation struct {
	ID                    string     `json:"id"`
	AuthorID              string     `json:"author_id"`
	AuthorName            string     `json:"author_name"`
	AuthorVerifiedStudent bool       `json:"author_verified_student"`
	Text                  string     `json:"text"`
	CoarseLocation        string     `json:"coarse_location"`
	DateRange             *DateRange `json:"date_range,omitempty"`
	LikedByFriendsCount   int        `json:"liked_by_friends_count"`
	DebugScore            *float64   `json:"debug_score,omitempty"`
}
