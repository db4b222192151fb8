package directory

import (
	"sync/atomic"

	"travelmate/internal/model"
)

// Snapshot is a consistent view of the user directory, friendship and
// block graphs, posts, and likes. A recommendation request reads one
// snapshot for its whole duration; snapshots are never mutated after
// being published, so cross-request swaps are safe.
type Snapshot struct {
	users     map[string]model.UserProfile
	posts     map[string]model.Post
	friends   map[string]map[string]struct{} // symmetric
	blocks    map[string]map[string]struct{} // directional
	blockedBy map[string]map[string]struct{} // inverse of blocks
	likes     map[string]map[string]struct{} // post id -> likers
}

// NewSnapshot returns an empty snapshot ready to be populated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		users:     make(map[string]model.UserProfile),
		posts:     make(map[string]model.Post),
		friends:   make(map[string]map[string]struct{}),
		blocks:    make(map[string]map[string]struct{}),
		blockedBy: make(map[string]map[string]struct{}),
		likes:     make(map[string]map[string]struct{}),
	}
}

// AddUser inserts or replaces a profile.
func (s *Snapshot) AddUser(u model.UserProfile) { s.users[u.ID] = u }

// AddPost inserts or replaces a post.
func (s *Snapshot) AddPost(p model.Post) { s.posts[p.ID] = p }

// AddFriendship records a symmetric friendship edge. Self-loops are
// ignored: the graph invariant is no user friends themselves.
func (s *Snapshot) AddFriendship(a, b string) {
	if a == b {
		return
	}
	addEdge(s.friends, a, b)
	addEdge(s.friends, b, a)
}

// AddBlock records a directional block from blocker to blocked and
// maintains the inverse lookup.
func (s *Snapshot) AddBlock(blocker, blocked string) {
	addEdge(s.blocks, blocker, blocked)
	addEdge(s.blockedBy, blocked, blocker)
}

// AddLike records that userID liked postID.
func (s *Snapshot) AddLike(postID, userID string) { addEdge(s.likes, postID, userID) }

func addEdge(m map[string]map[string]struct{}, from, to string) {
	set := m[from]
	if set == nil {
		set = make(map[string]struct{})
		m[from] = set
	}
	set[to] = struct{}{}
}

// User returns a profile by id.
func (s *Snapshot) User(id string) (model.UserProfile, bool) {
	u, ok := s.users[id]
	return u, ok
}

// Post returns a post by id.
func (s *Snapshot) Post(id string) (model.Post, bool) {
	p, ok := s.posts[id]
	return p, ok
}

// Users exposes the profile map for full scans. Callers must not mutate.
func (s *Snapshot) Users() map[string]model.UserProfile { return s.users }

// Posts exposes the post map for full scans. Callers must not mutate.
func (s *Snapshot) Posts() map[string]model.Post { return s.posts }

// Friends returns the friend set of a user (nil when none).
func (s *Snapshot) Friends(id string) map[string]struct{} { return s.friends[id] }

// FriendsGraph exposes the full adjacency map for mutual-friend scoring.
func (s *Snapshot) FriendsGraph() map[string]map[string]struct{} { return s.friends }

// Blocks returns the set of users id has blocked.
func (s *Snapshot) Blocks(id string) map[string]struct{} { return s.blocks[id] }

// BlockedBy returns the set of users who have blocked id.
func (s *Snapshot) BlockedBy(id string) map[string]struct{} { return s.blockedBy[id] }

// BlocksGraph exposes the full block adjacency map for persistence.
func (s *Snapshot) BlocksGraph() map[string]map[string]struct{} { return s.blocks }

// LikesGraph exposes the full likes map for persistence.
func (s *Snapshot) LikesGraph() map[string]map[string]struct{} { return s.likes }

// Likes returns the set of users who liked a post.
func (s *Snapshot) Likes(postID string) map[string]struct{} { return s.likes[postID] }

// Source yields the snapshot a recommendation request should read.
type Source interface {
	Snapshot() *Snapshot
}

// Static is a Source that always returns the same snapshot.
type Static struct{ Snap *Snapshot }

func (s Static) Snapshot() *Snapshot { return s.Snap }

// Provider is a Source whose snapshot can be swapped atomically, e.g. by
// a background refresh job reloading from durable storage.
type Provider struct {
	p atomic.Pointer[Snapshot]
}

// NewProvider returns a provider seeded with snap.
func NewProvider(snap *Snapshot) *Provider {
	pr := &Provider{}
	pr.p.Store(snap)
	return pr
}

// Snapshot returns the current snapshot.
func (pr *Provider) Snapshot() *Snapshot { return pr.p.Load() }

// Swap publishes a new snapshot for subsequent requests.
func (pr *Provider) Swap(snap *Snapshot) { pr.p.Store(snap) }
