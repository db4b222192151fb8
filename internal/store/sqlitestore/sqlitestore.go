// Package sqlitestore is the durable persistence collaborator: it holds
// the directory/post snapshot tables and the impression journal backing
// the in-memory stores across restarts.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"travelmate/internal/directory"
	"travelmate/internal/model"
)

// DB wraps the SQLite database.
type DB struct{ sql *sql.DB }

// Open opens (creating if needed) the database at path and migrates the
// schema. Use ":memory:" for tests.
func Open(path string) (*DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL; PRAGMA foreign_keys=ON;`); err != nil {
		return nil, err
	}
	db := &DB{sql: d}
	if err := db.migrate(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error { return d.sql.Close() }

func (d *DB) migrate() error {
	_, err := d.sql.Exec(`
	CREATE TABLE IF NOT EXISTS users (
	  id TEXT PRIMARY KEY,
	  display_name TEXT NOT NULL,
	  age INTEGER NOT NULL,
	  verified_student INTEGER NOT NULL DEFAULT 0,
	  age_verified INTEGER NOT NULL DEFAULT 0,
	  current_city TEXT NOT NULL,
	  destination_city TEXT NOT NULL DEFAULT '',
	  cultural_backgrounds TEXT NOT NULL DEFAULT '[]',
	  languages TEXT NOT NULL DEFAULT '[]',
	  goals TEXT NOT NULL DEFAULT '[]',
	  bio TEXT NOT NULL DEFAULT '',
	  created_at INTEGER NOT NULL,
	  last_active_at INTEGER NOT NULL,
	  prefer_near_age INTEGER NOT NULL DEFAULT 0,
	  verified_only INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS posts (
	  id TEXT PRIMARY KEY,
	  author_id TEXT NOT NULL,
	  body TEXT NOT NULL,
	  created_at INTEGER NOT NULL,
	  start_date TEXT NOT NULL DEFAULT '',
	  end_date TEXT NOT NULL DEFAULT '',
	  coarse_location TEXT NOT NULL,
	  tags TEXT NOT NULL DEFAULT '[]'
	);
	CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_id);
	CREATE TABLE IF NOT EXISTS friendships (
	  user_id TEXT NOT NULL,
	  friend_id TEXT NOT NULL,
	  PRIMARY KEY (user_id, friend_id)
	);
	CREATE TABLE IF NOT EXISTS blocks (
	  user_id TEXT NOT NULL,
	  blocked_id TEXT NOT NULL,
	  PRIMARY KEY (user_id, blocked_id)
	);
	CREATE TABLE IF NOT EXISTS likes (
	  post_id TEXT NOT NULL,
	  user_id TEXT NOT NULL,
	  PRIMARY KEY (post_id, user_id)
	);
	CREATE TABLE IF NOT EXISTS impressions (
	  kind TEXT NOT NULL,
	  viewer_id TEXT NOT NULL,
	  candidate_id TEXT NOT NULL,
	  count INTEGER NOT NULL DEFAULT 0,
	  last_shown INTEGER NOT NULL,
	  PRIMARY KEY (kind, viewer_id, candidate_id)
	);
	CREATE TABLE IF NOT EXISTS impression_log (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  kind TEXT NOT NULL,
	  viewer_id TEXT NOT NULL,
	  candidate_id TEXT NOT NULL,
	  shown_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_implog_viewer ON impression_log(kind, viewer_id, id);
	CREATE INDEX IF NOT EXISTS idx_implog_shown ON impression_log(shown_at);
	`)
	return err
}

// SaveSnapshot replaces all directory/post state with the snapshot in one
// transaction.
func (d *DB) SaveSnapshot(ctx context.Context, snap *directory.Snapshot) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"users", "posts", "friendships", "blocks", "likes"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, u := range snap.Users() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users
			(id, display_name, age, verified_student, age_verified, current_city, destination_city,
			 cultural_backgrounds, languages, goals, bio, created_at, last_active_at, prefer_near_age, verified_only)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			u.ID, u.DisplayName, u.Age, boolInt(u.VerifiedStudent), boolInt(u.AgeVerified),
			u.CurrentCity, u.DestinationCity, encodeList(u.CulturalBackgrounds), encodeList(u.Languages),
			encodeList(u.Goals), u.Bio, u.CreatedAt.Unix(), u.LastActiveAt.Unix(),
			boolInt(u.PreferNearAge), boolInt(u.VerifiedOnly)); err != nil {
			return fmt.Errorf("insert user %s: %w", u.ID, err)
		}
	}
	for _, p := range snap.Posts() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO posts
			(id, author_id, body, created_at, start_date, end_date, coarse_location, tags)
			VALUES (?,?,?,?,?,?,?,?)`,
			p.ID, p.AuthorID, p.Text, p.CreatedAt.Unix(), p.StartDate, p.EndDate,
			p.CoarseLocation, encodeList(p.Tags)); err != nil {
			return fmt.Errorf("insert post %s: %w", p.ID, err)
		}
	}
	for userID, set := range snap.FriendsGraph() {
		for friendID := range set {
			if _, err := tx.ExecContext(ctx, `INSERT INTO friendships(user_id, friend_id) VALUES(?,?)`, userID, friendID); err != nil {
				return fmt.Errorf("insert friendship: %w", err)
			}
		}
	}
	for userID, set := range snap.BlocksGraph() {
		for blockedID := range set {
			if _, err := tx.ExecContext(ctx, `INSERT INTO blocks(user_id, blocked_id) VALUES(?,?)`, userID, blockedID); err != nil {
				return fmt.Errorf("insert block: %w", err)
			}
		}
	}
	for postID, set := range snap.LikesGraph() {
		for userID := range set {
			if _, err := tx.ExecContext(ctx, `INSERT INTO likes(post_id, user_id) VALUES(?,?)`, postID, userID); err != nil {
				return fmt.Errorf("insert like: %w", err)
			}
		}
	}
	return tx.Commit()
}

// LoadSnapshot reads the full directory/post state into a fresh snapshot.
func (d *DB) LoadSnapshot(ctx context.Context) (*directory.Snapshot, error) {
	snap := directory.NewSnapshot()

	rows, err := d.sql.QueryContext(ctx, `SELECT id, display_name, age, verified_student, age_verified,
		current_city, destination_city, cultural_backgrounds, languages, goals, bio,
		created_at, last_active_at, prefer_near_age, verified_only FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var u model.UserProfile
		var verified, ageVerified, nearAge, verifiedOnly int
		var cultures, languages, goals string
		var createdAt, lastActive int64
		if err := rows.Scan(&u.ID, &u.DisplayName, &u.Age, &verified, &ageVerified,
			&u.CurrentCity, &u.DestinationCity, &cultures, &languages, &goals, &u.Bio,
			&createdAt, &lastActive, &nearAge, &verifiedOnly); err != nil {
			return nil, err
		}
		u.VerifiedStudent = verified != 0
		u.AgeVerified = ageVerified != 0
		u.PreferNearAge = nearAge != 0
		u.VerifiedOnly = verifiedOnly != 0
		u.CulturalBackgrounds = decodeList(cultures)
		u.Languages = decodeList(languages)
		u.Goals = decodeList(goals)
		u.CreatedAt = time.Unix(createdAt, 0).UTC()
		u.LastActiveAt = time.Unix(lastActive, 0).UTC()
		snap.AddUser(u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := d.sql.QueryContext(ctx, `SELECT id, author_id, body, created_at, start_date, end_date, coarse_location, tags FROM posts`)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var p model.Post
		var tags string
		var createdAt int64
		if err := prows.Scan(&p.ID, &p.AuthorID, &p.Text, &createdAt, &p.StartDate, &p.EndDate, &p.CoarseLocation, &tags); err != nil {
			return nil, err
		}
		p.Tags = decodeList(tags)
		p.CreatedAt = time.Unix(createdAt, 0).UTC()
		snap.AddPost(p)
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}

	if err := d.loadEdges(ctx, `SELECT user_id, friend_id FROM friendships`, snap.AddFriendship); err != nil {
		return nil, err
	}
	if err := d.loadEdges(ctx, `SELECT user_id, blocked_id FROM blocks`, snap.AddBlock); err != nil {
		return nil, err
	}
	if err := d.loadEdges(ctx, `SELECT post_id, user_id FROM likes`, snap.AddLike); err != nil {
		return nil, err
	}
	return snap, nil
}

func (d *DB) loadEdges(ctx context.Context, query string, add func(a, b string)) error {
	rows, err := d.sql.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var a, b string
		if err := rows.Scan(&a, &b); err != nil {
			return err
		}
		add(a, b)
	}
	return rows.Err()
}

// AppendImpression records one exposure durably: append-only log plus a
// per-pair aggregate upsert.
func (d *DB) AppendImpression(ctx context.Context, kind, viewerID, candidateID string, shownAt time.Time) error {
	if _, err := d.sql.ExecContext(ctx,
		`INSERT INTO impression_log(kind, viewer_id, candidate_id, shown_at) VALUES(?,?,?,?)`,
		kind, viewerID, candidateID, shownAt.Unix()); err != nil {
		return fmt.Errorf("append impression log: %w", err)
	}
	if _, err := d.sql.ExecContext(ctx,
		`INSERT INTO impressions(kind, viewer_id, candidate_id, count, last_shown) VALUES(?,?,?,1,?)
		 ON CONFLICT(kind, viewer_id, candidate_id)
		 DO UPDATE SET count = count + 1, last_shown = excluded.last_shown`,
		kind, viewerID, candidateID, shownAt.Unix()); err != nil {
		return fmt.Errorf("upsert impression: %w", err)
	}
	return nil
}

// ClearImpressions drops all impression state for a kind. Ops/test only.
func (d *DB) ClearImpressions(ctx context.Context, kind string) error {
	if _, err := d.sql.ExecContext(ctx, `DELETE FROM impressions WHERE kind=?`, kind); err != nil {
		return err
	}
	_, err := d.sql.ExecContext(ctx, `DELETE FROM impression_log WHERE kind=?`, kind)
	return err
}

// LoadImpressionEvents returns logged impressions with shown_at in
// [start, end), oldest first. kind may be empty for all kinds.
func (d *DB) LoadImpressionEvents(ctx context.Context, kind string, start, end time.Time) ([]model.ImpressionEvent, error) {
	var rows *sql.Rows
	var err error
	if kind == "" {
		rows, err = d.sql.QueryContext(ctx,
			`SELECT kind, viewer_id, candidate_id, shown_at FROM impression_log WHERE shown_at>=? AND shown_at<? ORDER BY id`,
			start.Unix(), end.Unix())
	} else {
		rows, err = d.sql.QueryContext(ctx,
			`SELECT kind, viewer_id, candidate_id, shown_at FROM impression_log WHERE kind=? AND shown_at>=? AND shown_at<? ORDER BY id`,
			kind, start.Unix(), end.Unix())
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ImpressionEvent
	for rows.Next() {
		var e model.ImpressionEvent
		var shownAt int64
		if err := rows.Scan(&e.Kind, &e.ViewerID, &e.CandidateID, &shownAt); err != nil {
			return nil, err
		}
		e.ShownAt = time.Unix(shownAt, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// impressionWarmer is the interface of impressions.Store this package
// needs for warm-starting; kept local to avoid a dependency cycle risk.
type impressionWarmer interface {
	Restore(viewerID, candidateID string, count int, lastShown time.Time)
	RestoreRecent(viewerID string, candidateIDs []string)
}

// WarmStore seeds an impression store with the aggregates and the last
// maxRecent log entries per viewer for one kind.
func (d *DB) WarmStore(ctx context.Context, kind string, store impressionWarmer, maxRecent int) error {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT viewer_id, candidate_id, count, last_shown FROM impressions WHERE kind=?`, kind)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var viewerID, candidateID string
		var count int
		var lastShown int64
		if err := rows.Scan(&viewerID, &candidateID, &count, &lastShown); err != nil {
			return err
		}
		store.Restore(viewerID, candidateID, count, time.Unix(lastShown, 0).UTC())
	}
	if err := rows.Err(); err != nil {
		return err
	}

	lrows, err := d.sql.QueryContext(ctx,
		`SELECT viewer_id, candidate_id FROM impression_log WHERE kind=? ORDER BY viewer_id, id`, kind)
	if err != nil {
		return err
	}
	defer lrows.Close()
	recent := make(map[string][]string)
	for lrows.Next() {
		var viewerID, candidateID string
		if err := lrows.Scan(&viewerID, &candidateID); err != nil {
			return err
		}
		list := recent[viewerID]
		for i, id := range list {
			if id == candidateID {
				list = append(list[:i], list[i+1:]...)
				break
			}
		}
		list = append(list, candidateID)
		if len(list) > maxRecent {
			list = list[len(list)-maxRecent:]
		}
		recent[viewerID] = list
	}
	if err := lrows.Err(); err != nil {
		return err
	}
	for viewerID, list := range recent {
		store.RestoreRecent(viewerID, list)
	}
	return nil
}

// Journal adapts the database to the impressions.Journal interface for
// one recommendation kind.
type Journal struct {
	db   *DB
	kind string
}

// ImpressionJournal returns a journal writing impressions of the given
// kind ("people" or "posts").
func (d *DB) ImpressionJournal(kind string) *Journal { return &Journal{db: d, kind: kind} }

// Append implements impressions.Journal.
func (j *Journal) Append(viewerID, candidateID string, shownAt time.Time) error {
	return j.db.AppendImpression(context.Background(), j.kind, viewerID, candidateID, shownAt)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func encodeList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(items)
	return string(b)
}

func decodeList(s string) []string {
	if s == "" || s == "[]" {
		return nil
	}
	var out []string
	_ = json.Unmarshal([]byte(s), &out)
	return out
}
