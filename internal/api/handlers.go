package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"travelmate/internal/logging"
	"travelmate/internal/metrics"
	"travelmate/internal/recommend"
	"travelmate/internal/store/sqlitestore"
)

// Handler serves the recommendation HTTP API.
type Handler struct {
	rec         *recommend.Recommender
	db          *sqlitestore.DB // optional, used for impression resets
	cache       *Cache          // optional
	peopleLimit int
	postLimit   int
}

// NewHandler builds a Handler. db and cache may be nil.
func NewHandler(rec *recommend.Recommender, db *sqlitestore.DB, cache *Cache, peopleLimit, postLimit int) *Handler {
	if peopleLimit <= 0 {
		peopleLimit = recommend.DefaultPeopleLimit
	}
	if postLimit <= 0 {
		postLimit = recommend.DefaultPostLimit
	}
	return &Handler{rec: rec, db: db, cache: cache, peopleLimit: peopleLimit, postLimit: postLimit}
}

// Register mounts the API routes on app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.Health)
	v1 := app.Group("/api/v1")
	v1.Get("/recommendations/people", h.People)
	v1.Get("/recommendations/posts", h.Posts)
	v1.Post("/impressions/reset", h.ResetImpressions)
}

// Health reports service liveness.
func (h *Handler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

type recParams struct {
	userID string
	limit  int
	debug  bool
	record bool
}

func (h *Handler) params(c fiber.Ctx, defaultLimit int) (recParams, error) {
	p := recParams{
		userID: fiber.Query(c, "user_id", ""),
		limit:  fiber.Query(c, "limit", defaultLimit),
		debug:  fiber.Query(c, "debug", false),
		record: fiber.Query(c, "record", true),
	}
	if p.userID == "" {
		return p, fiber.NewError(fiber.StatusBadRequest, "user_id is required")
	}
	if p.limit < 1 {
		p.limit = 1
	}
	if p.limit > 100 {
		p.limit = 100
	}
	return p, nil
}

// cacheable reports whether a request may be served from cache. Requests
// that record impressions or carry debug scores always hit the engine.
func (p recParams) cacheable() bool { return !p.record && !p.debug }

func (p recParams) cacheKey(kind string) string {
	return fmt.Sprintf("recs:%s:%s:%d", kind, p.userID, p.limit)
}

// People returns ranked person recommendations for a viewer.
func (h *Handler) People(c fiber.Ctx) error {
	p, err := h.params(c, h.peopleLimit)
	if err != nil {
		return err
	}
	if h.cache != nil && p.cacheable() {
		if data, ok := h.cache.Get(c.Context(), p.cacheKey("people")); ok {
			metrics.CacheHits.WithLabelValues("people").Inc()
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(data)
		}
	}
	start := time.Now()
	results := h.rec.RecommendPeople(p.userID, p.limit, p.debug, p.record)
	metrics.ObserveRecommend("people", start, len(results))
	return h.respond(c, "people", p, results)
}

// Posts returns ranked post recommendations for a viewer.
func (h *Handler) Posts(c fiber.Ctx) error {
	p, err := h.params(c, h.postLimit)
	if err != nil {
		return err
	}
	if h.cache != nil && p.cacheable() {
		if data, ok := h.cache.Get(c.Context(), p.cacheKey("posts")); ok {
			metrics.CacheHits.WithLabelValues("posts").Inc()
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(data)
		}
	}
	start := time.Now()
	results := h.rec.RecommendPosts(p.userID, p.limit, p.debug, p.record)
	metrics.ObserveRecommend("posts", start, len(results))
	return h.respond(c, "posts", p, results)
}

func (h *Handler) respond(c fiber.Ctx, kind string, p recParams, results any) error {
	payload, err := json.Marshal(fiber.Map{"results": results})
	if err != nil {
		logging.Error("encode_response_failed", map[string]any{"kind": kind, "error": err.Error()})
		return fiber.NewError(fiber.StatusInternalServerError, "encode response")
	}
	if h.cache != nil && p.cacheable() {
		h.cache.Set(c.Context(), p.cacheKey(kind), payload)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// ResetImpressions clears anti-repeat state for both kinds, in memory
// and, when a database is attached, on disk.
func (h *Handler) ResetImpressions(c fiber.Ctx) error {
	h.rec.PeopleStore().Clear()
	h.rec.PostStore().Clear()
	if h.db != nil {
		ctx := c.Context()
		for _, kind := range []string{"people", "posts"} {
			if err := h.db.ClearImpressions(ctx, kind); err != nil {
				logging.Error("clear_impressions_failed", map[string]any{"kind": kind, "error": err.Error()})
				return fiber.NewError(fiber.StatusInternalServerError, "clear impressions")
			}
		}
	}
	logging.Info("impressions_reset", nil)
	return c.JSON(fiber.Map{"status": "reset"})
}
