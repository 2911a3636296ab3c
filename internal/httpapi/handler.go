// Package httpapi is the gin-based HTTP collaborator from §6: it
// translates the /api/* surface into calls on *engine.Engine and
// *analytics.* functions, grounded on the teacher's
// api-coordinator/internal/recommend (Handler+Service+RegisterRoutes
// layering) and api-coordinator/internal/health (ack-shaped endpoints).
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"goflix/internal/engine"
	"goflix/internal/logging"
	"goflix/internal/monitor"
)

// Handler wires the engine and its collaborators into gin routes, the same
// shape as the teacher's recommend.Handler{svc Service}.
type Handler struct {
	engine  *engine.Engine
	cache   *RecommendationCache
	monitor monitor.Service
	log     *logging.Logger
}

// NewHandler constructs a Handler. cache may be nil to disable caching.
func NewHandler(e *engine.Engine, cache *RecommendationCache, mon monitor.Service) *Handler {
	return &Handler{engine: e, cache: cache, monitor: mon, log: logging.New("httpapi")}
}

// RegisterRoutes installs every §6 route plus the ambient /api/monitoring
// endpoint, mirroring the teacher's RegisterRoutes(g *gin.RouterGroup).
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/recommendations", h.postRecommendations)
	g.POST("/watch", h.postWatch)
	g.POST("/like", h.postLike)
	g.POST("/comment", h.postComment)
	g.POST("/share", h.postShare)
	g.POST("/subscribe", h.postSubscribe)
	g.GET("/stats", h.getStats)
	g.GET("/chart-data", h.getChartData)
	g.GET("/monitoring", h.getMonitoring)
}

type recommendationsRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Count  int    `json:"count"`
}

type recommendationVideo struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	ChannelID  string   `json:"channel_id"`
	Categories []string `json:"categories"`
	Metrics    struct {
		Views        int64 `json:"views"`
		Likes        int64 `json:"likes"`
		CommentCount int64 `json:"comment_count"`
	} `json:"metrics"`
}

const defaultRecommendationCount = 10

func (h *Handler) postRecommendations(c *gin.Context) {
	var req recommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Count <= 0 {
		req.Count = defaultRecommendationCount
	}

	generation := h.engine.Matrix().Generation()
	if cached, ok := h.cache.Get(c.Request.Context(), req.UserID, req.Count, generation); ok {
		c.JSON(http.StatusOK, toRecommendationVideos(cached))
		return
	}

	recs, err := h.engine.RecommendForUser(req.UserID, req.Count)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	h.cache.Set(c.Request.Context(), req.UserID, req.Count, generation, recs)
	c.JSON(http.StatusOK, toRecommendationVideos(recs))
}

func toRecommendationVideos(recs []engine.Recommendation) []recommendationVideo {
	out := make([]recommendationVideo, len(recs))
	for i, r := range recs {
		out[i] = recommendationVideo{
			ID: r.VideoID, Title: r.Title, ChannelID: r.ChannelID, Categories: r.Categories,
		}
		out[i].Metrics.Views = r.Views
		out[i].Metrics.Likes = r.Likes
		out[i].Metrics.CommentCount = r.Comments
	}
	return out
}

type watchRequest struct {
	UserID       string  `json:"user_id" binding:"required"`
	VideoID      string  `json:"video_id" binding:"required"`
	WatchSeconds float64 `json:"watch_seconds"`
}

func (h *Handler) postWatch(c *gin.Context) {
	var req watchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, err := h.engine.Ingest(engine.Event{
		UserID: req.UserID, VideoID: req.VideoID, Kind: engine.EventWatch,
		OccurredAt: time.Now(), WatchSeconds: req.WatchSeconds,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type likeRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	VideoID string `json:"video_id" binding:"required"`
	IsLike  bool   `json:"is_like"`
}

func (h *Handler) postLike(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, err := h.engine.Ingest(engine.Event{
		UserID: req.UserID, VideoID: req.VideoID, Kind: engine.EventLike,
		OccurredAt: time.Now(), IsLike: req.IsLike,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type commentRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	VideoID string `json:"video_id" binding:"required"`
	Text    string `json:"text"`
}

func (h *Handler) postComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.engine.Ingest(engine.Event{
		UserID: req.UserID, VideoID: req.VideoID, Kind: engine.EventComment,
		OccurredAt: time.Now(), CommentText: req.Text,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}
	resp := gin.H{"ok": true, "comment_id": "c-" + uuid.New().String()}
	if result != nil {
		resp["sentiment"] = result.Sentiment
	}
	c.JSON(http.StatusOK, resp)
}

type shareRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	VideoID string `json:"video_id" binding:"required"`
}

func (h *Handler) postShare(c *gin.Context) {
	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, err := h.engine.Ingest(engine.Event{
		UserID: req.UserID, VideoID: req.VideoID, Kind: engine.EventShare, OccurredAt: time.Now(),
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type subscribeRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	ChannelID string `json:"channel_id" binding:"required"`
	Unsubscribe bool `json:"unsubscribe"`
}

func (h *Handler) postSubscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kind := engine.EventSubscribe
	if req.Unsubscribe {
		kind = engine.EventUnsubscribe
	}
	_, err := h.engine.Ingest(engine.Event{
		UserID: req.UserID, ChannelID: req.ChannelID, Kind: kind, OccurredAt: time.Now(),
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) getMonitoring(c *gin.Context) {
	st, err := h.monitor.Collect()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// writeEngineError translates the §7 error taxonomy into HTTP status codes
// at the boundary, never inside the engine, matching the teacher's auth
// handler's errors.Is(err, auth.ErrUserNotFound) dispatch.
func writeEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrTransient):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrInternal):
		logging.New("httpapi").Error("rejected update: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
