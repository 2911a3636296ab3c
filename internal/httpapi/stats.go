package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"goflix/internal/analytics"
)

// statsResponse matches §6's /api/stats envelope, enriched per §11
// SUPPLEMENTED FEATURES with the dashboard's users/videos/
// recommendationHistory arrays from main.rs::get_stats. interactions is a
// count (today's watch events, the same value as interactionsToday), not
// an array.
type statsResponse struct {
	UserCount             int                 `json:"userCount"`
	VideoCount            int                 `json:"videoCount"`
	InteractionsToday     int64               `json:"interactionsToday"`
	RecommendationQuality float64             `json:"recommendationQuality"`
	Users                 []string            `json:"users"`
	Videos                []string            `json:"videos"`
	Interactions          int64               `json:"interactions"`
	RecommendationHistory []string            `json:"recommendationHistory"`
	Segments              map[string][]string `json:"segments"`
}

func (h *Handler) getStats(c *gin.Context) {
	users := h.engine.Entities().IterUsers()
	videos := h.engine.Entities().IterVideos()

	userIDs := make([]string, len(users))
	snapshots := make([]analytics.UserSnapshot, len(users))
	var interactionsToday int64
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for i, u := range users {
		userIDs[i] = u.ID
		watched := 0
		for _, we := range u.WatchHistory {
			if we.Timestamp.UTC().After(today) {
				interactionsToday++
			}
			watched++
		}
		snapshots[i] = analytics.UserSnapshot{
			ID: u.ID, WatchHistoryLen: watched, ContentPreferences: u.ContentPreferences,
		}
	}

	videoIDs := make([]string, len(videos))
	var totalViews, totalLikes int64
	for i, v := range videos {
		videoIDs[i] = v.ID
		totalViews += v.Metrics.Views
		totalLikes += v.Metrics.Likes
	}
	quality := 0.0
	if totalViews > 0 {
		quality = float64(totalLikes) / float64(totalViews)
	}

	c.JSON(http.StatusOK, statsResponse{
		UserCount:             len(users),
		VideoCount:            len(videos),
		InteractionsToday:     interactionsToday,
		RecommendationQuality: quality,
		Users:                 userIDs,
		Videos:                videoIDs,
		Interactions:          interactionsToday,
		RecommendationHistory: []string{},
		Segments:              analytics.Segment(snapshots),
	})
}

// chartDataResponse matches main.rs::get_chart_data's aggregates.
type chartDataResponse struct {
	Categories      map[string]float64 `json:"categories"`
	TrendingTopics  []string           `json:"trendingTopics"`
	WatchTimeBuckets map[string]int    `json:"watchTimeDistribution"`
}

func (h *Handler) getChartData(c *gin.Context) {
	videos := h.engine.Entities().IterVideos()
	vsnaps := make([]analytics.VideoSnapshot, len(videos))
	buckets := map[string]int{"0-25%": 0, "25-50%": 0, "50-75%": 0, "75-100%": 0}
	for i, v := range videos {
		vsnaps[i] = analytics.VideoSnapshot{Categories: categoryNames(v.Categories), AvgWatchRatio: v.Metrics.AvgWatchRatio}
		switch {
		case v.Metrics.AvgWatchRatio < 0.25:
			buckets["0-25%"]++
		case v.Metrics.AvgWatchRatio < 0.5:
			buckets["25-50%"]++
		case v.Metrics.AvgWatchRatio < 0.75:
			buckets["50-75%"]++
		default:
			buckets["75-100%"]++
		}
	}

	// Comment text is not retained on User records (§3 Data Model has no
	// comment log), so trending-topic extraction has nothing to scan yet.
	var comments []string

	c.JSON(http.StatusOK, chartDataResponse{
		Categories:       analytics.ContentInsights(vsnaps),
		TrendingTopics:   analytics.TrendingTopics(comments),
		WatchTimeBuckets: buckets,
	})
}

func categoryNames(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}
