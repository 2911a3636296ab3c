package engine

import "time"

// HourBuckets is the number of hour-of-day buckets tracked per user.
const HourBuckets = 24

// MaxWatchHistory bounds how many WatchEvents scoring reads per user (K in §3 Lifecycles).
const MaxWatchHistory = 200

// WatchEvent records a single watch of a video by a user.
type WatchEvent struct {
	VideoID         string
	Timestamp       time.Time
	WatchSeconds    float64
	CompletionRatio float64
}

// InteractionPatterns are the per-user rolling aggregates consumed by the engagement scorer.
type InteractionPatterns struct {
	AvgWatchRatio float64
	LikeRate      float64
	CommentRate   float64
	ShareRate     float64
	RewatchRate   float64
	HourHistogram [HourBuckets]int
}

// User is the stable record for a single viewer.
type User struct {
	ID                  string
	Subscriptions       map[string]struct{}
	WatchHistory        []WatchEvent
	ContentPreferences  map[string]float64 // category -> affinity
	TagAffinities       map[string]float64 // free-form tag -> affinity
	InteractionPatterns InteractionPatterns
	CreatedAt           time.Time

	// lastDecay is the last time exponential decay was applied to
	// ContentPreferences/TagAffinities (§4.3: decay is lazy).
	lastDecay time.Time

	// likedVideos/dislikedVideos track current like state per video so that a
	// dislike-after-like is treated as "current state" (§9 Open Questions).
	likedVideos    map[string]bool
	dislikedVideos map[string]bool

	// embeddingCentroid is the running mean embedding of the user's last 50
	// positively-rated videos (§4.4.2 step 3).
	embeddingCentroid []float64
	centroidHistory   [][]float64 // bounded ring buffer, most recent last
}

// RetentionPoint is one sample of the audience-retention curve.
type RetentionPoint struct {
	PositionRatio         float64
	ViewersRemainingRatio float64
}

// VideoMetrics are the aggregate engagement numbers for a video.
type VideoMetrics struct {
	Views            int64
	Likes            int64
	Dislikes         int64
	Shares           int64
	Comments         int64
	AvgWatchTime     float64
	AvgWatchRatio    float64
	CompletionRate   float64
	RewatchRate      float64
	RetentionCurve   []RetentionPoint
	ViewsLast24h     int64
	lifetimeDailyAvg float64 // rolling lifetime-average daily views, for trending (§4.4.4)
}

// Video is the stable record for a single piece of content.
type Video struct {
	ID          string
	Title       string
	ChannelID   string
	Duration    float64 // seconds
	Categories  map[string]struct{}
	Tags        map[string]struct{}
	UploadedAt  time.Time
	Metrics     VideoMetrics
	Embedding   []float64 // optional, fixed dimension d; nil if absent
	rewatchers  map[string]int // userID -> watch count, for rewatch_rate bookkeeping
}

// Channel is a minimal owning-entity record; channels are created lazily
// the first time a video or subscription references them.
type Channel struct {
	ID string
}
