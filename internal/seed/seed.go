// Package seed populates a fresh engine with synthetic users, channels,
// and videos so the dashboard collaborator has something to recommend
// against on first boot, grounded on the original prototype's
// main.rs::add_dummy_data (the core's Non-goals name seeding an external
// collaborator concern, §1).
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"goflix/internal/engine"
)

var categories = []string{"music", "news", "gaming", "cooking", "tech", "sports", "comedy", "education", "travel", "fitness"}

var tagPool = []string{"tutorial", "review", "live", "highlights", "vlog", "reaction", "shorts", "interview", "walkthrough", "deep-dive"}

// Config controls how much synthetic data Populate generates.
type Config struct {
	Users      int
	Videos     int
	Channels   int
	EmbeddingD int // 0 disables embeddings
}

// DefaultConfig mirrors config.FromEnv's SEED_USERS/SEED_VIDEOS defaults.
func DefaultConfig() Config {
	return Config{Users: 50, Videos: 200, Channels: 20, EmbeddingD: 8}
}

// Populate fills e with rng-generated users, channels, and videos, then
// runs a burst of synthetic interactions so the user-item matrix and
// preference model aren't empty on first request.
func Populate(e *engine.Engine, cfg Config, rng *rand.Rand) {
	channelIDs := make([]string, cfg.Channels)
	for i := range channelIDs {
		channelIDs[i] = fmt.Sprintf("channel-%d", i)
	}

	videoIDs := make([]string, 0, cfg.Videos)
	now := time.Now()
	for i := 0; i < cfg.Videos; i++ {
		id := fmt.Sprintf("video-%d", i)
		videoIDs = append(videoIDs, id)
		v := &engine.Video{
			ID:         id,
			Title:      fmt.Sprintf("Video %d", i),
			ChannelID:  channelIDs[rng.Intn(len(channelIDs))],
			Duration:   float64(60 + rng.Intn(1800)),
			Categories: pickSet(categories, 1+rng.Intn(2), rng),
			Tags:       pickSet(tagPool, rng.Intn(3), rng),
			UploadedAt: now.Add(-time.Duration(rng.Intn(90*24)) * time.Hour),
			Embedding:  randomEmbedding(cfg.EmbeddingD, rng),
		}
		views := int64(rng.Intn(50000))
		likes := int64(float64(views) * (0.02 + rng.Float64()*0.08))
		v.Metrics = engine.VideoMetrics{
			Views:         views,
			Likes:         likes,
			AvgWatchRatio: 0.3 + rng.Float64()*0.5,
			CompletionRate: 0.2 + rng.Float64()*0.5,
		}
		e.Entities().CreateOrUpdateVideo(v)
	}

	userIDs := make([]string, cfg.Users)
	for i := range userIDs {
		userIDs[i] = fmt.Sprintf("user-%d", i)
		e.Entities().GetOrCreateUser(userIDs[i])
	}

	for _, uid := range userIDs {
		subs := pickSet(channelIDs, rng.Intn(4), rng)
		for c := range subs {
			e.Ingest(engine.Event{UserID: uid, ChannelID: c, Kind: engine.EventSubscribe, OccurredAt: now})
		}
		watches := rng.Intn(15)
		for j := 0; j < watches; j++ {
			vid := videoIDs[rng.Intn(len(videoIDs))]
			watchSeconds := rng.Float64() * 1800
			e.Ingest(engine.Event{
				UserID: uid, VideoID: vid, Kind: engine.EventWatch,
				OccurredAt: now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour),
				WatchSeconds: watchSeconds,
			})
			if rng.Float64() < 0.3 {
				e.Ingest(engine.Event{
					UserID: uid, VideoID: vid, Kind: engine.EventLike,
					OccurredAt: now, IsLike: rng.Float64() < 0.85,
				})
			}
			if rng.Float64() < 0.1 {
				e.Ingest(engine.Event{
					UserID: uid, VideoID: vid, Kind: engine.EventComment,
					OccurredAt: now, CommentText: "great video, loved it",
				})
			}
		}
	}
}

func pickSet(pool []string, k int, rng *rand.Rand) map[string]struct{} {
	if k > len(pool) {
		k = len(pool)
	}
	idx := rng.Perm(len(pool))[:k]
	out := make(map[string]struct{}, k)
	for _, i := range idx {
		out[pool[i]] = struct{}{}
	}
	return out
}

func randomEmbedding(d int, rng *rand.Rand) []float64 {
	if d <= 0 {
		return nil
	}
	v := make([]float64, d)
	for i := range v {
		v[i] = rng.NormFloat64()
	}
	return v
}

// NewEventID returns an opaque id for a synthetic comment, grounded on
// auth/service.go's uuid.New().String() id generation (§10 DOMAIN STACK).
func NewEventID() string {
	return uuid.New().String()
}
