package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopularityFavorsViewsLikeRatioAndRecency(t *testing.T) {
	now := time.Now()
	u := newUser("u1")
	videos := []*Video{
		{ID: "new_popular", ChannelID: "c1", UploadedAt: now.Add(-2 * 24 * time.Hour),
			Metrics: VideoMetrics{Views: 10000, Likes: 2000}},
		{ID: "old_unpopular", ChannelID: "c1", UploadedAt: now.Add(-400 * 24 * time.Hour),
			Metrics: VideoMetrics{Views: 10, Likes: 0}},
	}
	snap := newSnapshot(u, videos, nil, now.Unix())
	cands := popularityScorer{}.score(snap, "u1", 10)
	require.Len(t, cands, 2)
	assert.Equal(t, "new_popular", cands[0].VideoID)
}

func TestPopularityTreatsZeroViewsAsOne(t *testing.T) {
	now := time.Now()
	u := newUser("u1")
	videos := []*Video{{ID: "v1", ChannelID: "c1", UploadedAt: now, Metrics: VideoMetrics{Views: 0, Likes: 0}}}
	snap := newSnapshot(u, videos, nil, now.Unix())
	cands := popularityScorer{}.score(snap, "u1", 10)
	require.Len(t, cands, 1)
	assert.GreaterOrEqual(t, cands[0].Score, 0.0)
}
