package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemporalBoostsFreshUploadsFromSubscribedChannels(t *testing.T) {
	now := time.Now()
	u := newUser("u1")
	u.Subscriptions["sub"] = struct{}{}
	videos := []*Video{
		{ID: "fresh_sub", ChannelID: "sub", UploadedAt: now.Add(-12 * time.Hour)},
		{ID: "fresh_unsub", ChannelID: "other", UploadedAt: now.Add(-12 * time.Hour)},
		{ID: "stale", ChannelID: "other", UploadedAt: now.Add(-30 * 24 * time.Hour)},
	}
	snap := newSnapshot(u, videos, nil, now.Unix())
	cands := temporalScorer{}.score(snap, "u1", 10)

	byID := make(map[string]float64)
	for _, c := range cands {
		byID[c.VideoID] = c.Score
	}
	assert.InDelta(t, 5.0, byID["fresh_sub"], 1e-9)
	_, unsubScored := byID["fresh_unsub"]
	assert.False(t, unsubScored, "unsubscribed and not trending, under a week old but outside any boost window")
	_, staleScored := byID["stale"]
	assert.False(t, staleScored)
}

func TestTemporalTrendingBoost(t *testing.T) {
	now := time.Now()
	u := newUser("u1")
	videos := []*Video{
		{ID: "trending", ChannelID: "c1", UploadedAt: now.Add(-10 * 24 * time.Hour),
			Metrics: VideoMetrics{ViewsLast24h: 100, lifetimeDailyAvg: 10}},
	}
	snap := newSnapshot(u, videos, nil, now.Unix())
	cands := temporalScorer{}.score(snap, "u1", 10)
	require.Len(t, cands, 1)
	assert.InDelta(t, 1.5, cands[0].Score, 1e-9)
}

func TestTemporalHourHistogramMatch(t *testing.T) {
	now := time.Date(2026, 1, 1, 14, 0, 0, 0, time.UTC)
	u := newUser("u1")
	u.InteractionPatterns.HourHistogram[14] = 10
	videos := []*Video{{ID: "v1", ChannelID: "c1", UploadedAt: now.Add(-60 * 24 * time.Hour)}}
	snap := newSnapshot(u, videos, nil, now.Unix())
	cands := temporalScorer{}.score(snap, "u1", 10)
	require.Len(t, cands, 1)
	assert.InDelta(t, 1.0, cands[0].Score, 1e-9, "current hour is the user's peak hour, full histogram-match boost")
}
