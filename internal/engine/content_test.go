package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentScorerWeighsTopCategoriesTagsAndSubscriptions(t *testing.T) {
	u := newUser("u1")
	u.ContentPreferences["music"] = 5.0
	u.TagAffinities["live"] = 2.0
	u.Subscriptions["sub_channel"] = struct{}{}

	videos := []*Video{
		{ID: "music_video", ChannelID: "other", Categories: map[string]struct{}{"music": {}}},
		{ID: "tag_video", ChannelID: "other", Tags: map[string]struct{}{"live": {}}},
		{ID: "sub_video", ChannelID: "sub_channel"},
		{ID: "cold_video", ChannelID: "other"},
	}
	snap := newSnapshot(u, videos, nil, 0)
	cands := contentScorer{}.score(snap, "u1", 10)

	byID := make(map[string]float64)
	for _, c := range cands {
		byID[c.VideoID] = c.Score
	}
	assert.InDelta(t, 5.0, byID["music_video"], 1e-9)
	assert.InDelta(t, 1.0, byID["tag_video"], 1e-9)
	assert.InDelta(t, 0.3, byID["sub_video"], 1e-9)
	_, coldScored := byID["cold_video"]
	assert.False(t, coldScored, "a video with no signal at all is dropped, not scored zero")
}

func TestContentScorerUsesEmbeddingCentroid(t *testing.T) {
	u := newUser("u1")
	u.embeddingCentroid = []float64{1, 0}
	videos := []*Video{
		{ID: "aligned", ChannelID: "c1", Embedding: []float64{1, 0}},
		{ID: "orthogonal", ChannelID: "c1", Embedding: []float64{0, 1}},
	}
	snap := newSnapshot(u, videos, nil, 0)
	cands := contentScorer{}.score(snap, "u1", 10)
	byID := make(map[string]float64)
	for _, c := range cands {
		byID[c.VideoID] = c.Score
	}
	assert.InDelta(t, 0.4, byID["aligned"], 1e-9)
	_, orthogonalScored := byID["orthogonal"]
	assert.False(t, orthogonalScored, "zero cosine similarity contributes nothing and the video has no other signal")
}
