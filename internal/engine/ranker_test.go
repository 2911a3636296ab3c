package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormaliseDividesByMax(t *testing.T) {
	out := normalise([]Candidate{{VideoID: "a", Score: 4}, {VideoID: "b", Score: 2}})
	assert.InDelta(t, 1.0, out[0].Score, 1e-9)
	assert.InDelta(t, 0.5, out[1].Score, 1e-9)
}

func TestNormaliseHandlesEmptyAndAllZero(t *testing.T) {
	assert.Empty(t, normalise(nil))

	out := normalise([]Candidate{{VideoID: "a", Score: 0}, {VideoID: "b", Score: 0}})
	for _, c := range out {
		assert.Equal(t, 0.0, c.Score)
	}
}

func TestDiversifyCapsPerChannel(t *testing.T) {
	snap := &snapshot{videoByID: map[string]*Video{
		"a1": {ID: "a1", ChannelID: "dom"}, "a2": {ID: "a2", ChannelID: "dom"},
		"a3": {ID: "a3", ChannelID: "dom"}, "a4": {ID: "a4", ChannelID: "dom"},
		"b1": {ID: "b1", ChannelID: "other"},
	}}
	list := []mergedEntry{
		{videoID: "a1", score: 10}, {videoID: "a2", score: 9}, {videoID: "a3", score: 8},
		{videoID: "a4", score: 7}, {videoID: "b1", score: 1},
	}
	out := diversify(list, snap, 5)
	require := assert.New(t)
	require.Equal(5, len(out))
	// ceil(5/3) = 2, so only the first two "dom" entries keep their rank;
	// a3/a4 get demoted below b1 despite their higher raw score.
	positions := make(map[string]int, len(out))
	for i, m := range out {
		positions[m.videoID] = i
	}
	require.Less(positions["a1"], positions["b1"])
	require.Less(positions["a2"], positions["b1"])
	require.Less(positions["b1"], positions["a3"])
	require.Less(positions["a3"], positions["a4"], "relative order among demoted entries is preserved")
}

func TestRankExcludesSeenAndIsDeterministic(t *testing.T) {
	u := newUser("u1")
	u.WatchHistory = []WatchEvent{{VideoID: "seen1"}}
	videos := []*Video{
		{ID: "seen1", ChannelID: "c1"},
		{ID: "v1", ChannelID: "c1", Metrics: VideoMetrics{Views: 100, Likes: 10}},
		{ID: "v2", ChannelID: "c2", Metrics: VideoMetrics{Views: 200, Likes: 20}},
	}
	snap := newSnapshot(u, videos, map[string]map[string]float64{}, 0)
	r := newRanker(DefaultWeights())

	first := r.rank(snap, "u1", 5)
	second := r.rank(snap, "u1", 5)
	assert.Equal(t, first, second)
	for _, id := range first {
		assert.NotEqual(t, "seen1", id)
	}
}
