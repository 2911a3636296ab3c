package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestWatchLazilyCreatesUserAndVideo(t *testing.T) {
	e := NewEngine()
	occurred := time.Now()

	_, err := e.Ingest(Event{UserID: "u1", VideoID: "v1", Kind: EventWatch, OccurredAt: occurred, WatchSeconds: 30})
	require.NoError(t, err)

	u, ok := e.Entities().GetUser("u1")
	require.True(t, ok)
	assert.Len(t, u.WatchHistory, 1)

	v, ok := e.Entities().GetVideo("v1")
	require.True(t, ok)
	assert.EqualValues(t, 1, v.Metrics.Views)

	_, ok = e.Matrix().GetRating("u1", "v1")
	assert.True(t, ok, "watching derives a rating even with no like/comment/share")
}

func TestIngestIsIdempotentPerDedupeKey(t *testing.T) {
	e := NewEngine()
	occurred := time.Now()
	ev := Event{UserID: "u1", VideoID: "v1", Kind: EventWatch, OccurredAt: occurred, WatchSeconds: 30}

	_, err := e.Ingest(ev)
	require.NoError(t, err)
	_, err = e.Ingest(ev)
	require.NoError(t, err)

	v, _ := e.Entities().GetVideo("v1")
	assert.EqualValues(t, 1, v.Metrics.Views, "re-applying an identical event is a no-op")

	u, _ := e.Entities().GetUser("u1")
	assert.Len(t, u.WatchHistory, 1)
}

func TestLikesPlusDislikesNeverExceedsViews(t *testing.T) {
	e := NewEngine()
	occurred := time.Now()

	_, err := e.Ingest(Event{UserID: "u1", VideoID: "v1", Kind: EventLike, OccurredAt: occurred, IsLike: true})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal), "liking a video with zero views would violate likes<=views")

	v, _ := e.Entities().GetVideo("v1")
	assert.EqualValues(t, 0, v.Metrics.Likes, "the rejected update must leave state unchanged")
}

func TestLikeAfterWatchUpdatesMatrixAndPreferences(t *testing.T) {
	e := NewEngine()
	e.Entities().CreateOrUpdateVideo(&Video{ID: "v1", ChannelID: "c1", Duration: 100, Categories: map[string]struct{}{"music": {}}})

	occurred := time.Now()
	_, err := e.Ingest(Event{UserID: "u1", VideoID: "v1", Kind: EventWatch, OccurredAt: occurred, WatchSeconds: 100})
	require.NoError(t, err)

	_, err = e.Ingest(Event{UserID: "u1", VideoID: "v1", Kind: EventLike, OccurredAt: occurred.Add(time.Second), IsLike: true})
	require.NoError(t, err)

	v, _ := e.Entities().GetVideo("v1")
	assert.EqualValues(t, 1, v.Metrics.Likes)

	rating, ok := e.Matrix().GetRating("u1", "v1")
	require.True(t, ok)
	assert.InDelta(t, 0.65, rating, 1e-9, "0.4*1.0 completion + 0.25 liked")

	u, _ := e.Entities().GetUser("u1")
	assert.Greater(t, u.ContentPreferences["music"], 0.0)
}

func TestDislikeAfterLikeIsCurrentState(t *testing.T) {
	// §9 Open Questions: dislike-after-like is treated as current state.
	e := NewEngine()
	e.Entities().CreateOrUpdateVideo(&Video{ID: "v1", ChannelID: "c1", Duration: 100})
	occurred := time.Now()

	_, err := e.Ingest(Event{UserID: "u1", VideoID: "v1", Kind: EventWatch, OccurredAt: occurred, WatchSeconds: 50})
	require.NoError(t, err)
	_, err = e.Ingest(Event{UserID: "u1", VideoID: "v1", Kind: EventLike, OccurredAt: occurred.Add(time.Second), IsLike: true})
	require.NoError(t, err)
	_, err = e.Ingest(Event{UserID: "u1", VideoID: "v1", Kind: EventLike, OccurredAt: occurred.Add(2 * time.Second), IsLike: false})
	require.NoError(t, err)

	u, _ := e.Entities().GetUser("u1")
	assert.False(t, u.likedVideos["v1"])
	assert.True(t, u.dislikedVideos["v1"])

	rating, ok := e.Matrix().GetRating("u1", "v1")
	require.True(t, ok)
	assert.InDelta(t, 0.2, rating, 1e-9, "liked=false after the dislike, only completion_ratio contributes")
}

func TestValidationRejectsMalformedEventsWithoutStateChange(t *testing.T) {
	e := NewEngine()
	_, err := e.Ingest(Event{UserID: "", VideoID: "v1", Kind: EventWatch, OccurredAt: time.Now()})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = e.Ingest(Event{UserID: "u1", VideoID: "v1", Kind: EventWatch, OccurredAt: time.Now(), WatchSeconds: -5})
	assert.True(t, errors.Is(err, ErrValidation))

	assert.Zero(t, e.Entities().UserCount())
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	e := NewEngine()
	occurred := time.Now()
	_, err := e.Ingest(Event{UserID: "u1", ChannelID: "c1", Kind: EventSubscribe, OccurredAt: occurred})
	require.NoError(t, err)

	u, _ := e.Entities().GetUser("u1")
	_, subscribed := u.Subscriptions["c1"]
	assert.True(t, subscribed)

	_, err = e.Ingest(Event{UserID: "u1", ChannelID: "c1", Kind: EventUnsubscribe, OccurredAt: occurred.Add(time.Second)})
	require.NoError(t, err)
	_, subscribed = u.Subscriptions["c1"]
	assert.False(t, subscribed)
}

func TestCommentReturnsSentimentAnnotation(t *testing.T) {
	e := NewEngine()
	e.Entities().CreateOrUpdateVideo(&Video{ID: "v1", ChannelID: "c1"})

	result, err := e.Ingest(Event{
		UserID: "u1", VideoID: "v1", Kind: EventComment, OccurredAt: time.Now(),
		CommentText: "This is an amazing awesome video",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "positive", result.Sentiment)
}

func TestPermutationInvariancePerUserOrderPreserved(t *testing.T) {
	video := func() *Video { return &Video{ID: "v1", ChannelID: "c1", Duration: 100} }

	e1 := NewEngine()
	e1.Entities().CreateOrUpdateVideo(video())
	base := time.Now()
	events1 := []Event{
		{UserID: "u1", VideoID: "v1", Kind: EventWatch, OccurredAt: base, WatchSeconds: 50},
		{UserID: "u1", VideoID: "v1", Kind: EventLike, OccurredAt: base.Add(time.Second), IsLike: true},
		{UserID: "u1", ChannelID: "c1", Kind: EventSubscribe, OccurredAt: base.Add(2 * time.Second)},
	}
	for _, ev := range events1 {
		_, err := e1.Ingest(ev)
		require.NoError(t, err)
	}

	e2 := NewEngine()
	e2.Entities().CreateOrUpdateVideo(video())
	// Interleave with a second user's independent events; per-user order
	// for u1 is preserved even though global order differs.
	_, err := e2.Ingest(Event{UserID: "u1", VideoID: "v1", Kind: EventWatch, OccurredAt: base, WatchSeconds: 50})
	require.NoError(t, err)
	e2.Entities().CreateOrUpdateVideo(&Video{ID: "v2", ChannelID: "c2"})
	_, err = e2.Ingest(Event{UserID: "u2", VideoID: "v2", Kind: EventWatch, OccurredAt: base, WatchSeconds: 10})
	require.NoError(t, err)
	_, err = e2.Ingest(Event{UserID: "u1", VideoID: "v1", Kind: EventLike, OccurredAt: base.Add(time.Second), IsLike: true})
	require.NoError(t, err)
	_, err = e2.Ingest(Event{UserID: "u1", ChannelID: "c1", Kind: EventSubscribe, OccurredAt: base.Add(2 * time.Second)})
	require.NoError(t, err)

	u1a, _ := e1.Entities().GetUser("u1")
	u1b, _ := e2.Entities().GetUser("u1")
	assert.Equal(t, u1a.ContentPreferences, u1b.ContentPreferences)

	r1, _ := e1.Matrix().GetRating("u1", "v1")
	r2, _ := e2.Matrix().GetRating("u1", "v1")
	assert.Equal(t, r1, r2)
}
