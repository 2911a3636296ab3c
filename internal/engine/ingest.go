package engine

import (
	"fmt"
	"time"
)

// EventKind enumerates the interaction kinds ingestion accepts, §4.6.
type EventKind string

const (
	EventWatch       EventKind = "watch"
	EventLike        EventKind = "like"
	EventComment     EventKind = "comment"
	EventShare       EventKind = "share"
	EventSubscribe   EventKind = "subscribe"
	EventUnsubscribe EventKind = "unsubscribe"
)

// Event is one interaction to ingest. Not every field applies to every
// kind; see Ingest for which fields each kind reads.
type Event struct {
	UserID       string
	VideoID      string
	ChannelID    string
	Kind         EventKind
	OccurredAt   time.Time
	WatchSeconds float64
	IsLike       bool // EventLike only: true=like, false=dislike
	CommentText  string

	// The idempotence check in §4.6 keys on dedupeKey(), derived from the
	// (user, video, kind, occurred_at) fields above on every call.
}

// dedupeKey returns the idempotence key for an event: re-applying an event
// with an identical key is required to be a no-op.
func (e Event) dedupeKey() string {
	return fmt.Sprintf("%s|%s|%s|%d", e.UserID, e.VideoID, e.Kind, e.OccurredAt.UnixNano())
}

// CommentResult carries the best-effort sentiment annotation back to the
// HTTP collaborator for events of kind EventComment (§11 SUPPLEMENTED
// FEATURES: comment sentiment does not feed any scorer).
type CommentResult struct {
	Sentiment string // "positive", "negative", or "neutral"
}

// Ingest applies one interaction event to C1/C2/C3 atomically, per §4.6.
// Unknown user/video ids are lazily upserted. Validation failures leave
// state untouched. Re-applying an identical event (by dedupeKey) is a
// no-op on every store it would otherwise touch.
func (e *Engine) Ingest(ev Event) (*CommentResult, error) {
	if err := validateEvent(ev); err != nil {
		return nil, err
	}

	key := ev.dedupeKey()
	if e.dedup.seen(key) {
		return nil, nil
	}

	var result *CommentResult
	switch ev.Kind {
	case EventWatch:
		if err := e.applyWatch(ev); err != nil {
			return nil, err
		}
	case EventLike:
		if err := e.applyLike(ev); err != nil {
			return nil, err
		}
	case EventComment:
		r, err := e.applyComment(ev)
		if err != nil {
			return nil, err
		}
		result = r
	case EventShare:
		if err := e.applyShare(ev); err != nil {
			return nil, err
		}
	case EventSubscribe:
		e.applySubscribe(ev, true)
	case EventUnsubscribe:
		e.applySubscribe(ev, false)
	default:
		return nil, fmt.Errorf("unknown event kind %q: %w", ev.Kind, ErrValidation)
	}

	e.dedup.record(key)
	return result, nil
}

func validateEvent(ev Event) error {
	if ev.UserID == "" {
		return fmt.Errorf("missing user_id: %w", ErrValidation)
	}
	if ev.Kind != EventSubscribe && ev.Kind != EventUnsubscribe && ev.VideoID == "" {
		return fmt.Errorf("missing video_id: %w", ErrValidation)
	}
	if (ev.Kind == EventSubscribe || ev.Kind == EventUnsubscribe) && ev.ChannelID == "" {
		return fmt.Errorf("missing channel_id: %w", ErrValidation)
	}
	if ev.Kind == EventWatch && ev.WatchSeconds < 0 {
		return fmt.Errorf("negative watch_seconds: %w", ErrValidation)
	}
	if ev.OccurredAt.IsZero() {
		return fmt.Errorf("missing occurred_at: %w", ErrValidation)
	}
	return nil
}

func (e *Engine) applyWatch(ev Event) error {
	video := e.entities.MutateVideo(ev.VideoID, func(v *Video) {
		v.Metrics.Views++
	})

	completionRatio := 0.0
	if video.Duration > 0 {
		completionRatio = clamp01(ev.WatchSeconds / video.Duration)
	}

	e.entities.MutateUser(ev.UserID, func(u *User) {
		applyDecay(u, ev.OccurredAt)
		rewatch := false
		for _, we := range u.WatchHistory {
			if we.VideoID == ev.VideoID {
				rewatch = true
				break
			}
		}
		u.WatchHistory = append(u.WatchHistory, WatchEvent{
			VideoID:         ev.VideoID,
			Timestamp:       ev.OccurredAt,
			WatchSeconds:    ev.WatchSeconds,
			CompletionRatio: completionRatio,
		})
		if len(u.WatchHistory) > MaxWatchHistory {
			u.WatchHistory = u.WatchHistory[len(u.WatchHistory)-MaxWatchHistory:]
		}
		onWatch(u, video, completionRatio, ev.OccurredAt.UTC().Hour())
		if rewatch {
			n := u.InteractionPatterns.RewatchRate
			// rolling toward 1.0 on a rewatch, toward 0 isn't applied here;
			// the engagement scorer only uses this user-side rate as the gate
			// for its rewatch dimension, scored from the per-video rate below.
			u.InteractionPatterns.RewatchRate = n*0.9 + 0.1
		}

		liked := u.likedVideos[ev.VideoID]
		_, subscribed := u.Subscriptions[video.ChannelID]
		e.updateRatingLocked(u, video, completionRatio, liked, false, false, subscribed)
	})

	e.entities.MutateVideo(ev.VideoID, func(v *Video) {
		rewatchCount := v.rewatchers[ev.UserID]
		v.rewatchers[ev.UserID] = rewatchCount + 1
		totalWatches := int64(0)
		rewatchers := 0
		for _, c := range v.rewatchers {
			totalWatches += int64(c)
			if c > 1 {
				rewatchers++
			}
		}
		if totalWatches > 0 {
			v.Metrics.RewatchRate = float64(rewatchers) / float64(len(v.rewatchers))
		}
		views := v.Metrics.Views
		v.Metrics.AvgWatchTime = (v.Metrics.AvgWatchTime*float64(views-1) + ev.WatchSeconds) / float64(views)
		v.Metrics.AvgWatchRatio = (v.Metrics.AvgWatchRatio*float64(views-1) + completionRatio) / float64(views)
		if completionRatio >= 0.9 {
			v.Metrics.CompletionRate = (v.Metrics.CompletionRate*float64(views-1) + 1.0) / float64(views)
		} else {
			v.Metrics.CompletionRate = (v.Metrics.CompletionRate * float64(views-1)) / float64(views)
		}
		v.Metrics.ViewsLast24h++
		v.Metrics.lifetimeDailyAvg = rollingDailyAvg(v.Metrics.lifetimeDailyAvg, v.UploadedAt, ev.OccurredAt)
	})

	return nil
}

// rollingDailyAvg keeps a lifetime average of daily views, used by the
// temporal scorer's trending boost (§4.4.4, §9 Open Questions: "assumed
// 24h window maintained in metrics").
func rollingDailyAvg(prevAvg float64, uploadedAt, now time.Time) float64 {
	days := now.Sub(uploadedAt).Hours() / 24.0
	if days < 1 {
		days = 1
	}
	return prevAvg + (1.0-prevAvg/days)/days
}

func (e *Engine) applyLike(ev Event) error {
	video := e.entities.GetOrCreateVideo(ev.VideoID)
	field := MetricLikes
	if !ev.IsLike {
		field = MetricDislikes
	}
	// Switching between like and dislike releases the earlier reaction's
	// counter first, so only the current reaction is counted.
	var prev MetricField
	e.entities.usersMu.RLock()
	if u, ok := e.entities.userLocked(ev.UserID); ok && u.likedVideos[ev.VideoID] && !ev.IsLike {
		prev = MetricLikes
	} else if ok && u.dislikedVideos[ev.VideoID] && ev.IsLike {
		prev = MetricDislikes
	}
	e.entities.usersMu.RUnlock()
	if prev != "" {
		if err := e.entities.IncrementMetric(ev.VideoID, prev, -1); err != nil {
			return err
		}
	}
	if err := e.entities.IncrementMetric(ev.VideoID, field, 1); err != nil {
		return err
	}

	e.entities.MutateUser(ev.UserID, func(u *User) {
		applyDecay(u, ev.OccurredAt)
		if ev.IsLike {
			u.likedVideos[ev.VideoID] = true
			delete(u.dislikedVideos, ev.VideoID)
			updateEmbeddingCentroid(u, video)
		} else {
			u.dislikedVideos[ev.VideoID] = true
			delete(u.likedVideos, ev.VideoID)
		}
		onLike(u, video, ev.IsLike)

		completionRatio := 0.0
		for _, we := range u.WatchHistory {
			if we.VideoID == ev.VideoID {
				completionRatio = we.CompletionRatio
			}
		}
		_, subscribed := u.Subscriptions[video.ChannelID]
		e.updateRatingLocked(u, video, completionRatio, ev.IsLike, false, false, subscribed)
	})
	return nil
}

func (e *Engine) applyComment(ev Event) (*CommentResult, error) {
	video := e.entities.GetOrCreateVideo(ev.VideoID)
	if err := e.entities.IncrementMetric(ev.VideoID, MetricComments, 1); err != nil {
		return nil, err
	}

	e.entities.MutateUser(ev.UserID, func(u *User) {
		applyDecay(u, ev.OccurredAt)
		onComment(u, video)

		completionRatio := 0.0
		liked := u.likedVideos[ev.VideoID]
		for _, we := range u.WatchHistory {
			if we.VideoID == ev.VideoID {
				completionRatio = we.CompletionRatio
			}
		}
		_, subscribed := u.Subscriptions[video.ChannelID]
		e.updateRatingLocked(u, video, completionRatio, liked, true, false, subscribed)
	})

	return &CommentResult{Sentiment: analyzeSentiment(ev.CommentText)}, nil
}

func (e *Engine) applyShare(ev Event) error {
	video := e.entities.GetOrCreateVideo(ev.VideoID)
	if err := e.entities.IncrementMetric(ev.VideoID, MetricShares, 1); err != nil {
		return err
	}

	e.entities.MutateUser(ev.UserID, func(u *User) {
		applyDecay(u, ev.OccurredAt)
		onShare(u, video)

		completionRatio := 0.0
		liked := u.likedVideos[ev.VideoID]
		for _, we := range u.WatchHistory {
			if we.VideoID == ev.VideoID {
				completionRatio = we.CompletionRatio
			}
		}
		_, subscribed := u.Subscriptions[video.ChannelID]
		e.updateRatingLocked(u, video, completionRatio, liked, false, true, subscribed)
	})
	return nil
}

func (e *Engine) applySubscribe(ev Event, subscribe bool) {
	e.entities.GetOrCreateChannel(ev.ChannelID)
	e.entities.MutateUser(ev.UserID, func(u *User) {
		if subscribe {
			u.Subscriptions[ev.ChannelID] = struct{}{}
		} else {
			delete(u.Subscriptions, ev.ChannelID)
		}
	})
	// Subscriptions feed the content and temporal scorers, so a cached result
	// keyed on the matrix generation must not outlive this change.
	e.matrix.mu.Lock()
	e.matrix.generation++
	e.matrix.mu.Unlock()
}

// updateRatingLocked recomputes the derived rating for (u, video) and
// writes it into the matrix. Called while u's exclusive lock is held by
// the caller (MutateUser's fn), so the user-side state and the matrix
// mutation are atomic with respect to other events on this user per §4.6.
func (e *Engine) updateRatingLocked(u *User, video *Video, completionRatio float64, liked, commented, shared, subscribed bool) {
	if video == nil {
		return
	}
	r := DeriveRating(completionRatio, liked, commented, shared, subscribed)
	e.matrix.SetRating(u.ID, video.ID, r)
}

// updateEmbeddingCentroid folds video's embedding into the running mean of
// the user's last 50 positively-rated videos (§4.4.2 step 3).
const centroidWindow = 50

func updateEmbeddingCentroid(u *User, video *Video) {
	if video == nil || len(video.Embedding) == 0 {
		return
	}
	u.centroidHistory = append(u.centroidHistory, video.Embedding)
	if len(u.centroidHistory) > centroidWindow {
		u.centroidHistory = u.centroidHistory[len(u.centroidHistory)-centroidWindow:]
	}
	dim := len(video.Embedding)
	sum := make([]float64, dim)
	for _, emb := range u.centroidHistory {
		if len(emb) != dim {
			continue
		}
		for i, x := range emb {
			sum[i] += x
		}
	}
	n := float64(len(u.centroidHistory))
	for i := range sum {
		sum[i] /= n
	}
	u.embeddingCentroid = sum
}
