package engine

import (
	"fmt"
	"sync"
	"time"
)

// EntityStore is C1: it owns User, Video, and Channel records. Per §5 the
// users and videos partitions carry independent locks so a video-metric
// write never blocks a user-preference read, grounded on the teacher's
// worker-node/internal/data read/compute split (data read once, never
// re-locked per row) adapted here into a standing RWMutex per partition.
type EntityStore struct {
	usersMu sync.RWMutex
	users   map[string]*User

	videosMu sync.RWMutex
	videos   map[string]*Video

	channelsMu sync.RWMutex
	channels   map[string]*Channel
}

// NewEntityStore returns an empty store ready for seeding or ingestion.
func NewEntityStore() *EntityStore {
	return &EntityStore{
		users:    make(map[string]*User),
		videos:   make(map[string]*Video),
		channels: make(map[string]*Channel),
	}
}

// GetUser returns the user record, or ok=false if absent. Absence during
// scoring is a benign skip per §4.1, never a fatal error.
func (s *EntityStore) GetUser(id string) (*User, bool) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// GetVideo returns the video record, or ok=false if absent.
func (s *EntityStore) GetVideo(id string) (*Video, bool) {
	s.videosMu.RLock()
	defer s.videosMu.RUnlock()
	v, ok := s.videos[id]
	return v, ok
}

// IterVideos returns a fresh slice of all video pointers, built under
// videosMu. The slice is a copy but the records it points to are shared
// with the store: ingestion mutates them under videosMu (MutateVideo,
// IncrementMetric), and IterVideos holds that lock only while building
// the slice.
func (s *EntityStore) IterVideos() []*Video {
	s.videosMu.RLock()
	defer s.videosMu.RUnlock()
	out := make([]*Video, 0, len(s.videos))
	for _, v := range s.videos {
		out = append(out, v)
	}
	return out
}

// VideoCount returns the number of known videos.
func (s *EntityStore) VideoCount() int {
	s.videosMu.RLock()
	defer s.videosMu.RUnlock()
	return len(s.videos)
}

// UserCount returns the number of known users.
func (s *EntityStore) UserCount() int {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	return len(s.users)
}

// IterUsers returns a snapshot slice of all user pointers.
func (s *EntityStore) IterUsers() []*User {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	out := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out
}

// newUser constructs a minimal empty user record. Unexported: outside the
// package, new users come from the lazy-upsert paths (§4.6)
// GetOrCreateUser and MutateUser, or from CreateOrUpdateUser.
func newUser(id string) *User {
	return &User{
		ID:                 id,
		Subscriptions:      make(map[string]struct{}),
		ContentPreferences: make(map[string]float64),
		TagAffinities:      make(map[string]float64),
		likedVideos:        make(map[string]bool),
		dislikedVideos:     make(map[string]bool),
		CreatedAt:          time.Now(),
		lastDecay:          time.Now(),
	}
}

func newVideo(id string) *Video {
	return &Video{
		ID:         id,
		Categories: make(map[string]struct{}),
		Tags:       make(map[string]struct{}),
		UploadedAt: time.Now(),
		rewatchers: make(map[string]int),
	}
}

// GetOrCreateUser implements the lazy-upsert half of §4.6: an unknown user
// referenced by an interaction gets a minimal record instead of an error.
func (s *EntityStore) GetOrCreateUser(id string) *User {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	u, ok := s.users[id]
	if !ok {
		u = newUser(id)
		s.users[id] = u
	}
	return u
}

// GetOrCreateVideo implements the lazy-upsert half of §4.6 for videos.
func (s *EntityStore) GetOrCreateVideo(id string) *Video {
	s.videosMu.Lock()
	defer s.videosMu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		v = newVideo(id)
		s.videos[id] = v
	}
	return v
}

// MutateUser runs fn against the (lazily-created) user record while holding
// usersMu exclusively for fn's whole duration, so a multi-field update (e.g.
// append watch history + bump interaction pattern) is atomic with respect
// to other ingestion events, matching §4.6's "all-or-nothing per event".
func (s *EntityStore) MutateUser(id string, fn func(u *User)) *User {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	u, ok := s.users[id]
	if !ok {
		u = newUser(id)
		s.users[id] = u
	}
	fn(u)
	return u
}

// MutateVideo runs fn against the (lazily-created) video record while
// holding videosMu exclusively for fn's whole duration.
func (s *EntityStore) MutateVideo(id string, fn func(v *Video)) *Video {
	s.videosMu.Lock()
	defer s.videosMu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		v = newVideo(id)
		s.videos[id] = v
	}
	fn(v)
	return v
}

// The following *Locked accessors assume the caller already holds the
// matching mutex (typically RecommendForUser's scoring window, which
// read-locks users, videos and the matrix). sync.RWMutex.RLock is not
// safe to call twice from the same goroutine if a writer is queued in
// between, so code running inside that window must use these
// instead of the self-locking GetUser/GetVideo/IterVideos above.

func (s *EntityStore) userLocked(id string) (*User, bool) {
	u, ok := s.users[id]
	return u, ok
}

func (s *EntityStore) videoLocked(id string) (*Video, bool) {
	v, ok := s.videos[id]
	return v, ok
}

func (s *EntityStore) videosLocked() []*Video {
	out := make([]*Video, 0, len(s.videos))
	for _, v := range s.videos {
		out = append(out, v)
	}
	return out
}

// CreateOrUpdateUser installs a fully-formed user record, used by seeding.
func (s *EntityStore) CreateOrUpdateUser(u *User) {
	if u.Subscriptions == nil {
		u.Subscriptions = make(map[string]struct{})
	}
	if u.ContentPreferences == nil {
		u.ContentPreferences = make(map[string]float64)
	}
	if u.TagAffinities == nil {
		u.TagAffinities = make(map[string]float64)
	}
	if u.likedVideos == nil {
		u.likedVideos = make(map[string]bool)
	}
	if u.dislikedVideos == nil {
		u.dislikedVideos = make(map[string]bool)
	}
	if u.lastDecay.IsZero() {
		u.lastDecay = time.Now()
	}
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	s.users[u.ID] = u
}

// CreateOrUpdateVideo installs a fully-formed video record, used by seeding.
func (s *EntityStore) CreateOrUpdateVideo(v *Video) {
	if v.rewatchers == nil {
		v.rewatchers = make(map[string]int)
	}
	if v.Categories == nil {
		v.Categories = make(map[string]struct{})
	}
	if v.Tags == nil {
		v.Tags = make(map[string]struct{})
	}
	s.videosMu.Lock()
	defer s.videosMu.Unlock()
	s.videos[v.ID] = v
	s.GetOrCreateChannel(v.ChannelID)
}

// GetOrCreateChannel registers a channel id the first time it is seen,
// either via a video upload or a subscription (§3: Channel lifecycle is
// implicit, created lazily).
func (s *EntityStore) GetOrCreateChannel(id string) *Channel {
	if id == "" {
		return nil
	}
	s.channelsMu.Lock()
	defer s.channelsMu.Unlock()
	c, ok := s.channels[id]
	if !ok {
		c = &Channel{ID: id}
		s.channels[id] = c
	}
	return c
}

// MetricField enumerates the VideoMetrics fields IncrementMetric accepts,
// matching the generic increment_metric(video_id, field, delta) interface
// named in §4.1.
type MetricField string

const (
	MetricViews    MetricField = "views"
	MetricLikes    MetricField = "likes"
	MetricDislikes MetricField = "dislikes"
	MetricShares   MetricField = "shares"
	MetricComments MetricField = "comments"
)

// IncrementMetric adjusts one VideoMetrics counter by delta under an
// exclusive lock. Returns ErrNotFound if the video does not exist and
// ErrInternal if applying delta would violate the likes+dislikes≤views
// invariant (§3); on ErrInternal the update is rejected and state is left
// unchanged, per §7's Internal error policy.
func (s *EntityStore) IncrementMetric(videoID string, field MetricField, delta int64) error {
	s.videosMu.Lock()
	defer s.videosMu.Unlock()
	v, ok := s.videos[videoID]
	if !ok {
		return fmt.Errorf("increment metric on %q: %w", videoID, ErrNotFound)
	}
	m := &v.Metrics
	switch field {
	case MetricViews:
		m.Views += delta
	case MetricLikes:
		if m.Likes+delta < 0 {
			return fmt.Errorf("likes would go negative on %q: %w", videoID, ErrInternal)
		}
		if m.Likes+delta+m.Dislikes > m.Views {
			return fmt.Errorf("likes+dislikes would exceed views on %q: %w", videoID, ErrInternal)
		}
		m.Likes += delta
	case MetricDislikes:
		if m.Dislikes+delta < 0 {
			return fmt.Errorf("dislikes would go negative on %q: %w", videoID, ErrInternal)
		}
		if m.Likes+m.Dislikes+delta > m.Views {
			return fmt.Errorf("likes+dislikes would exceed views on %q: %w", videoID, ErrInternal)
		}
		m.Dislikes += delta
	case MetricShares:
		m.Shares += delta
	case MetricComments:
		m.Comments += delta
	default:
		return fmt.Errorf("unknown metric field %q: %w", field, ErrValidation)
	}
	return nil
}
