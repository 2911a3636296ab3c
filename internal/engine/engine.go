package engine

import (
	"fmt"
	"sync"
	"time"
)

// Engine is the aggregate that owns every store and fans out recommendation
// requests to the five scorers, grounded on the teacher's api-coordinator
// Service-over-repository layering but collapsed into one in-process value
// per §9 Design Notes ("no process-wide singletons required").
type Engine struct {
	entities *EntityStore
	matrix   *UserItemMatrix
	ranker   *ranker
	dedup    *dedupSet
}

// NewEngine returns an empty engine ready for seeding and requests, using
// the §4.5 default scorer weights.
func NewEngine() *Engine {
	return NewEngineWithWeights(DefaultWeights())
}

// NewEngineWithWeights is NewEngine with scorer weights overridden, wired
// from config.Config (§9.2) by cmd/server.
func NewEngineWithWeights(weights Weights) *Engine {
	return &Engine{
		entities: NewEntityStore(),
		matrix:   NewUserItemMatrix(),
		ranker:   newRanker(weights),
		dedup:    newDedupSet(),
	}
}

// Entities and Matrix expose the underlying stores to collaborators that
// work outside the scoring path: seeding writes videos and users through
// them, and the HTTP stats and cache code iterate or read them.
func (e *Engine) Entities() *EntityStore   { return e.entities }
func (e *Engine) Matrix() *UserItemMatrix  { return e.matrix }

// Recommendation is one ranked result entry, shaped for the HTTP
// collaborator's response object (§6): id, title, channel_id, categories,
// and the subset of metrics the interface table names.
type Recommendation struct {
	VideoID    string
	Title      string
	ChannelID  string
	Categories []string
	Views      int64
	Likes      int64
	Comments   int64
}

// RecommendForUser implements the request→C5→fan-out-to-C4→merge→response
// flow from §2. count<=0 is a validation error; an unknown user is
// NotFound (§7) — ingestion's lazy-upsert policy does not apply to reads.
func (e *Engine) RecommendForUser(userID string, count int) ([]Recommendation, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d: %w", count, ErrValidation)
	}

	e.entities.usersMu.RLock()
	_, exists := e.entities.userLocked(userID)
	e.entities.usersMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}

	// Decay mutates ContentPreferences/TagAffinities and so needs the
	// exclusive lock, even though it is logically part of a "read" request
	// (§4.3: decay is lazy, applied before scoring).
	e.entities.MutateUser(userID, func(u *User) {
		applyDecay(u, time.Now())
	})

	e.entities.usersMu.RLock()
	e.entities.videosMu.RLock()
	e.matrix.mu.RLock()
	u, _ := e.entities.userLocked(userID)
	videos := e.entities.videosLocked()
	rows := e.matrix.allRowsLocked()
	snap := newSnapshot(u, videos, rows, time.Now().Unix())
	ids := e.ranker.rank(snap, userID, count)
	e.matrix.mu.RUnlock()
	e.entities.videosMu.RUnlock()
	e.entities.usersMu.RUnlock()

	out := make([]Recommendation, 0, len(ids))
	for _, id := range ids {
		v, ok := e.entities.GetVideo(id)
		if !ok {
			continue // benign skip per §4.1
		}
		out = append(out, Recommendation{
			VideoID:    v.ID,
			Title:      v.Title,
			ChannelID:  v.ChannelID,
			Categories: categoryNames(v.Categories),
			Views:      v.Metrics.Views,
			Likes:      v.Metrics.Likes,
			Comments:   v.Metrics.Comments,
		})
	}
	return out, nil
}

func categoryNames(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// dedupSet is the idempotence guard behind §4.6's "re-applying with
// identical fields is a no-op" and §8's round-trip property. Process-
// lifetime in-memory, matching the rest of the engine's state (§3
// Lifecycles: no deletion required by the core).
type dedupSet struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newDedupSet() *dedupSet {
	return &dedupSet{keys: make(map[string]struct{})}
}

func (d *dedupSet) seen(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.keys[key]
	return ok
}

func (d *dedupSet) record(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys[key] = struct{}{}
}
