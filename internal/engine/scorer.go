package engine

import "sort"

// Candidate is one (video_id, raw_score) pair produced by a scorer.
type Candidate struct {
	VideoID string
	Score   float64
}

// scorer is the capability every C4 strategy satisfies (§9 Design Notes:
// "dynamic dispatch over scorers"): score a user against a snapshot,
// returning a bounded, unseen-only candidate list.
type scorer interface {
	name() string
	weight() float64
	score(snap *snapshot, userID string, n int) []Candidate
}

// snapshot is the immutable, consistent view every scorer reads from
// (GLOSSARY: "an immutable, consistent view of all stores used by a single
// recommendation request"). It is built once per request while the caller
// holds shared access across users/videos/matrix, then handed to all five
// scorers — which may run concurrently since they only read it.
type snapshot struct {
	user       *User
	seen       map[string]struct{} // video ids in the user's watch history
	videos     []*Video
	videoByID  map[string]*Video
	matrixRows map[string]map[string]float64 // all users' rows, incl. target
	now        int64                         // unix seconds, request time
}

func newSnapshot(u *User, videos []*Video, matrixRows map[string]map[string]float64, now int64) *snapshot {
	seen := make(map[string]struct{}, len(u.WatchHistory))
	for _, we := range u.WatchHistory {
		seen[we.VideoID] = struct{}{}
	}
	byID := make(map[string]*Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	return &snapshot{user: u, seen: seen, videos: videos, videoByID: byID, matrixRows: matrixRows, now: now}
}

func (s *snapshot) isSeen(videoID string) bool {
	_, ok := s.seen[videoID]
	return ok
}

// topN sorts candidates by score descending, video_id ascending on ties
// (§4.5 point 6: determinism), and truncates to n.
func topN(cands []Candidate, n int) []Candidate {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].VideoID < cands[j].VideoID
	})
	if n >= 0 && len(cands) > n {
		cands = cands[:n]
	}
	return cands
}

// candidateBudget is 4N, the bound every scorer's output list respects (§4.4).
func candidateBudget(n int) int {
	return 4 * n
}
