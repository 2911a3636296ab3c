package engine

import "sort"

// ranker is C5: it is parametric over a fixed ordered sequence of scorers
// (§9 Design Notes: "adding/removing strategies without recompiling the
// ranker"), normalising, weighting, merging, excluding seen, diversifying,
// and truncating to N.
type ranker struct {
	scorers []scorer
}

// Weights carries the five scorer weights from §4.5 step 2, overridable via
// config (§9.2) for experimentation without recompiling the ranker.
type Weights struct {
	Collaborative float64
	Content       float64
	Popularity    float64
	Temporal      float64
	Engagement    float64
}

// DefaultWeights is §4.5's 0.35/0.25/0.15/0.10/0.15.
func DefaultWeights() Weights {
	return Weights{Collaborative: 0.35, Content: 0.25, Popularity: 0.15, Temporal: 0.10, Engagement: 0.15}
}

// weightedScorer overrides the wrapped scorer's weight without touching
// its scoring logic, the mechanism behind "adding/removing strategies
// without recompiling the ranker" (§9 Design Notes).
type weightedScorer struct {
	scorer
	w float64
}

func (w weightedScorer) weight() float64 { return w.w }

func newRanker(weights Weights) *ranker {
	return &ranker{scorers: []scorer{
		weightedScorer{collaborativeScorer{}, weights.Collaborative},
		weightedScorer{contentScorer{}, weights.Content},
		weightedScorer{popularityScorer{}, weights.Popularity},
		weightedScorer{temporalScorer{}, weights.Temporal},
		weightedScorer{engagementScorer{}, weights.Engagement},
	}}
}

// mergedEntry is one video's weighted, merged final score (§4.5 step 3).
type mergedEntry struct {
	videoID string
	score   float64
}

// rank implements §4.5 end to end.
func (r *ranker) rank(snap *snapshot, userID string, n int) []string {
	totals := make(map[string]float64)

	for _, sc := range r.scorers {
		cands := sc.score(snap, userID, n)
		normalised := normalise(cands)
		w := sc.weight()
		for _, c := range normalised {
			totals[c.VideoID] += w * c.Score
		}
	}

	// Exclude seen videos — defence in depth, §4.5 step 4.
	for videoID := range snap.seen {
		delete(totals, videoID)
	}

	list := make([]mergedEntry, 0, len(totals))
	for videoID, score := range totals {
		list = append(list, mergedEntry{videoID: videoID, score: score})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return list[i].videoID < list[j].videoID
	})

	list = diversify(list, snap, n)

	if len(list) > n {
		list = list[:n]
	}
	out := make([]string, len(list))
	for i, m := range list {
		out[i] = m.videoID
	}
	return out
}

// normalise divides every candidate's score by the list's max raw score
// (§4.5 step 1). Empty or all-zero lists yield zeros.
func normalise(cands []Candidate) []Candidate {
	if len(cands) == 0 {
		return cands
	}
	max := cands[0].Score
	for _, c := range cands {
		if c.Score > max {
			max = c.Score
		}
	}
	out := make([]Candidate, len(cands))
	if max <= 0 {
		for i, c := range cands {
			out[i] = Candidate{VideoID: c.VideoID, Score: 0}
		}
		return out
	}
	for i, c := range cands {
		out[i] = Candidate{VideoID: c.VideoID, Score: c.Score / max}
	}
	return out
}

// diversify implements §4.5 step 5: after sorting by final score
// descending, no channel may contribute more than ceil(N/3) items within
// the top N; excess items are demoted to the end, preserving their
// relative order among themselves and among the videos that bump up.
func diversify(list []mergedEntry, snap *snapshot, n int) []mergedEntry {
	chanCap := (n + 2) / 3 // ceil(N/3)
	if chanCap < 1 {
		chanCap = 1
	}
	kept := make([]mergedEntry, 0, len(list))
	overflow := make([]mergedEntry, 0)
	channelCount := make(map[string]int)

	for _, m := range list {
		channelID := ""
		if v, ok := snap.videoByID[m.videoID]; ok {
			channelID = v.ChannelID
		}
		if len(kept) < n && channelCount[channelID] < chanCap {
			kept = append(kept, m)
			channelCount[channelID]++
		} else {
			overflow = append(overflow, m)
		}
	}
	return append(kept, overflow...)
}
