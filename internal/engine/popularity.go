package engine

import "math"

type popularityScorer struct{}

func (popularityScorer) name() string    { return "popularity" }
func (popularityScorer) weight() float64 { return 0.15 }

// score implements §4.4.3: score = (log10(max(views,1))*0.6 +
// like_ratio*0.4) * recency_factor.
func (popularityScorer) score(snap *snapshot, userID string, n int) []Candidate {
	cands := make([]Candidate, 0, len(snap.videos))
	for _, v := range snap.videos {
		if snap.isSeen(v.ID) {
			continue
		}
		views := v.Metrics.Views
		if views < 1 {
			views = 1
		}
		likeRatio := float64(v.Metrics.Likes) / float64(views)
		daysSinceUpload := float64(snap.now-v.UploadedAt.Unix()) / 86400.0
		if daysSinceUpload < 1.0 {
			daysSinceUpload = 1.0
		}
		recency := 1.0 + math.Min(3.0, 30.0/daysSinceUpload)
		score := (math.Log10(float64(views))*0.6 + likeRatio*0.4) * recency
		cands = append(cands, Candidate{VideoID: v.ID, Score: score})
	}
	return topN(cands, candidateBudget(n))
}
