package engine

type engagementScorer struct{}

func (engagementScorer) name() string    { return "engagement" }
func (engagementScorer) weight() float64 { return 0.15 }

// compat scores how close two ratios are, in [0,1]: 1 means identical.
func compat(p, q float64) float64 {
	d := p - q
	if d < 0 {
		d = -d
	}
	c := 1 - d
	if c < 0 {
		return 0
	}
	return c
}

// score implements §4.4.5: P is the user's interaction pattern vector, Q is
// the analogous per-video vector derived from VideoMetrics.
func (engagementScorer) score(snap *snapshot, userID string, n int) []Candidate {
	p := snap.user.InteractionPatterns

	cands := make([]Candidate, 0, len(snap.videos))
	for _, v := range snap.videos {
		if snap.isSeen(v.ID) {
			continue
		}
		views := v.Metrics.Views
		if views < 1 {
			views = 1
		}
		qLikeRatio := float64(v.Metrics.Likes) / float64(views)
		qCommentRatio := float64(v.Metrics.Comments) / float64(views)
		qShareRatio := float64(v.Metrics.Shares) / float64(views)

		var score float64
		score += 2.0 * compat(p.AvgWatchRatio, v.Metrics.AvgWatchRatio)
		score += 1.5 * compat(p.LikeRate, qLikeRatio)
		score += 1.0 * compat(p.CommentRate, qCommentRatio)
		if p.RewatchRate > 0.1 {
			r := v.Metrics.RewatchRate
			if r > 1 {
				r = 1
			}
			score += 1.2 * r
		}
		if v.Metrics.CompletionRate > 0.7 {
			score += 0.8
		}
		score += 1.0 * compat(p.ShareRate, qShareRatio)

		if score == 0 {
			continue
		}
		cands = append(cands, Candidate{VideoID: v.ID, Score: score})
	}
	return topN(cands, candidateBudget(n))
}
