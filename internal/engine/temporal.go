package engine

import "time"

type temporalScorer struct{}

func (temporalScorer) name() string    { return "temporal" }
func (temporalScorer) weight() float64 { return 0.10 }

// score implements §4.4.4's additive boosts.
func (temporalScorer) score(snap *snapshot, userID string, n int) []Candidate {
	u := snap.user
	currentHour := time.Unix(snap.now, 0).UTC().Hour()
	maxHour := 0
	for _, c := range u.InteractionPatterns.HourHistogram {
		if c > maxHour {
			maxHour = c
		}
	}

	cands := make([]Candidate, 0, len(snap.videos))
	for _, v := range snap.videos {
		if snap.isSeen(v.ID) {
			continue
		}
		_, subscribed := u.Subscriptions[v.ChannelID]
		ageDays := float64(snap.now-v.UploadedAt.Unix()) / 86400.0

		var score float64
		switch {
		case ageDays < 1.0 && subscribed:
			score += 5.0
		case ageDays >= 1.0 && ageDays < 3.0 && subscribed:
			score += 3.0
		case ageDays >= 3.0 && ageDays < 7.0:
			score += 2.0
		}

		if maxHour > 0 {
			score += minFloat(1.0, float64(u.InteractionPatterns.HourHistogram[currentHour])/float64(maxHour))
		}

		if v.Metrics.lifetimeDailyAvg > 0 && float64(v.Metrics.ViewsLast24h) > 3.0*v.Metrics.lifetimeDailyAvg {
			score += 1.5
		}

		if score == 0 {
			continue
		}
		cands = append(cands, Candidate{VideoID: v.ID, Score: score})
	}
	return topN(cands, candidateBudget(n))
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
