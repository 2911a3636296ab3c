package engine

import "math"

const (
	contentTopCategories   = 10  // T, §4.4.2 step 1
	contentTagWeight       = 0.5
	contentSubscribeWeight = 0.3
	contentEmbeddingWeight = 0.4
)

type contentScorer struct{}

func (contentScorer) name() string    { return "content" }
func (contentScorer) weight() float64 { return 0.25 }

func (contentScorer) score(snap *snapshot, userID string, n int) []Candidate {
	u := snap.user
	topCats := topCategoryAffinities(u, contentTopCategories)
	affinityByCategory := make(map[string]float64, len(topCats))
	for _, c := range topCats {
		affinityByCategory[c.Category] = c.Affinity
	}

	var centroid []float64
	if len(u.embeddingCentroid) > 0 {
		centroid = u.embeddingCentroid
	}

	cands := make([]Candidate, 0, len(snap.videos))
	for _, v := range snap.videos {
		if snap.isSeen(v.ID) {
			continue
		}
		var score float64
		for c := range v.Categories {
			score += affinityByCategory[c]
		}
		for t := range v.Tags {
			score += contentTagWeight * u.TagAffinities[t]
		}
		if _, subscribed := u.Subscriptions[v.ChannelID]; subscribed {
			score += contentSubscribeWeight
		}
		if centroid != nil && len(v.Embedding) == len(centroid) {
			score += contentEmbeddingWeight * cosineSimilarityDense(centroid, v.Embedding)
		}
		if score == 0 {
			continue
		}
		cands = append(cands, Candidate{VideoID: v.ID, Score: score})
	}
	return topN(cands, candidateBudget(n))
}

// cosineSimilarityDense computes cosine similarity between two dense
// equal-length vectors, used for embedding comparisons (§4.4.2 step 3).
func cosineSimilarityDense(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
