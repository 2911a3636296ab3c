// Package analytics is a read-only collaborator (§11 SUPPLEMENTED
// FEATURES) computed on demand from engine snapshots. It never mutates
// engine state and is never consulted by a scorer; it exists purely to
// feed the dashboard's /api/chart-data and /api/stats extras, grounded on
// the original prototype's analytics.rs AnalyticsEngine.
package analytics

import (
	"sort"
	"strings"
)

// Segment names, matching analytics.rs::run_user_segmentation's buckets.
const (
	SegmentCasual    = "casual_viewers"
	SegmentEngaged   = "engaged_viewers"
	SegmentNiche     = "niche_enthusiasts"
	SegmentCreators  = "content_creators"
)

// UserSnapshot is the minimal view Segment needs, decoupled from
// engine.User so this package never imports engine and stays read-only by
// construction.
type UserSnapshot struct {
	ID                 string
	WatchHistoryLen    int
	CommentCount       int
	ContentPreferences map[string]float64
}

// Segment buckets users the way analytics.rs::run_user_segmentation does:
// engaged viewers watch a lot and comment a lot; casual viewers watch
// little; niche enthusiasts watch a moderate amount but concentrate on
// very few categories. Content creators is carried as an always-empty
// bucket, matching the prototype (it never populates it either — there is
// no creator-role concept in this data model).
func Segment(users []UserSnapshot) map[string][]string {
	segments := map[string][]string{
		SegmentCasual:   {},
		SegmentEngaged:  {},
		SegmentNiche:    {},
		SegmentCreators: {},
	}
	for _, u := range users {
		switch {
		case u.WatchHistoryLen > 100 && u.CommentCount > 20:
			segments[SegmentEngaged] = append(segments[SegmentEngaged], u.ID)
		case u.WatchHistoryLen < 20:
			segments[SegmentCasual] = append(segments[SegmentCasual], u.ID)
		case len(u.ContentPreferences) < 3 && len(u.ContentPreferences) > 0:
			segments[SegmentNiche] = append(segments[SegmentNiche], u.ID)
		}
	}
	return segments
}

// VideoSnapshot is the minimal view ContentInsights needs.
type VideoSnapshot struct {
	Categories        []string
	AvgWatchRatio     float64
}

// ContentInsights returns, per category, the average watch ratio across
// every video carrying that category, matching
// analytics.rs::generate_content_insights.
func ContentInsights(videos []VideoSnapshot) map[string]float64 {
	totals := make(map[string]float64)
	counts := make(map[string]int)
	for _, v := range videos {
		for _, c := range v.Categories {
			totals[c] += v.AvgWatchRatio
			counts[c]++
		}
	}
	out := make(map[string]float64, len(totals))
	for c, total := range totals {
		out[c] = total / float64(counts[c])
	}
	return out
}

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"is": true, "are": true, "was": true, "were": true, "i": true, "you": true,
	"he": true, "she": true, "it": true, "to": true, "of": true, "in": true,
}

// TrendingTopics extracts the top-10 most frequent non-stopword words
// across a set of comment texts, matching
// analytics.rs::extract_trending_topics's word-frequency heuristic.
func TrendingTopics(comments []string) []string {
	counts := make(map[string]int)
	for _, c := range comments {
		for _, word := range strings.Fields(c) {
			w := strings.ToLower(strings.Trim(word, ".,!?;:\"'"))
			if w == "" || stopwords[w] {
				continue
			}
			counts[w]++
		}
	}
	type wc struct {
		word  string
		count int
	}
	list := make([]wc, 0, len(counts))
	for w, c := range counts {
		list = append(list, wc{w, c})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].word < list[j].word
	})
	if len(list) > 10 {
		list = list[:10]
	}
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.word
	}
	return out
}
