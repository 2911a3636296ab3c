package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollaborativeRequiresMinimumQualifyingPeers(t *testing.T) {
	u := newUser("target")
	rows := map[string]map[string]float64{
		"target": {"v1": 1.0, "v2": 1.0},
		"peer1":  {"v1": 1.0, "v2": 1.0, "v3": 1.0},
	}
	snap := newSnapshot(u, nil, rows, 0)
	cands := collaborativeScorer{}.score(snap, "target", 10)
	assert.Nil(t, cands, "fewer than cfMinPeers=5 qualifying peers must yield no candidates")
}

func TestCollaborativeRecommendsFromQualifyingPeers(t *testing.T) {
	u := newUser("target")
	rows := map[string]map[string]float64{
		"target": {"v1": 1.0, "v2": 1.0},
	}
	for i := 0; i < 6; i++ {
		peer := "peer" + string(rune('a'+i))
		rows[peer] = map[string]float64{"v1": 1.0, "v2": 1.0, "v3": 0.8}
	}
	snap := newSnapshot(u, nil, rows, 0)
	cands := collaborativeScorer{}.score(snap, "target", 10)
	require.NotEmpty(t, cands)
	assert.Equal(t, "v3", cands[0].VideoID, "v3 is the only unrated video shared by qualifying peers")
}

func TestCollaborativeSkipsAlreadyRatedAndSeenVideos(t *testing.T) {
	u := newUser("target")
	u.WatchHistory = []WatchEvent{{VideoID: "v4"}}
	rows := map[string]map[string]float64{
		"target": {"v1": 1.0, "v2": 1.0},
	}
	for i := 0; i < 6; i++ {
		peer := "peer" + string(rune('a'+i))
		rows[peer] = map[string]float64{"v1": 1.0, "v2": 1.0, "v4": 0.9}
	}
	snap := newSnapshot(u, nil, rows, 0)
	cands := collaborativeScorer{}.score(snap, "target", 10)
	assert.Empty(t, cands, "v4 is seen, v1/v2 are already rated by target: nothing left to recommend")
}
