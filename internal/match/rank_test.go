package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkamesh/arka/internal/record"
)

func TestRank_DescendingScore(t *testing.T) {
	in := []record.MatchResult{
		{OfferNode: "low", Score: 0.4},
		{OfferNode: "high", Score: 1.25},
		{OfferNode: "mid", Score: 0.7},
	}

	ranked := Rank(in)
	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].OfferNode)
	assert.Equal(t, "mid", ranked[1].OfferNode)
	assert.Equal(t, "low", ranked[2].OfferNode)
}

func TestRank_StableOnTies(t *testing.T) {
	// A, B tie below C: the tie keeps insertion order, so the ranking
	// is [C, A, B].
	in := []record.MatchResult{
		{OfferNode: "A", Score: 0.4},
		{OfferNode: "B", Score: 0.4},
		{OfferNode: "C", Score: 0.7},
	}

	ranked := Rank(in)
	require.Len(t, ranked, 3)
	assert.Equal(t, "C", ranked[0].OfferNode)
	assert.Equal(t, "A", ranked[1].OfferNode)
	assert.Equal(t, "B", ranked[2].OfferNode)
}

func TestRank_DoesNotModifyInput(t *testing.T) {
	in := []record.MatchResult{
		{OfferNode: "low", Score: 0.4},
		{OfferNode: "high", Score: 0.7},
	}

	_ = Rank(in)
	assert.Equal(t, "low", in[0].OfferNode)
	assert.Equal(t, "high", in[1].OfferNode)
}

func TestRank_Empty(t *testing.T) {
	ranked := Rank(nil)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}
