package asr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinSimilarityExactMatch(t *testing.T) {
	assert.Equal(t, 1.0, levenshteinSimilarity("zoom to 15", "zoom to 15"))
}

func TestLevenshteinSimilarityEmptyBoth(t *testing.T) {
	assert.Equal(t, 1.0, levenshteinSimilarity("", ""))
}

func TestScorePhrasesNormalizesToSum1(t *testing.T) {
	scores := scorePhrases("zoom to fifteen", []string{"zoom to 15", "show help", "change color"})
	var total float64
	for _, s := range scores {
		total += s
	}
	assert.InDelta(t, 1, total, 1e-9)
}

func TestScorePhrasesAllEmptySplitsEvenly(t *testing.T) {
	scores := scorePhrases("", []string{"", ""})
	assert.Equal(t, []float64{0.5, 0.5}, scores)
}

func TestArgmaxLowestIndexTie(t *testing.T) {
	index, best := argmaxLowestIndexTie([]float64{0.2, 0.5, 0.5, 0.1})
	assert.Equal(t, 1, index)
	assert.Equal(t, 0.5, best)
}

func TestArgmaxLowestIndexTieSingle(t *testing.T) {
	index, best := argmaxLowestIndexTie([]float64{0.7})
	assert.Equal(t, 0, index)
	assert.Equal(t, 0.7, best)
}
