package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLowercasesAndTrims(t *testing.T) {
	assert.Equal(t, "zoom to 15", normalize("  Zoom To 15  "))
}

func TestNameWithSpaces(t *testing.T) {
	assert.Equal(t, "zoom to", nameWithSpaces("zoom_to"))
}

func TestLevenshteinSimilarityIdentity(t *testing.T) {
	assert.Equal(t, 1.0, levenshteinSimilarity("zoom to", "zoom to"))
}

func TestLevenshteinSimilarityEmptyOther(t *testing.T) {
	assert.Equal(t, 0.0, levenshteinSimilarity("zoom to", ""))
}

func TestLevenshteinSimilaritySymmetric(t *testing.T) {
	a, b := "zoom to", "zoon too"
	assert.Equal(t, levenshteinSimilarity(a, b), levenshteinSimilarity(b, a))
}
