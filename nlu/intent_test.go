package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinadenenko/voice-command/command"
)

func TestMatchIntentSubstringBoost(t *testing.T) {
	d := command.CommandDescriptor{Name: "zoom_to", TriggerPhrases: []string{"zoom to"}}
	m, ok := matchIntent("please zoom to fifteen", []command.CommandDescriptor{d})
	require.True(t, ok)
	assert.GreaterOrEqual(t, m.score, 0.8)
	assert.Equal(t, "zoom_to", m.descriptor.Name)
}

func TestMatchIntentFirstSeenTieBreak(t *testing.T) {
	a := command.CommandDescriptor{Name: "alpha", TriggerPhrases: []string{"xyz"}}
	b := command.CommandDescriptor{Name: "beta", TriggerPhrases: []string{"xyz"}}
	m, ok := matchIntent("xyz", []command.CommandDescriptor{a, b})
	require.True(t, ok)
	assert.Equal(t, "alpha", m.descriptor.Name)
}

func TestMatchIntentNoDescriptors(t *testing.T) {
	_, ok := matchIntent("anything", nil)
	assert.False(t, ok)
}

func TestMatchIntentFallsBackToName(t *testing.T) {
	d := command.CommandDescriptor{Name: "zoom_to"}
	m, ok := matchIntent("zoom to", []command.CommandDescriptor{d})
	require.True(t, ok)
	assert.Equal(t, 1.0, m.score)
}
