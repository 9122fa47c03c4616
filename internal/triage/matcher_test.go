package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello world"},
		{"I've had a   headache", "i've had a headache"},
		{"  Pain...  since MONDAY??  ", "pain since monday"},
		{"", ""},
		{"!!!", ""},
		{"3 days", "3 days"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeText(tt.in))
	}
}

func TestPhraseMatcherWordBoundaries(t *testing.T) {
	m := newPhraseMatcher([]string{"feels off", "can't afford"})

	assert.True(t, m.Match("it feels off today"))
	assert.True(t, m.Match("i can't afford a dentist"))
	assert.False(t, m.Match("the lights were off"))
	assert.False(t, m.Match("affordable care"))
}

func TestPhraseMatcherEmpty(t *testing.T) {
	m := newPhraseMatcher(nil)
	assert.False(t, m.Match("anything"))
	assert.Zero(t, m.Count("anything"))
}

func TestPhraseMatcherCount(t *testing.T) {
	m := newPhraseMatcher([]string{"sore throat", "no energy"})
	n := m.Count(normalizeText("Sore throat, no energy, and a sore throat again"))
	assert.Equal(t, 3, n)
}

func TestKeywordMatcher(t *testing.T) {
	m := newKeywordMatcher([]string{"headache", "fever"})
	tokens := tokenSet(normalizeText("A headache but no fever today"))

	require.True(t, m.Match(tokens))
	assert.Equal(t, 2, m.Count(tokens))

	assert.False(t, m.Match(tokenSet("headaches only")))
}
