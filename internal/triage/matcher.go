package triage

import (
	"regexp"
	"strings"
)

// normalizeText lowercases, strips punctuation (apostrophes survive so
// contractions keep matching) and collapses whitespace.
func normalizeText(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '\'':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func tokenSet(normalized string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(normalized) {
		set[strings.Trim(tok, "'")] = true
	}
	return set
}

// phraseMatcher compiles a phrase list into one alternation regexp with
// word boundaries. Compiled once at engine construction, never per call.
type phraseMatcher struct {
	re *regexp.Regexp
}

func newPhraseMatcher(phrases []string) *phraseMatcher {
	if len(phrases) == 0 {
		return &phraseMatcher{}
	}
	quoted := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = normalizeText(p)
		if p == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(p))
	}
	if len(quoted) == 0 {
		return &phraseMatcher{}
	}
	return &phraseMatcher{
		re: regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`),
	}
}

func (m *phraseMatcher) Match(normalized string) bool {
	return m.re != nil && m.re.MatchString(normalized)
}

func (m *phraseMatcher) Count(normalized string) int {
	if m.re == nil {
		return 0
	}
	return len(m.re.FindAllString(normalized, -1))
}

// keywordMatcher is a token-set membership check.
type keywordMatcher struct {
	words map[string]bool
}

func newKeywordMatcher(words []string) *keywordMatcher {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		w = normalizeText(w)
		if w != "" {
			set[w] = true
		}
	}
	return &keywordMatcher{words: set}
}

func (m *keywordMatcher) Match(tokens map[string]bool) bool {
	for w := range m.words {
		if tokens[w] {
			return true
		}
	}
	return false
}

func (m *keywordMatcher) Count(tokens map[string]bool) int {
	n := 0
	for w := range m.words {
		if tokens[w] {
			n++
		}
	}
	return n
}
