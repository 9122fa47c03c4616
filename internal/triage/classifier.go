package triage

import "sort"

// Classify scores free text against the domain lexicon. Hard safety
// phrases short-circuit everything and return the safety domain at fixed
// confidence. For follow-up turns the domain inferred from the previous
// question gets a fixed bias to keep multi-turn coherence.
func (e *Engine) Classify(text string, intent Intent, previousQuestion string) DomainClassification {
	normalized := normalizeText(text)

	if code, ok := e.matchSafety(normalized); ok {
		return DomainClassification{
			Primary:   DomainTag{Domain: DomainSafety, Confidence: safetyConfidence},
			Rationale: "safety signal detected: " + string(code),
		}
	}

	scores := e.scoreDomains(normalized)
	if intent == IntentFollowUp && previousQuestion != "" {
		if prev, ok := topScoredDomain(e.scoreDomains(normalizeText(previousQuestion))); ok {
			scores[prev] += followUpDomainBias
		}
	}

	total := 0.0
	for _, s := range scores {
		total += s
	}
	if total == 0 {
		return DomainClassification{
			Primary:   DomainTag{Domain: DomainUnknown, Confidence: 0},
			Rationale: "no recognisable signal in the text",
		}
	}

	tags := make([]DomainTag, 0, len(scores))
	for d, s := range scores {
		if s > 0 {
			tags = append(tags, DomainTag{Domain: d, Confidence: s / total})
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Confidence != tags[j].Confidence {
			return tags[i].Confidence > tags[j].Confidence
		}
		return tags[i].Domain.Priority() < tags[j].Domain.Priority()
	})

	top := tags[0]
	if top.Confidence >= primaryConfidenceMin {
		return DomainClassification{
			Primary:   top,
			Secondary: capTags(tags[1:], 2),
		}
	}

	// Ambiguous input degrades to unknown but keeps the candidates.
	return DomainClassification{
		Primary:   DomainTag{Domain: DomainUnknown, Confidence: top.Confidence},
		Secondary: capTags(tags, 2),
		Rationale: "no domain reached the confidence threshold",
	}
}

// scoreDomains counts keyword matches at weight 1 and phrase matches at
// weight 2, both word-boundary based.
func (e *Engine) scoreDomains(normalized string) map[Domain]float64 {
	tokens := tokenSet(normalized)
	scores := make(map[Domain]float64)
	for d, m := range e.domainKeywords {
		if n := m.Count(tokens); n > 0 {
			scores[d] += keywordWeight * float64(n)
		}
	}
	for d, m := range e.domainPhrases {
		if n := m.Count(normalized); n > 0 {
			scores[d] += phraseWeight * float64(n)
		}
	}
	return scores
}

func topScoredDomain(scores map[Domain]float64) (Domain, bool) {
	var best Domain
	bestScore := 0.0
	for d, s := range scores {
		if s > bestScore || (s == bestScore && s > 0 && d.Priority() < best.Priority()) {
			best, bestScore = d, s
		}
	}
	return best, bestScore > 0
}

func capTags(tags []DomainTag, n int) []DomainTag {
	if len(tags) > n {
		tags = tags[:n]
	}
	if len(tags) == 0 {
		return nil
	}
	out := make([]DomainTag, len(tags))
	copy(out, tags)
	return out
}
