package triage

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Fixed thresholds and weights of the pipeline.
const (
	keywordWeight = 1.0
	phraseWeight  = 2.0

	extractionConfidenceMin = 0.6
	profileConfidenceMin    = 0.7

	phraseConfidence  = 0.85
	keywordConfidence = 0.7
	safetyConfidence  = 0.9

	primaryConfidenceMin    = 0.6
	followUpDomainBias      = 1.5
	followUpWriteConfidence = 0.95

	highRiskConfidenceMin       = 0.8
	highFrictionConfidenceMin   = 0.75
	mediumFrictionConfidenceMin = 0.6
)

// safetyCodeOrder fixes detection order so the first matching safety code
// is deterministic. Self-harm first: it also drives crisis routing.
var safetyCodeOrder = []FactorCode{
	CodeSafetySelfHarm,
	CodeSafetyChestPain,
	CodeSafetyBreathless,
	CodeSafetySevereBleed,
	CodeSafetyLossOfConsc,
}

type compiledCue struct {
	cue      FactorCue
	phrases  *phraseMatcher
	keywords *keywordMatcher
	traits   factorTraits
}

// Engine is the stateless triage pipeline. Construct once with NewEngine;
// all lexicon tables are compiled into matchers up front and the value is
// safe for concurrent use.
type Engine struct {
	lexicon *Lexicon

	domainKeywords map[Domain]*keywordMatcher
	domainPhrases  map[Domain]*phraseMatcher
	safetyMatchers map[FactorCode]*phraseMatcher
	cues           []compiledCue
	ambiguous      *phraseMatcher
	durationRe     *regexp.Regexp
	duration       durationMatchers
}

// NewEngine compiles the lexicon. It fails when a cue references a factor
// code without traits, so a vocabulary mistake surfaces at startup rather
// than deep in the profile builder.
func NewEngine(lex *Lexicon) (*Engine, error) {
	if lex == nil {
		lex = DefaultLexicon()
	}

	e := &Engine{
		lexicon:        lex,
		domainKeywords: make(map[Domain]*keywordMatcher, len(lex.DomainKeywords)),
		domainPhrases:  make(map[Domain]*phraseMatcher, len(lex.DomainPhrases)),
		safetyMatchers: make(map[FactorCode]*phraseMatcher, len(lex.SafetyPhrases)),
		ambiguous:      newPhraseMatcher(lex.AmbiguousCues),
		durationRe:     regexp.MustCompile(`\b(\d+)\s*(hour|hr|day|week|month|year)s?\b`),
		duration:       newDurationMatchers(),
	}

	for d, words := range lex.DomainKeywords {
		e.domainKeywords[d] = newKeywordMatcher(words)
	}
	for d, phrases := range lex.DomainPhrases {
		e.domainPhrases[d] = newPhraseMatcher(phrases)
	}
	for code, phrases := range lex.SafetyPhrases {
		if _, ok := TraitsFor(code); !ok {
			return nil, fmt.Errorf("safety table references unknown factor code %q", code)
		}
		e.safetyMatchers[code] = newPhraseMatcher(phrases)
	}
	for _, cue := range lex.FactorCues {
		traits, ok := TraitsFor(cue.Code)
		if !ok {
			return nil, fmt.Errorf("cue table references unknown factor code %q", cue.Code)
		}
		e.cues = append(e.cues, compiledCue{
			cue:      cue,
			phrases:  newPhraseMatcher(cue.Phrases),
			keywords: newKeywordMatcher(cue.Keywords),
			traits:   traits,
		})
	}
	return e, nil
}

// newFactor builds a factor with its fixed traits. Callers must have
// validated the code; NewEngine guarantees that for every cue table entry.
func (e *Engine) newFactor(code FactorCode, value string, confidence float64, eventID string, now time.Time) Factor {
	traits, _ := TraitsFor(code)
	return Factor{
		ID:            uuid.NewString(),
		Code:          code,
		Domain:        traits.Domain,
		Type:          traits.Type,
		Value:         value,
		Confidence:    confidence,
		Horizon:       traits.Horizon,
		Modifiability: traits.Modifiability,
		SourceEventID: eventID,
		CreatedAt:     now,
	}
}

// matchSafety returns the first matching safety code in fixed order.
func (e *Engine) matchSafety(normalized string) (FactorCode, bool) {
	for _, code := range safetyCodeOrder {
		if m, ok := e.safetyMatchers[code]; ok && m.Match(normalized) {
			return code, true
		}
	}
	return "", false
}
