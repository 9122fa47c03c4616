package triage

import "time"

// Extraction is one pass over an event's text.
type Extraction struct {
	Factors    []Factor
	Missing    *MissingInfo
	WeakSignal bool
}

var oralSymptomCodes = map[FactorCode]bool{
	CodeSymptomToothache:   true,
	CodeSymptomMouthPain:   true,
	CodeSymptomGumSwelling: true,
}

// extractionContext is what the missing-info rules see.
type extractionContext struct {
	intent      Intent
	primary     Domain
	hasSymptom  bool
	hasDuration bool
	hasSeverity bool
	oralContext bool
	hasInjury   bool
	hasVisible  bool
	empty       bool
	ambiguous   bool
	weakSignal  bool
}

type missingRule struct {
	Name  string
	When  func(extractionContext) bool
	Build func(extractionContext) MissingInfo
}

// missingRules is the single-pass decision tree for the one question we
// may ask per turn. Evaluated top to bottom, first match wins. The oral
// rules stay scoped to mouth or tooth symptoms: a headache with duration
// and a severity descriptor must get an answer, not a question.
var missingRules = []missingRule{
	{
		Name: "duration",
		When: func(c extractionContext) bool {
			return c.hasSymptom && !c.hasDuration && c.intent != IntentFollowUp
		},
		Build: func(c extractionContext) MissingInfo {
			return MissingInfo{
				Key:      "duration",
				Question: "How long has this been going on?",
				Domain:   DomainDuration,
				Priority: MissingPriorityHigh,
			}
		},
	},
	{
		Name: "onset_injury",
		When: func(c extractionContext) bool {
			return c.oralContext && !c.hasInjury
		},
		Build: func(c extractionContext) MissingInfo {
			return MissingInfo{
				Key:      "onset_injury",
				Question: "Did this start after a knock, an injury, or dental work?",
				Domain:   DomainMedical,
				Priority: MissingPriorityMedium,
			}
		},
	},
	{
		Name: "severity",
		When: func(c extractionContext) bool {
			return c.hasSymptom && !c.hasSeverity
		},
		Build: func(c extractionContext) MissingInfo {
			return MissingInfo{
				Key:      "severity",
				Question: "How bad is it right now?",
				Domain:   DomainSymptoms,
				Priority: MissingPriorityMedium,
			}
		},
	},
	{
		Name: "visible_signs",
		When: func(c extractionContext) bool {
			return c.oralContext && c.hasInjury && !c.hasVisible
		},
		Build: func(c extractionContext) MissingInfo {
			return MissingInfo{
				Key:      "visible_signs",
				Question: "Can you see anything, like swelling, redness, or a chipped tooth?",
				Domain:   DomainMedical,
				Priority: MissingPriorityMedium,
			}
		},
	},
	{
		Name: "clarify",
		When: func(c extractionContext) bool {
			return c.empty || c.ambiguous || c.weakSignal
		},
		Build: func(c extractionContext) MissingInfo {
			return MissingInfo{
				Key:      "clarify",
				Question: clarifyQuestionFor(c.primary),
				Domain:   c.primary,
				Priority: MissingPriorityLow,
			}
		},
	},
}

var clarifyQuestions = map[Domain]string{
	DomainSymptoms:  "Could you tell me a bit more about what you're feeling, and where?",
	DomainEmotional: "Could you tell me a bit more about how you've been feeling?",
	DomainCapacity:  "Could you tell me a bit more about your energy and sleep lately?",
	DomainAccess:    "Could you tell me a bit more about what's getting in the way of care?",
	DomainResources: "Could you tell me a bit more about what's stretching you right now?",
}

func clarifyQuestionFor(primary Domain) string {
	if q, ok := clarifyQuestions[primary]; ok {
		return q
	}
	return "Could you tell me a bit more about what's going on?"
}

// Extract scans text for factor cues restricted to the allowed domains.
// Safety codes bypass domain gating entirely. At most one MissingInfo is
// produced; while it is pending, non-safety factors are suppressed to
// force a follow-up turn.
func (e *Engine) Extract(ev Event, cls DomainClassification, now time.Time) Extraction {
	normalized := normalizeText(ev.Text)
	tokens := tokenSet(normalized)
	allowed := cls.AllowedDomains()

	var out Extraction

	// Safety pass first, independent of gating.
	selfHarm := false
	for _, code := range safetyCodeOrder {
		m, ok := e.safetyMatchers[code]
		if !ok || !m.Match(normalized) {
			continue
		}
		out.Factors = append(out.Factors, e.newFactor(code, "true", safetyConfidence, ev.ID, now))
		if code == CodeSafetySelfHarm {
			selfHarm = true
		}
	}
	if selfHarm {
		out.Factors = append(out.Factors, e.newFactor(CodeSafetyRedFlag, "true", safetyConfidence, ev.ID, now))
	}

	// Cue pass: phrases beat keywords.
	for _, c := range e.cues {
		conf := 0.0
		switch {
		case c.phrases.Match(normalized):
			conf = phraseConfidence
		case c.keywords.Match(tokens):
			conf = keywordConfidence
		default:
			continue
		}
		if conf < extractionConfidenceMin || !allowed[c.traits.Domain] {
			out.WeakSignal = true
			continue
		}
		value := c.cue.Value
		if value == "" {
			value = "true"
		}
		out.Factors = append(out.Factors, e.newFactor(c.cue.Code, value, conf, ev.ID, now))
	}

	if allowed[DomainDuration] {
		out.Factors = append(out.Factors, e.extractDuration(normalized, ev.ID, now)...)
	}

	ctx := e.buildContext(ev, cls, normalized, out)
	for _, rule := range missingRules {
		if rule.When(ctx) {
			mi := rule.Build(ctx)
			out.Missing = &mi
			break
		}
	}

	if out.Missing != nil {
		out.Factors = keepSafetyOnly(out.Factors)
	} else if len(out.Factors) == 0 && normalized != "" {
		// Nothing recognised but no question fired either; record the gap
		// so the profile shows an unresolved report.
		out.Factors = append(out.Factors, e.newFactor(CodeNeedsInformation, "true", extractionConfidenceMin, ev.ID, now))
	}
	return out
}

func (e *Engine) buildContext(ev Event, cls DomainClassification, normalized string, out Extraction) extractionContext {
	ctx := extractionContext{
		intent:     ev.Intent,
		primary:    cls.Primary.Domain,
		empty:      normalized == "",
		ambiguous:  e.ambiguous.Match(normalized),
		weakSignal: out.WeakSignal && len(out.Factors) == 0,
	}
	for _, f := range out.Factors {
		if oralSymptomCodes[f.Code] {
			ctx.oralContext = true
		}
		// Severity and trend codes live in the symptom domain but they
		// describe a symptom rather than report one.
		if f.Domain == DomainSymptoms && !descriptorCodes[f.Code] {
			ctx.hasSymptom = true
		}
		switch f.Code {
		case CodeDurationToday, CodeDurationFewDays, CodeDurationWeeks, CodeDurationChronic, CodeDurationRecurring:
			ctx.hasDuration = true
		case CodeSeverityMild, CodeSeverityModerate, CodeSeveritySevere:
			ctx.hasSeverity = true
		case CodeContextInjury:
			ctx.hasInjury = true
		case CodeContextVisibleSign:
			ctx.hasVisible = true
		}
	}
	return ctx
}

var descriptorCodes = map[FactorCode]bool{
	CodeSeverityMild:     true,
	CodeSeverityModerate: true,
	CodeSeveritySevere:   true,
	CodeTrendWorse:       true,
	CodeTrendBetter:      true,
	CodeTrendStatic:      true,
}

func keepSafetyOnly(factors []Factor) []Factor {
	var kept []Factor
	for _, f := range factors {
		if f.Domain == DomainSafety {
			kept = append(kept, f)
		}
	}
	return kept
}
