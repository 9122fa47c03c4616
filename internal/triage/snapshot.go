package triage

import "time"

const maxWhatMatters = 3

// Risk and friction code sets referenced by the band rules.
var (
	riskHighCodes = map[FactorCode]bool{
		CodeSymptomBreathless: true,
		CodeSymptomDizziness:  true,
	}
	riskMediumCodes = map[FactorCode]bool{
		CodeSymptomPainGeneric: true,
		CodeSymptomHeadache:    true,
		CodeSymptomToothache:   true,
		CodeSymptomMouthPain:   true,
		CodeSymptomGumSwelling: true,
		CodeSymptomStomachPain: true,
		CodeSymptomBackPain:    true,
		CodeSymptomJointPain:   true,
		CodeSymptomNausea:      true,
		CodeSymptomFever:       true,
		CodeEmotionPanic:       true,
		CodeEmotionAnxiety:     true,
		CodeEmotionStress:      true,
	}
	frictionHighCodes = map[FactorCode]bool{
		CodeAccessCostBarrier:        true,
		CodeAccessAppointmentBarrier: true,
		CodeResourceTimePressure:     true,
		CodeResourceCaregiving:       true,
		CodeCapacityFatigue:          true,
		CodeCapacityPoorSleep:        true,
	}
	frictionMediumCodes = map[FactorCode]bool{
		CodeResourceFinancialStrain: true,
		CodeCapacityLowFocus:        true,
		CodeSocialLimited:           true,
	}
)

// bandRule matches factors and names the band it awards. Rules are
// evaluated top to bottom; the first rule with a match wins outright,
// there is no blending.
type bandRule[B ~string] struct {
	Name  string
	Band  B
	Match func(f Factor) bool
}

var riskRules = []bandRule[RiskBand]{
	{Name: "safety_signal", Band: RiskUrgent, Match: func(f Factor) bool {
		return f.Domain == DomainSafety
	}},
	{Name: "high_risk_symptom", Band: RiskHigh, Match: func(f Factor) bool {
		return riskHighCodes[f.Code] && f.Confidence >= highRiskConfidenceMin
	}},
	{Name: "medium_risk_signal", Band: RiskMedium, Match: func(f Factor) bool {
		return riskMediumCodes[f.Code]
	}},
}

var frictionRules = []bandRule[FrictionBand]{
	{Name: "high_friction", Band: FrictionHigh, Match: func(f Factor) bool {
		return frictionHighCodes[f.Code] && f.Confidence >= highFrictionConfidenceMin
	}},
	{Name: "medium_friction", Band: FrictionMedium, Match: func(f Factor) bool {
		return frictionMediumCodes[f.Code]
	}},
}

func evalBandRules[B ~string](rules []bandRule[B], factors []Factor, fallback B) (B, []Factor) {
	for _, rule := range rules {
		var matched []Factor
		for _, f := range factors {
			if rule.Match(f) {
				matched = append(matched, f)
			}
		}
		if len(matched) > 0 {
			return rule.Band, matched
		}
	}
	return fallback, nil
}

// uncertaintyFor grades how well this event was understood. It runs over
// the event's own extraction (gated at extractionConfidenceMin), not the
// merged profile — profile factors already cleared the stricter profile
// gate, so an average over them could never dip below it.
func uncertaintyFor(factors []Factor, missing *MissingInfo) UncertaintyBand {
	if missing != nil {
		return UncertaintyHigh
	}
	if len(factors) == 0 {
		return UncertaintyMedium
	}
	total := 0.0
	for _, f := range factors {
		total += f.Confidence
	}
	if total/float64(len(factors)) < profileConfidenceMin {
		return UncertaintyMedium
	}
	return UncertaintyLow
}

// BuildSnapshot derives the per-event judgment. Risk and friction read
// the merged profile; uncertainty reads eventFactors, the factors this
// event extracted. askExhausted is set by the caller once the
// conversation has used up its follow-up question budget; it forces an
// answer turn.
func BuildSnapshot(ev Event, eventFactors []Factor, profile ComplexityProfile, missing *MissingInfo, askExhausted bool, now time.Time) StateSnapshot {
	factors := profile.SortedFactors()

	risk, riskMatched := evalBandRules(riskRules, factors, RiskLow)
	friction, frictionMatched := evalBandRules(frictionRules, factors, FrictionLow)
	uncertainty := uncertaintyFor(eventFactors, missing)

	snap := StateSnapshot{
		EventID:     ev.ID,
		CreatedAt:   now,
		Intent:      ev.Intent,
		Risk:        risk,
		Friction:    friction,
		Uncertainty: uncertainty,
		WhatMatters: whatMattersBullets(factors),
	}

	switch {
	case risk == RiskUrgent:
		snap.NextAction = ActionSafetyEscalation
	case ev.Intent == IntentLogOnly:
		snap.NextAction = ActionLogOnly
	case uncertainty == UncertaintyHigh && missing != nil && !askExhausted:
		snap.NextAction = ActionAskFollowUp
		snap.FollowUp = missing
	default:
		snap.NextAction = ActionAnswer
	}

	if risk == RiskUrgent {
		snap.SafetyCopy = safetyCopyUrgent
		if _, ok := profile.Factors[CodeSafetySelfHarm]; ok {
			snap.SafetyCopy = safetyCopyCrisis
		}
	}

	snap.UsedFactors = usedFactors(riskMatched, frictionMatched, factors)
	return snap
}

// whatMattersBullets maps the ordered factors to fixed sentences, keeping
// up to three unique ones. Factors without copy fall back to a generic
// domain sentence.
func whatMattersBullets(factors []Factor) []string {
	var bullets []string
	seen := make(map[string]bool)
	for _, f := range factors {
		sentence, ok := factorSentences[f.Code]
		if !ok {
			sentence = domainFallbackSentences[f.Domain]
		}
		if sentence == "" || seen[sentence] {
			continue
		}
		seen[sentence] = true
		bullets = append(bullets, sentence)
		if len(bullets) == maxWhatMatters {
			break
		}
	}
	return bullets
}

func usedFactors(riskMatched, frictionMatched, all []Factor) []UsedFactor {
	seen := make(map[FactorCode]bool)
	var used []UsedFactor
	add := func(fs []Factor) {
		for _, f := range fs {
			if seen[f.Code] {
				continue
			}
			seen[f.Code] = true
			used = append(used, UsedFactor{Code: f.Code, Domain: f.Domain, Confidence: f.Confidence})
		}
	}
	add(riskMatched)
	add(frictionMatched)
	// Bullet factors justified the summary even when no band rule fired.
	n := 0
	for _, f := range all {
		if n == maxWhatMatters {
			break
		}
		if _, hasCopy := factorSentences[f.Code]; hasCopy && !seen[f.Code] {
			seen[f.Code] = true
			used = append(used, UsedFactor{Code: f.Code, Domain: f.Domain, Confidence: f.Confidence})
			n++
		}
	}
	return used
}
