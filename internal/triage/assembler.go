package triage

import (
	"sort"
	"strings"
)

// Follow-up choice tables per missing-info key. Selecting a choice writes
// the listed factors through the same merge path as organic extraction;
// the service stamps event id and timestamp at apply time.
func followUpChoicesFor(key string) []FollowUpChoice {
	template := func(code FactorCode, value string) Factor {
		traits, _ := TraitsFor(code)
		return Factor{
			Code:          code,
			Domain:        traits.Domain,
			Type:          traits.Type,
			Value:         value,
			Confidence:    followUpWriteConfidence,
			Horizon:       traits.Horizon,
			Modifiability: traits.Modifiability,
		}
	}
	switch key {
	case "duration":
		return []FollowUpChoice{
			{Label: "Today", WritesFactors: []Factor{template(CodeDurationToday, "true")}},
			{Label: "A few days", WritesFactors: []Factor{template(CodeDurationFewDays, "true")}},
			{Label: "More than a week", WritesFactors: []Factor{template(CodeDurationWeeks, "true")}},
			{Label: "On and off for months", WritesFactors: []Factor{template(CodeDurationRecurring, "true"), template(CodeDurationChronic, "true")}},
		}
	case "severity":
		return []FollowUpChoice{
			{Label: "Mild", WritesFactors: []Factor{template(CodeSeverityMild, "mild")}},
			{Label: "Moderate", WritesFactors: []Factor{template(CodeSeverityModerate, "moderate")}},
			{Label: "Severe", WritesFactors: []Factor{template(CodeSeveritySevere, "severe")}},
		}
	case "onset_injury":
		return []FollowUpChoice{
			{Label: "Yes, after a knock or injury", WritesFactors: []Factor{template(CodeContextInjury, "true")}},
			{Label: "No, it came out of nowhere", WritesFactors: []Factor{template(CodeKnowledgeUnsureCause, "true")}},
		}
	case "visible_signs":
		return []FollowUpChoice{
			{Label: "Yes, I can see something", WritesFactors: []Factor{template(CodeContextVisibleSign, "true")}},
			{Label: "No, nothing visible", WritesFactors: nil},
		}
	default:
		return []FollowUpChoice{
			{Label: "It's about how my body feels", WritesFactors: nil},
			{Label: "It's about getting care", WritesFactors: nil},
			{Label: "It's something else", WritesFactors: nil},
		}
	}
}

// Symptom-keyed "what to do now" actions.
var actionTable = map[FactorCode][]ActionSuggestion{
	CodeSymptomHeadache: {
		{Title: "Ease the load on your head", Steps: []string{"Drink a full glass of water", "Dim screens and bright lights for a while", "Rest somewhere quiet if you can"}, Effort: "low", Time: "15 min", Contexts: []string{"home", "work"}},
		{Title: "Simple pain relief", Steps: []string{"Ask a pharmacist about paracetamol or ibuprofen", "Follow the dose on the packet", "Note whether it helps"}, Effort: "low", Time: "10 min", Contexts: []string{"pharmacy"}},
		{Title: "Track the pattern", Steps: []string{"Jot down when it starts and stops", "Note anything that sets it off"}, Effort: "low", Time: "2 min", Contexts: []string{"anywhere"}},
	},
	CodeSymptomToothache: {
		{Title: "Calm the tooth down", Steps: []string{"Rinse with warm salt water", "Avoid very hot or cold food and drink", "Chew on the other side"}, Effort: "low", Time: "5 min", Contexts: []string{"home"}},
		{Title: "Pharmacy relief", Steps: []string{"Ask a pharmacist about pain relief and a numbing gel", "Follow the dose on the packet"}, Effort: "low", Time: "15 min", Contexts: []string{"pharmacy"}},
		{Title: "Line up a dentist", Steps: []string{"Call your dental practice for the next available slot", "Mention if the pain wakes you at night"}, Effort: "medium", Time: "10 min", Contexts: []string{"phone"}},
	},
	CodeSymptomSoreThroat: {
		{Title: "Soothe your throat", Steps: []string{"Sip warm drinks with honey", "Try throat lozenges", "Rest your voice"}, Effort: "low", Time: "ongoing", Contexts: []string{"home"}},
		{Title: "Keep fluids up", Steps: []string{"Drink regularly through the day", "Avoid smoky rooms"}, Effort: "low", Time: "ongoing", Contexts: []string{"home", "work"}},
	},
	CodeSymptomBackPain: {
		{Title: "Keep gently moving", Steps: []string{"Avoid long stretches in one position", "Short, easy walks through the day"}, Effort: "medium", Time: "ongoing", Contexts: []string{"home", "work"}},
		{Title: "Heat and relief", Steps: []string{"Try a heat pack on the sore area", "Ask a pharmacist about pain relief"}, Effort: "low", Time: "20 min", Contexts: []string{"home", "pharmacy"}},
	},
	CodeSymptomStomachPain: {
		{Title: "Give your gut a break", Steps: []string{"Stick to plain food and water today", "Skip alcohol and caffeine"}, Effort: "low", Time: "today", Contexts: []string{"home"}},
		{Title: "Watch for changes", Steps: []string{"Note where the pain sits and if it moves", "Check for fever"}, Effort: "low", Time: "5 min", Contexts: []string{"anywhere"}},
	},
}

var genericActions = []ActionSuggestion{
	{Title: "Rest and fluids", Steps: []string{"Take it easier than usual today", "Keep water within reach"}, Effort: "low", Time: "today", Contexts: []string{"home"}},
	{Title: "Keep a short note", Steps: []string{"Write down what you're noticing once a day", "Bring the note if you see someone about it"}, Effort: "low", Time: "2 min", Contexts: []string{"anywhere"}},
}

// Symptom-keyed "if it gets worse" warnings.
var worseWarningTable = map[FactorCode][]string{
	CodeSymptomHeadache: {
		"A sudden, worst-ever headache needs emergency care.",
		"Headache with a stiff neck, rash, or confusion needs urgent care.",
	},
	CodeSymptomToothache: {
		"Facial swelling or fever alongside tooth pain needs same-day dental or urgent care.",
		"Pain spreading to your eye or neck needs urgent attention.",
	},
	CodeSymptomStomachPain: {
		"Severe pain that localises to one spot, or pain with repeated vomiting, needs urgent care.",
	},
	CodeSymptomFever: {
		"A fever that won't settle after a few days, or comes with a rash or confusion, needs medical review.",
	},
	CodeSymptomBreathless: {
		"Breathlessness at rest or that worsens quickly is an emergency.",
	},
}

var genericWorseWarnings = []string{
	"If this suddenly gets much worse, or new symptoms appear, get medical advice promptly.",
}

// Transparency grouping: each chip gets a small per-group boost on top of
// factor confidence so body signals rank first at equal confidence.
var transparencyGroups = []struct {
	Name    string
	Boost   float64
	Belongs func(code FactorCode, domain Domain) bool
}{
	{"body_signals", 0.15, func(c FactorCode, d Domain) bool {
		return d == DomainSymptoms || d == DomainDuration || d == DomainSafety
	}},
	{"constraints", 0.10, func(c FactorCode, d Domain) bool {
		return d == DomainAccess || d == DomainResources || d == DomainCapacity
	}},
	{"strengths", 0.08, func(c FactorCode, d Domain) bool {
		return c == CodeStrengthActiveCoping || c == CodeSocialPresent || c == CodeBehaviorMonitoring
	}},
	{"actions", 0.05, func(c FactorCode, d Domain) bool {
		return strings.HasPrefix(string(c), "behavior_") || strings.HasPrefix(string(c), "relief_") || d == DomainGoals
	}},
	{"context", 0.02, func(c FactorCode, d Domain) bool { return true }},
}

func chipLabel(code FactorCode) string {
	return strings.ReplaceAll(string(code), "_", " ")
}

func buildTransparency(used []UsedFactor) TransparencyModel {
	chips := make([]TransparencyChip, 0, len(used))
	for _, u := range used {
		group, boost := "context", 0.02
		for _, g := range transparencyGroups {
			if g.Belongs(u.Code, u.Domain) {
				group, boost = g.Name, g.Boost
				break
			}
		}
		chips = append(chips, TransparencyChip{
			Group:  group,
			Label:  chipLabel(u.Code),
			Code:   u.Code,
			Weight: u.Confidence + boost,
		})
	}
	sort.Slice(chips, func(i, j int) bool {
		if chips[i].Weight != chips[j].Weight {
			return chips[i].Weight > chips[j].Weight
		}
		return chips[i].Code < chips[j].Code
	})
	return TransparencyModel{
		Chips:    chips,
		Controls: []string{"forget_a_signal", "pause_profile", "see_full_history"},
	}
}

// Answer fragments keyed by duration and trend codes.
var durationFragments = map[FactorCode]string{
	CodeDurationToday:     "it started today",
	CodeDurationFewDays:   "it's been with you for a few days",
	CodeDurationWeeks:     "it's been going on for over a week",
	CodeDurationChronic:   "it's been part of your life for a long while",
	CodeDurationRecurring: "it keeps coming back",
}

var severityFragments = map[FactorCode]string{
	CodeSeverityMild:     "and it's on the mild side",
	CodeSeverityModerate: "and it's strong enough to get in your way",
	CodeSeveritySevere:   "and it's hitting you hard",
}

// Assemble composes the final payload for the response mode the snapshot
// selected. The assembler is template-based and complete on its own; any
// generative phrasing happens outside the core, after this.
func (e *Engine) Assemble(ev Event, profile ComplexityProfile, snap StateSnapshot, route RouteNextStep) ResponseModel {
	resp := ResponseModel{
		Mode:         ResponseMode(snap.NextAction),
		Transparency: buildTransparency(snap.UsedFactors),
	}

	switch snap.NextAction {
	case ActionLogOnly:
		resp.Confirmation = confirmationLogOnly

	case ActionSafetyEscalation:
		resp.Confirmation = confirmationEscalation
		resp.RouterCategory = route.Category
		resp.SafetyNet = route.SafetyNet
		if resp.SafetyNet == "" {
			resp.SafetyNet = snap.SafetyCopy
		}
		resp.KeyFactors = snap.WhatMatters

	case ActionAskFollowUp:
		resp.Confirmation = e.confirmationFor(profile)
		if snap.FollowUp != nil {
			resp.FollowUpPlan = &FollowUpPlan{
				Key:      snap.FollowUp.Key,
				Question: snap.FollowUp.Question,
				Choices:  followUpChoicesFor(snap.FollowUp.Key),
			}
		}
		resp.KeyFactors = snap.WhatMatters

	default: // ActionAnswer
		resp.Confirmation = e.confirmationFor(profile)
		resp.Answer = e.composeAnswer(profile, snap)
		resp.KeyFactors = snap.WhatMatters
		symptom := primarySymptom(profile)
		resp.WhatToDoNow = actionsFor(symptom)
		resp.WhatIfWorse = worseWarningsFor(symptom)
		resp.RouterCategory = route.Category
		resp.SafetyNet = route.SafetyNet
	}
	return resp
}

// primarySymptom picks the highest-priority reported symptom, skipping
// severity/trend descriptors.
func primarySymptom(profile ComplexityProfile) FactorCode {
	for _, f := range profile.SortedFactors() {
		if f.Domain == DomainSymptoms && !descriptorCodes[f.Code] {
			return f.Code
		}
	}
	return ""
}

func (e *Engine) confirmationFor(profile ComplexityProfile) string {
	if code := primarySymptom(profile); code != "" {
		if opener, ok := confirmationOpeners[code]; ok {
			return opener
		}
	}
	return confirmationGeneric
}

// composeAnswer builds the multi-sentence answer: what was heard, for how
// long, how bad, which way it is trending, and the risk-appropriate
// decision sentence. Never a diagnosis.
func (e *Engine) composeAnswer(profile ComplexityProfile, snap StateSnapshot) string {
	var parts []string

	symptom := primarySymptom(profile)
	if symptom != "" {
		if s, ok := factorSentences[symptom]; ok {
			parts = append(parts, s)
		}
	}

	var timing []string
	for _, code := range []FactorCode{CodeDurationToday, CodeDurationFewDays, CodeDurationWeeks, CodeDurationChronic, CodeDurationRecurring} {
		if _, ok := profile.Factors[code]; ok {
			timing = append(timing, durationFragments[code])
		}
	}
	for _, code := range []FactorCode{CodeSeveritySevere, CodeSeverityModerate, CodeSeverityMild} {
		if _, ok := profile.Factors[code]; ok {
			timing = append(timing, severityFragments[code])
			break
		}
	}
	if len(timing) > 0 {
		parts = append(parts, "From what you've shared, "+strings.Join(timing, ", ")+".")
	}

	if _, ok := profile.Factors[CodeContextInjury]; ok {
		parts = append(parts, "Starting after an injury is useful to mention to whoever you see.")
	}
	if _, ok := profile.Factors[CodeContextFoodTrigger]; ok {
		parts = append(parts, "The link to eating or drinking is a useful clue to mention.")
	}

	decision := decisionSentences[snap.Risk]
	if _, worse := profile.Factors[CodeTrendWorse]; worse && snap.Risk != RiskUrgent {
		decision += decisionTrendWorse
	}
	parts = append(parts, decision)

	return strings.Join(parts, " ")
}

func actionsFor(symptom FactorCode) []ActionSuggestion {
	if acts, ok := actionTable[symptom]; ok {
		if len(acts) > 3 {
			acts = acts[:3]
		}
		return acts
	}
	return genericActions
}

func worseWarningsFor(symptom FactorCode) []string {
	if w, ok := worseWarningTable[symptom]; ok {
		return w
	}
	return genericWorseWarnings
}
