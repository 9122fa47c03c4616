package triage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lexicon holds every static scoring table the engine compiles at
// construction. Tables are plain data so an overlay file can extend them.
type Lexicon struct {
	DomainKeywords map[Domain][]string
	DomainPhrases  map[Domain][]string
	SafetyPhrases  map[FactorCode][]string
	FactorCues     []FactorCue
	AmbiguousCues  []string
}

// FactorCue describes how one factor code is detected: phrases first
// (confidence 0.85), then bare keywords (confidence 0.7).
type FactorCue struct {
	Code     FactorCode
	Phrases  []string
	Keywords []string
	Value    string
}

// lexiconOverlay is the YAML shape for extra per-domain vocabulary merged
// additively into the built-in tables.
type lexiconOverlay struct {
	DomainKeywords map[string][]string `yaml:"domain_keywords"`
	DomainPhrases  map[string][]string `yaml:"domain_phrases"`
}

// LoadOverlay merges extra keywords and phrases from a YAML file. Unknown
// domain names are rejected so a typo cannot silently drop vocabulary.
func (l *Lexicon) LoadOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read lexicon overlay: %w", err)
	}
	var ov lexiconOverlay
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return fmt.Errorf("parse lexicon overlay: %w", err)
	}
	for name, words := range ov.DomainKeywords {
		d := Domain(name)
		if _, ok := domainPriority[d]; !ok || d == DomainUnknown {
			return fmt.Errorf("lexicon overlay: unknown domain %q", name)
		}
		l.DomainKeywords[d] = append(l.DomainKeywords[d], words...)
	}
	for name, phrases := range ov.DomainPhrases {
		d := Domain(name)
		if _, ok := domainPriority[d]; !ok || d == DomainUnknown {
			return fmt.Errorf("lexicon overlay: unknown domain %q", name)
		}
		l.DomainPhrases[d] = append(l.DomainPhrases[d], phrases...)
	}
	return nil
}

// DefaultLexicon returns the built-in tables.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		DomainKeywords: map[Domain][]string{
			DomainSymptoms: {
				"headache", "migraine", "toothache", "pain", "ache", "aching",
				"sore", "fever", "cough", "nausea", "nauseous", "vomiting",
				"rash", "itchy", "dizzy", "dizziness", "swollen", "swelling",
				"bleeding", "cramp", "hurts", "hurt", "throbbing", "stiff",
			},
			DomainDuration: {
				"days", "weeks", "months", "years", "yesterday", "today",
				"tonight", "morning", "constantly", "always", "again",
			},
			DomainMedical: {
				"medication", "medicine", "pills", "ibuprofen", "paracetamol",
				"antibiotics", "diabetes", "asthma", "pregnant", "pregnancy",
				"allergy", "allergic", "injury", "injured", "dentist", "doctor",
				"prescription", "dose",
			},
			DomainEmotional: {
				"anxious", "anxiety", "stressed", "stress", "overwhelmed",
				"panic", "panicking", "worried", "worrying", "sad", "down",
				"depressed", "hopeless", "irritable", "tearful",
			},
			DomainCapacity: {
				"exhausted", "tired", "fatigue", "fatigued", "drained",
				"sleep", "sleeping", "insomnia", "energy", "focus",
				"concentrate", "concentration",
			},
			DomainAccess: {
				"appointment", "gp", "clinic", "waitlist", "afford",
				"insurance", "uninsured", "transport", "telehealth",
			},
			DomainResources: {
				"money", "broke", "bills", "rent", "budget", "work",
				"shifts", "overtime", "deadline", "caring", "carer",
				"childcare", "kids",
			},
			DomainEnvironment: {
				"heatwave", "heat", "cold", "freezing", "smoke", "smoky",
				"mould", "mold", "dust", "chemicals", "fumes", "pollen",
			},
			DomainSocial: {
				"alone", "lonely", "partner", "family", "friends",
				"neighbour", "neighbor", "support",
			},
			DomainKnowledge: {
				"why", "cause", "causes", "normal", "serious", "research",
				"googled", "natural", "remedies", "herbal",
			},
			DomainGoals: {
				"want", "need", "goal", "hoping", "relief", "fix",
				"manage", "avoid", "prevent",
			},
			DomainSafety: {
				"suicidal", "overdose", "emergency",
			},
		},
		DomainPhrases: map[Domain][]string{
			DomainSymptoms: {
				"throbbing headache", "sore throat", "stomach ache",
				"back pain", "joint pain", "short of breath", "feeling sick",
				"my tooth hurts", "bleeding gums", "mouth ulcer",
				"getting worse", "getting better",
			},
			DomainDuration: {
				"for days", "a few days", "since yesterday", "since this morning",
				"on and off", "comes and goes", "all week",
			},
			DomainMedical: {
				"side effects", "existing condition", "high blood pressure",
				"after i fell", "took painkillers", "on antibiotics",
			},
			DomainEmotional: {
				"panic attack", "worried sick", "on edge", "feeling down",
				"can't cope", "burnt out",
			},
			DomainCapacity: {
				"no energy", "can't sleep", "barely slept", "can't focus",
				"running on empty", "wiped out",
			},
			DomainAccess: {
				"can't afford", "see a doctor", "get an appointment",
				"no appointments", "waiting list", "can't get to",
			},
			DomainResources: {
				"money is tight", "can't take time off", "no time",
				"too busy", "looking after", "caring for",
			},
			DomainEnvironment: {
				"at work", "in the house", "air quality", "out in the sun",
			},
			DomainSocial: {
				"no one to help", "on my own", "by myself", "no support",
			},
			DomainKnowledge: {
				"is this serious", "is this normal", "should i worry",
				"don't know why", "not sure what", "what causes",
			},
			DomainGoals: {
				"want the pain to stop", "need this sorted", "can't miss work",
				"get back to normal", "just want to sleep",
			},
		},
		// Safety phrases short-circuit classification and are always
		// allowed through domain gating. Matched before any scoring.
		SafetyPhrases: map[FactorCode][]string{
			CodeSafetySelfHarm: {
				"hurt myself", "harm myself", "kill myself", "end my life",
				"end it all", "suicidal", "don't want to be here",
				"better off without me", "self harm",
			},
			CodeSafetyChestPain: {
				"chest pain", "pain in my chest", "crushing chest",
				"chest feels tight",
			},
			CodeSafetyBreathless: {
				"can't breathe", "cannot breathe", "struggling to breathe",
				"gasping for air",
			},
			CodeSafetySevereBleed: {
				"won't stop bleeding", "bleeding heavily", "severe bleeding",
				"blood everywhere",
			},
			CodeSafetyLossOfConsc: {
				"passed out", "blacked out", "fainted", "lost consciousness",
			},
		},
		FactorCues: []FactorCue{
			{Code: CodeSymptomHeadache, Phrases: []string{"throbbing headache", "pounding head", "splitting headache"}, Keywords: []string{"headache", "migraine"}},
			{Code: CodeSymptomToothache, Phrases: []string{"my tooth hurts", "tooth is killing me"}, Keywords: []string{"toothache"}},
			{Code: CodeSymptomMouthPain, Phrases: []string{"mouth ulcer", "pain in my mouth", "sore gums"}, Keywords: []string{}},
			{Code: CodeSymptomGumSwelling, Phrases: []string{"bleeding gums", "swollen gums", "gum is swollen"}, Keywords: []string{}},
			{Code: CodeSymptomSoreThroat, Phrases: []string{"sore throat", "throat hurts"}, Keywords: []string{}},
			{Code: CodeSymptomFever, Phrases: []string{"high temperature", "running a fever"}, Keywords: []string{"fever", "feverish"}},
			{Code: CodeSymptomCough, Phrases: []string{"coughing fits", "chesty cough", "dry cough"}, Keywords: []string{"cough", "coughing"}},
			{Code: CodeSymptomNausea, Phrases: []string{"feeling sick", "want to throw up"}, Keywords: []string{"nausea", "nauseous", "vomiting"}},
			{Code: CodeSymptomStomachPain, Phrases: []string{"stomach ache", "stomach cramps", "pain in my stomach"}, Keywords: []string{}},
			{Code: CodeSymptomBackPain, Phrases: []string{"back pain", "back is killing me", "pulled my back"}, Keywords: []string{"backache"}},
			{Code: CodeSymptomJointPain, Phrases: []string{"joint pain", "knee hurts", "shoulder hurts", "stiff joints"}, Keywords: []string{}},
			{Code: CodeSymptomRash, Phrases: []string{"itchy rash", "skin rash"}, Keywords: []string{"rash", "hives"}},
			{Code: CodeSymptomPainGeneric, Phrases: []string{"in pain", "really hurts"}, Keywords: []string{"pain", "ache", "hurts", "hurting"}},
			{Code: CodeSymptomBreathless, Phrases: []string{"short of breath", "out of breath", "winded easily"}, Keywords: []string{"breathless", "breathlessness"}},
			{Code: CodeSymptomDizziness, Phrases: []string{"feel dizzy", "room is spinning", "light headed"}, Keywords: []string{"dizzy", "dizziness", "lightheaded"}},
			{Code: CodeSymptomMinorBleed, Phrases: []string{"bit of blood", "bleeding a little", "spotting blood"}, Keywords: []string{}},

			{Code: CodeSeverityMild, Phrases: []string{"a little sore", "slightly sore", "a bit uncomfortable"}, Keywords: []string{"mild", "slight", "slightly"}},
			{Code: CodeSeverityModerate, Phrases: []string{"quite painful", "pretty bad", "hard to ignore"}, Keywords: []string{"throbbing", "aching", "uncomfortable", "moderate"}},
			{Code: CodeSeveritySevere, Phrases: []string{"worst pain", "can't function", "unbearable pain"}, Keywords: []string{"severe", "unbearable", "excruciating", "agony", "intense"}},
			{Code: CodeTrendWorse, Phrases: []string{"getting worse", "worse than yesterday", "keeps getting worse", "spreading"}, Keywords: []string{"worsening"}},
			{Code: CodeTrendBetter, Phrases: []string{"getting better", "starting to ease", "improving slowly"}, Keywords: []string{"improving", "easing"}},
			{Code: CodeTrendStatic, Phrases: []string{"no change", "about the same", "same as before"}, Keywords: []string{"unchanged"}},

			{Code: CodeContextInjury, Phrases: []string{"after i fell", "hit my", "banged my", "knocked my", "after an accident"}, Keywords: []string{"injury", "injured", "sprained"}},
			{Code: CodeContextMedication, Phrases: []string{"on antibiotics", "taking medication", "new medication", "side effects"}, Keywords: []string{"prescription"}},
			{Code: CodeContextCondition, Phrases: []string{"high blood pressure", "existing condition"}, Keywords: []string{"diabetes", "asthma", "arthritis", "thyroid"}},
			{Code: CodeContextPregnancy, Phrases: []string{"i'm pregnant", "im pregnant", "weeks pregnant"}, Keywords: []string{"pregnancy"}},
			{Code: CodeContextVisibleSign, Phrases: []string{"looks swollen", "looks red", "i can see"}, Keywords: []string{"swollen", "swelling", "lump", "bruise", "bruising"}},
			{Code: CodeContextFoodTrigger, Phrases: []string{"when i eat", "after eating", "cold drinks", "hot drinks", "when i chew"}, Keywords: []string{}},

			{Code: CodeEmotionAnxiety, Phrases: []string{"worried sick", "on edge", "anxiety is bad"}, Keywords: []string{"anxious", "anxiety"}},
			{Code: CodeEmotionStress, Phrases: []string{"so stressed", "under pressure", "burnt out"}, Keywords: []string{"stressed", "overwhelmed"}},
			{Code: CodeEmotionLowMood, Phrases: []string{"feeling down", "no motivation", "really low"}, Keywords: []string{"depressed", "tearful"}},
			{Code: CodeEmotionPanic, Phrases: []string{"panic attack", "heart racing", "panicking"}, Keywords: []string{}},

			{Code: CodeCapacityFatigue, Phrases: []string{"no energy", "running on empty", "wiped out", "completely drained"}, Keywords: []string{"exhausted", "fatigued", "drained"}},
			{Code: CodeCapacityPoorSleep, Phrases: []string{"can't sleep", "barely slept", "up all night", "sleeping badly"}, Keywords: []string{"insomnia"}},
			{Code: CodeCapacityLowFocus, Phrases: []string{"can't focus", "can't concentrate", "mind keeps wandering"}, Keywords: []string{}},

			{Code: CodeAccessCostBarrier, Phrases: []string{"can't afford", "too expensive", "cost of seeing"}, Keywords: []string{"uninsured"}},
			{Code: CodeAccessAppointmentBarrier, Phrases: []string{"no appointments", "can't get an appointment", "waiting list", "booked out"}, Keywords: []string{}},
			{Code: CodeAccessTransportBarrier, Phrases: []string{"can't get to", "no way to get", "too far away"}, Keywords: []string{}},

			{Code: CodeResourceFinancialStrain, Phrases: []string{"money is tight", "behind on bills", "can't pay"}, Keywords: []string{"broke"}},
			{Code: CodeResourceTimePressure, Phrases: []string{"no time", "too busy", "can't take time off", "back to back"}, Keywords: []string{}},
			{Code: CodeResourceCaregiving, Phrases: []string{"looking after", "caring for", "full time carer"}, Keywords: []string{"carer"}},

			{Code: CodeEnvHeatExposure, Phrases: []string{"out in the sun", "in the heat"}, Keywords: []string{"heatwave", "sunstroke"}},
			{Code: CodeEnvColdExposure, Phrases: []string{"freezing at home", "house is cold"}, Keywords: []string{}},
			{Code: CodeEnvAirQuality, Phrases: []string{"air quality", "mould in the", "mold in the", "smoke from"}, Keywords: []string{"fumes"}},
			{Code: CodeEnvWorkHazard, Phrases: []string{"chemicals at work", "dust at work", "lifting at work"}, Keywords: []string{}},

			{Code: CodeSocialLimited, Phrases: []string{"no one to help", "on my own", "by myself", "no support"}, Keywords: []string{}},
			{Code: CodeSocialPresent, Phrases: []string{"partner helps", "family nearby", "friends check in"}, Keywords: []string{}},

			{Code: CodeBeliefMedicationWary, Phrases: []string{"don't like taking pills", "avoid medication", "wary of tablets"}, Keywords: []string{}},
			{Code: CodeKnowledgeUnsureCause, Phrases: []string{"don't know why", "not sure what", "no idea what's causing"}, Keywords: []string{}},
			{Code: CodePreferenceNatural, Phrases: []string{"natural remedies", "herbal remedies", "prefer natural"}, Keywords: []string{}},

			{Code: CodeGoalRelief, Phrases: []string{"want the pain to stop", "need relief", "make it stop"}, Keywords: []string{}},
			{Code: CodeGoalAvoidTime, Phrases: []string{"can't miss work", "can't take a sick day", "need to keep working"}, Keywords: []string{}},
			{Code: CodeGoalReassurance, Phrases: []string{"is this serious", "should i worry", "is this normal"}, Keywords: []string{}},

			{Code: CodeBehaviorSelfMedicated, Phrases: []string{"took painkillers", "took paracetamol", "took ibuprofen", "been taking"}, Keywords: []string{}},
			{Code: CodeBehaviorAvoidingCare, Phrases: []string{"putting off going", "avoiding the doctor", "haven't booked"}, Keywords: []string{}},
			{Code: CodeBehaviorMonitoring, Phrases: []string{"keeping an eye on", "been tracking", "writing it down"}, Keywords: []string{}},
			{Code: CodeReliefRestHelps, Phrases: []string{"better when i rest", "rest helps", "eases when i lie down"}, Keywords: []string{}},
			{Code: CodeReliefNothingHelps, Phrases: []string{"nothing helps", "nothing works", "tried everything"}, Keywords: []string{}},

			{Code: CodeStrengthActiveCoping, Phrases: []string{"been resting", "drinking plenty of water", "staying hydrated", "taking it easy"}, Keywords: []string{}},
		},
		AmbiguousCues: []string{
			"weird", "strange", "feels off", "feeling off", "something wrong",
			"hard to describe", "don't know how to describe",
		},
	}
}
