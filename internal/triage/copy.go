package triage

// Fixed user-facing copy. Kept together so tone stays consistent: neutral,
// observational, no diagnosis language.

// factorSentences maps a code to its "what matters" bullet.
var factorSentences = map[FactorCode]string{
	CodeSafetySelfHarm:    "You mentioned thoughts of harming yourself.",
	CodeSafetyChestPain:   "You mentioned chest pain.",
	CodeSafetyBreathless:  "You mentioned serious trouble breathing.",
	CodeSafetySevereBleed: "You mentioned bleeding that isn't stopping.",
	CodeSafetyLossOfConsc: "You mentioned passing out.",
	CodeSafetyRedFlag:     "Something you said needs urgent human support.",

	CodeSymptomHeadache:    "You're dealing with a headache.",
	CodeSymptomToothache:   "You're dealing with tooth pain.",
	CodeSymptomMouthPain:   "You're dealing with mouth pain.",
	CodeSymptomGumSwelling: "Your gums are swollen or bleeding.",
	CodeSymptomSoreThroat:  "You have a sore throat.",
	CodeSymptomFever:       "You're running a fever.",
	CodeSymptomCough:       "You have a cough.",
	CodeSymptomNausea:      "You've been feeling sick.",
	CodeSymptomStomachPain: "You have stomach pain.",
	CodeSymptomBackPain:    "You have back pain.",
	CodeSymptomJointPain:   "You have joint pain.",
	CodeSymptomRash:        "You have a rash.",
	CodeSymptomPainGeneric: "You're in pain.",
	CodeSymptomBreathless:  "You've been short of breath.",
	CodeSymptomDizziness:   "You've been feeling dizzy.",
	CodeSymptomMinorBleed:  "You noticed some bleeding.",

	CodeDurationToday:     "This started today.",
	CodeDurationFewDays:   "This has lasted a few days.",
	CodeDurationWeeks:     "This has lasted weeks.",
	CodeDurationChronic:   "This has been going on for months or longer.",
	CodeDurationRecurring: "This comes and goes.",

	CodeSeveritySevere:     "The pain is severe for you right now.",
	CodeTrendWorse:         "It's been getting worse.",
	CodeTrendBetter:        "It's been improving.",
	CodeReliefNothingHelps: "Nothing you've tried has helped so far.",

	CodeContextInjury:      "It started after an injury.",
	CodeContextPregnancy:   "You're pregnant, which shapes what's safe to take.",
	CodeContextCondition:   "You're managing an existing condition alongside this.",
	CodeContextMedication:  "You're already taking medication.",
	CodeContextVisibleSign: "There's something visible, like swelling or redness.",

	CodeEmotionAnxiety: "You've been feeling anxious about this.",
	CodeEmotionPanic:   "You've had panic symptoms.",
	CodeEmotionStress:  "You're under a lot of stress.",
	CodeEmotionLowMood: "Your mood has been low.",

	CodeCapacityFatigue:   "You're running low on energy.",
	CodeCapacityPoorSleep: "Sleep has been rough.",

	CodeAccessCostBarrier:        "Cost is getting in the way of care.",
	CodeAccessAppointmentBarrier: "Getting an appointment has been hard.",
	CodeAccessTransportBarrier:   "Getting to care is difficult from where you are.",
	CodeResourceFinancialStrain:  "Money is tight right now.",
	CodeResourceTimePressure:     "Time is very tight right now.",
	CodeResourceCaregiving:       "You're carrying caregiving responsibilities.",
	CodeSocialLimited:            "You don't have much backup around you.",
	CodeSocialPresent:            "You have people around who can help.",
	CodeStrengthActiveCoping:     "You're already doing sensible things to cope.",
	CodeBehaviorSelfMedicated:    "You've already tried over-the-counter relief.",
}

// domainFallbackSentences cover factors with no specific sentence.
var domainFallbackSentences = map[Domain]string{
	DomainSymptoms:    "Something in your body needs attention.",
	DomainDuration:    "How long this has lasted matters here.",
	DomainMedical:     "Your medical context matters here.",
	DomainEmotional:   "How you're feeling emotionally matters here.",
	DomainCapacity:    "Your energy levels matter here.",
	DomainAccess:      "Access to care is a factor for you.",
	DomainResources:   "Practical constraints are a factor for you.",
	DomainEnvironment: "Your surroundings may be playing a part.",
	DomainSocial:      "Your support network matters here.",
	DomainKnowledge:   "What you know and prefer matters here.",
	DomainGoals:       "What you're aiming for matters here.",
	DomainSafety:      "Your safety comes first here.",
	DomainUnknown:     "We're still building a picture of what's going on.",
}

// Safety copy shown on escalation turns.
const (
	safetyCopyUrgent = "Some of what you described can need urgent medical attention. " +
		"Please contact urgent care or emergency services now rather than waiting."
	safetyCopyCrisis = "It sounds like things are really heavy right now. You deserve support " +
		"straight away — please reach out to a crisis line or someone you trust. " +
		"If you're in immediate danger, call emergency services."
	safetyNetStandard = "If anything suddenly gets much worse — severe pain, trouble breathing, " +
		"confusion, or heavy bleeding — treat it as an emergency."
)

// confirmationOpeners acknowledge the main thing the user reported.
var confirmationOpeners = map[FactorCode]string{
	CodeSymptomHeadache:    "Thanks for telling me about your headache.",
	CodeSymptomToothache:   "Thanks for telling me about your tooth.",
	CodeSymptomMouthPain:   "Thanks for telling me about your mouth.",
	CodeSymptomGumSwelling: "Thanks for telling me about your gums.",
	CodeSymptomSoreThroat:  "Thanks for telling me about your throat.",
	CodeSymptomFever:       "Thanks for telling me about your temperature.",
	CodeSymptomCough:       "Thanks for telling me about your cough.",
	CodeSymptomNausea:      "Thanks for telling me how sick you've been feeling.",
	CodeSymptomStomachPain: "Thanks for telling me about your stomach.",
	CodeSymptomBackPain:    "Thanks for telling me about your back.",
	CodeSymptomJointPain:   "Thanks for telling me about your joints.",
	CodeSymptomRash:        "Thanks for telling me about your skin.",
	CodeSymptomBreathless:  "Thanks for telling me about your breathing.",
	CodeSymptomDizziness:   "Thanks for telling me about the dizziness.",
}

const (
	confirmationGeneric    = "Thanks for sharing that with me."
	confirmationLogOnly    = "Noted — I've logged that for you."
	confirmationEscalation = "Thank you for telling me. This matters."
)

// Decision sentences keyed by risk band; trend-worse escalates one notch
// of urgency in the wording.
var decisionSentences = map[RiskBand]string{
	RiskLow:    "This looks manageable with self-care for now.",
	RiskMedium: "A pharmacist is a good next step for this, and they can tell you if a GP visit is needed.",
	RiskHigh:   "This is worth raising with a GP or telehealth service soon.",
	RiskUrgent: "This needs urgent medical attention now.",
}

const decisionTrendWorse = " Since it's been getting worse, it's sensible to get it looked at sooner rather than later."
