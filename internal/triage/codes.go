package triage

// FactorCode is the closed vocabulary of observations the extractor can
// emit. Adding a code requires a traits entry; the engine constructor
// rejects a cue table that references a code without traits.
type FactorCode string

const (
	// Body signals.
	CodeSymptomHeadache    FactorCode = "symptom_headache"
	CodeSymptomToothache   FactorCode = "symptom_toothache"
	CodeSymptomMouthPain   FactorCode = "symptom_mouth_pain"
	CodeSymptomGumSwelling FactorCode = "symptom_gum_swelling"
	CodeSymptomSoreThroat  FactorCode = "symptom_sore_throat"
	CodeSymptomFever       FactorCode = "symptom_fever"
	CodeSymptomCough       FactorCode = "symptom_cough"
	CodeSymptomNausea      FactorCode = "symptom_nausea"
	CodeSymptomStomachPain FactorCode = "symptom_stomach_pain"
	CodeSymptomBackPain    FactorCode = "symptom_back_pain"
	CodeSymptomJointPain   FactorCode = "symptom_joint_pain"
	CodeSymptomRash        FactorCode = "symptom_rash"
	CodeSymptomPainGeneric FactorCode = "symptom_pain_generic"
	CodeSymptomBreathless  FactorCode = "symptom_breathlessness"
	CodeSymptomDizziness   FactorCode = "symptom_dizziness"
	CodeSymptomMinorBleed  FactorCode = "symptom_minor_bleeding"

	// Duration and pattern.
	CodeDurationToday     FactorCode = "duration_today"
	CodeDurationFewDays   FactorCode = "duration_few_days"
	CodeDurationWeeks     FactorCode = "duration_weeks"
	CodeDurationChronic   FactorCode = "duration_chronic"
	CodeDurationRecurring FactorCode = "duration_recurring"

	// Severity and trend.
	CodeSeverityMild     FactorCode = "severity_mild"
	CodeSeverityModerate FactorCode = "severity_moderate"
	CodeSeveritySevere   FactorCode = "severity_severe"
	CodeTrendWorse       FactorCode = "trend_worse"
	CodeTrendBetter      FactorCode = "trend_better"
	CodeTrendStatic      FactorCode = "trend_static"

	// Medical context.
	CodeContextInjury      FactorCode = "context_injury"
	CodeContextMedication  FactorCode = "context_medication"
	CodeContextCondition   FactorCode = "context_existing_condition"
	CodeContextPregnancy   FactorCode = "context_pregnancy"
	CodeContextVisibleSign FactorCode = "context_visible_sign"
	CodeContextFoodTrigger FactorCode = "context_food_trigger"

	// Mental and emotional state.
	CodeEmotionAnxiety FactorCode = "emotional_anxiety"
	CodeEmotionStress  FactorCode = "emotional_stress"
	CodeEmotionLowMood FactorCode = "emotional_low_mood"
	CodeEmotionPanic   FactorCode = "emotional_panic"

	// Capacity and energy.
	CodeCapacityFatigue   FactorCode = "capacity_fatigue"
	CodeCapacityPoorSleep FactorCode = "capacity_poor_sleep"
	CodeCapacityLowFocus  FactorCode = "capacity_low_focus"

	// Access to care.
	CodeAccessCostBarrier        FactorCode = "access_cost_barrier"
	CodeAccessAppointmentBarrier FactorCode = "access_appointment_barrier"
	CodeAccessTransportBarrier   FactorCode = "access_transport_barrier"

	// Resources and constraints.
	CodeResourceFinancialStrain FactorCode = "resource_financial_strain"
	CodeResourceTimePressure    FactorCode = "resource_time_pressure"
	CodeResourceCaregiving      FactorCode = "resource_caregiving_load"

	// Environment and exposures.
	CodeEnvHeatExposure FactorCode = "env_heat_exposure"
	CodeEnvColdExposure FactorCode = "env_cold_exposure"
	CodeEnvAirQuality   FactorCode = "env_air_quality"
	CodeEnvWorkHazard   FactorCode = "env_workplace_hazard"

	// Social support.
	CodeSocialLimited FactorCode = "social_support_limited"
	CodeSocialPresent FactorCode = "social_support_present"

	// Knowledge, beliefs, preferences.
	CodeBeliefMedicationWary FactorCode = "belief_medication_wary"
	CodeKnowledgeUnsureCause FactorCode = "knowledge_unsure_cause"
	CodePreferenceNatural    FactorCode = "preference_natural_remedies"

	// Goals and intent.
	CodeGoalRelief      FactorCode = "goal_symptom_relief"
	CodeGoalAvoidTime   FactorCode = "goal_avoid_time_off"
	CodeGoalReassurance FactorCode = "goal_reassurance"

	// Behaviors and relief strategies.
	CodeBehaviorSelfMedicated FactorCode = "behavior_self_medicated"
	CodeBehaviorAvoidingCare  FactorCode = "behavior_avoiding_care"
	CodeBehaviorMonitoring    FactorCode = "behavior_monitoring"
	CodeReliefRestHelps       FactorCode = "relief_rest_helps"
	CodeReliefNothingHelps    FactorCode = "relief_nothing_helps"

	// Strengths.
	CodeStrengthActiveCoping FactorCode = "strength_active_coping"

	// Safety flags. Detected independently of domain gating.
	CodeSafetySelfHarm    FactorCode = "safety_self_harm"
	CodeSafetyChestPain   FactorCode = "safety_chest_pain"
	CodeSafetyBreathless  FactorCode = "safety_severe_breathlessness"
	CodeSafetySevereBleed FactorCode = "safety_severe_bleeding"
	CodeSafetyLossOfConsc FactorCode = "safety_loss_of_consciousness"
	CodeSafetyRedFlag     FactorCode = "safety_red_flag"
	CodeNeedsInformation  FactorCode = "needs_information"
)

type factorTraits struct {
	Domain        Domain
	Type          FactorType
	Horizon       TimeHorizon
	Modifiability Modifiability
}

// factorTraitsTable assigns every code its owning domain, type, default
// horizon and modifiability. The profile builder treats a code missing here
// as an invariant violation and skips it with a warning.
var factorTraitsTable = map[FactorCode]factorTraits{
	CodeSymptomHeadache:    {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSymptomToothache:   {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSymptomMouthPain:   {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSymptomGumSwelling: {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSymptomSoreThroat:  {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSymptomFever:       {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSymptomCough:       {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSymptomNausea:      {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSymptomStomachPain: {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSymptomBackPain:    {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityMedium},
	CodeSymptomJointPain:   {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityMedium},
	CodeSymptomRash:        {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSymptomPainGeneric: {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSymptomBreathless:  {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSymptomDizziness:   {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSymptomMinorBleed:  {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityLow},

	CodeDurationToday:     {DomainDuration, FactorChance, HorizonAcute, ModifiabilityUnknown},
	CodeDurationFewDays:   {DomainDuration, FactorChance, HorizonAcute, ModifiabilityUnknown},
	CodeDurationWeeks:     {DomainDuration, FactorChance, HorizonAcute, ModifiabilityUnknown},
	CodeDurationChronic:   {DomainDuration, FactorChance, HorizonChronic, ModifiabilityUnknown},
	CodeDurationRecurring: {DomainDuration, FactorChance, HorizonChronic, ModifiabilityUnknown},

	CodeSeverityMild:     {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityUnknown},
	CodeSeverityModerate: {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityUnknown},
	CodeSeveritySevere:   {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityUnknown},
	CodeTrendWorse:       {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityUnknown},
	CodeTrendBetter:      {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityUnknown},
	CodeTrendStatic:      {DomainSymptoms, FactorChance, HorizonAcute, ModifiabilityUnknown},

	CodeContextInjury:      {DomainMedical, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeContextMedication:  {DomainMedical, FactorChoice, HorizonUnknown, ModifiabilityMedium},
	CodeContextCondition:   {DomainMedical, FactorChance, HorizonLifeCourse, ModifiabilityLow},
	CodeContextPregnancy:   {DomainMedical, FactorChance, HorizonChronic, ModifiabilityLow},
	CodeContextVisibleSign: {DomainMedical, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeContextFoodTrigger: {DomainMedical, FactorChance, HorizonUnknown, ModifiabilityMedium},

	CodeEmotionAnxiety: {DomainEmotional, FactorChance, HorizonAcute, ModifiabilityMedium},
	CodeEmotionStress:  {DomainEmotional, FactorChance, HorizonAcute, ModifiabilityMedium},
	CodeEmotionLowMood: {DomainEmotional, FactorChance, HorizonUnknown, ModifiabilityMedium},
	CodeEmotionPanic:   {DomainEmotional, FactorChance, HorizonAcute, ModifiabilityMedium},

	CodeCapacityFatigue:   {DomainCapacity, FactorChance, HorizonAcute, ModifiabilityMedium},
	CodeCapacityPoorSleep: {DomainCapacity, FactorChance, HorizonAcute, ModifiabilityHigh},
	CodeCapacityLowFocus:  {DomainCapacity, FactorChance, HorizonAcute, ModifiabilityMedium},

	CodeAccessCostBarrier:        {DomainAccess, FactorConstrainedChoice, HorizonUnknown, ModifiabilityLow},
	CodeAccessAppointmentBarrier: {DomainAccess, FactorConstrainedChoice, HorizonUnknown, ModifiabilityLow},
	CodeAccessTransportBarrier:   {DomainAccess, FactorConstrainedChoice, HorizonUnknown, ModifiabilityLow},

	CodeResourceFinancialStrain: {DomainResources, FactorConstrainedChoice, HorizonUnknown, ModifiabilityLow},
	CodeResourceTimePressure:    {DomainResources, FactorConstrainedChoice, HorizonUnknown, ModifiabilityMedium},
	CodeResourceCaregiving:      {DomainResources, FactorConstrainedChoice, HorizonChronic, ModifiabilityLow},

	CodeEnvHeatExposure: {DomainEnvironment, FactorChance, HorizonAcute, ModifiabilityMedium},
	CodeEnvColdExposure: {DomainEnvironment, FactorChance, HorizonAcute, ModifiabilityMedium},
	CodeEnvAirQuality:   {DomainEnvironment, FactorChance, HorizonUnknown, ModifiabilityLow},
	CodeEnvWorkHazard:   {DomainEnvironment, FactorConstrainedChoice, HorizonChronic, ModifiabilityLow},

	CodeSocialLimited: {DomainSocial, FactorChance, HorizonUnknown, ModifiabilityMedium},
	CodeSocialPresent: {DomainSocial, FactorChance, HorizonUnknown, ModifiabilityMedium},

	CodeBeliefMedicationWary: {DomainKnowledge, FactorChoice, HorizonLifeCourse, ModifiabilityMedium},
	CodeKnowledgeUnsureCause: {DomainKnowledge, FactorChance, HorizonAcute, ModifiabilityHigh},
	CodePreferenceNatural:    {DomainKnowledge, FactorChoice, HorizonLifeCourse, ModifiabilityMedium},

	CodeGoalRelief:      {DomainGoals, FactorChoice, HorizonAcute, ModifiabilityHigh},
	CodeGoalAvoidTime:   {DomainGoals, FactorChoice, HorizonAcute, ModifiabilityMedium},
	CodeGoalReassurance: {DomainGoals, FactorChoice, HorizonAcute, ModifiabilityHigh},

	CodeBehaviorSelfMedicated: {DomainMedical, FactorChoice, HorizonAcute, ModifiabilityHigh},
	CodeBehaviorAvoidingCare:  {DomainMedical, FactorChoice, HorizonUnknown, ModifiabilityHigh},
	CodeBehaviorMonitoring:    {DomainMedical, FactorChoice, HorizonAcute, ModifiabilityHigh},
	CodeReliefRestHelps:       {DomainMedical, FactorChoice, HorizonAcute, ModifiabilityHigh},
	CodeReliefNothingHelps:    {DomainMedical, FactorChance, HorizonAcute, ModifiabilityLow},

	CodeStrengthActiveCoping: {DomainGoals, FactorChoice, HorizonAcute, ModifiabilityHigh},

	CodeSafetySelfHarm:    {DomainSafety, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSafetyChestPain:   {DomainSafety, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSafetyBreathless:  {DomainSafety, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSafetySevereBleed: {DomainSafety, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSafetyLossOfConsc: {DomainSafety, FactorChance, HorizonAcute, ModifiabilityLow},
	CodeSafetyRedFlag:     {DomainSafety, FactorChance, HorizonAcute, ModifiabilityLow},

	CodeNeedsInformation: {DomainUnknown, FactorChance, HorizonAcute, ModifiabilityUnknown},
}

// TraitsFor returns the fixed traits for a code and whether it is known.
func TraitsFor(code FactorCode) (factorTraits, bool) {
	t, ok := factorTraitsTable[code]
	return t, ok
}
