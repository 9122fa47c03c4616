package triage

import (
	"time"

	"github.com/google/uuid"
)

// Intent describes why the user sent this input.
type Intent string

const (
	IntentNewReport Intent = "new_report"
	IntentFollowUp  Intent = "follow_up"
	IntentLogOnly   Intent = "log_only"
)

func (i Intent) Valid() bool {
	switch i {
	case IntentNewReport, IntentFollowUp, IntentLogOnly:
		return true
	}
	return false
}

// Event is one user input. Immutable, consumed once.
type Event struct {
	ID               string    `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Text             string    `json:"text"`
	Intent           Intent    `json:"intent"`
	PreviousQuestion string    `json:"previous_question,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Domain is one of twelve fixed life-context categories, plus unknown.
type Domain string

const (
	DomainSymptoms    Domain = "symptoms"
	DomainDuration    Domain = "duration"
	DomainMedical     Domain = "medical_context"
	DomainEmotional   Domain = "mental_emotional"
	DomainCapacity    Domain = "capacity_energy"
	DomainAccess      Domain = "access_to_care"
	DomainResources   Domain = "resources_constraints"
	DomainEnvironment Domain = "environment_exposures"
	DomainSocial      Domain = "social_support"
	DomainKnowledge   Domain = "knowledge_beliefs"
	DomainGoals       Domain = "goals_intent"
	DomainSafety      Domain = "safety_risk"
	DomainUnknown     Domain = "unknown"
)

// domainPriority is the fixed routing priority per domain, lower first.
// Used for tie-breaking secondary tags and ordering "what matters" bullets.
var domainPriority = map[Domain]int{
	DomainSafety:      0,
	DomainSymptoms:    1,
	DomainDuration:    2,
	DomainMedical:     3,
	DomainEmotional:   4,
	DomainCapacity:    5,
	DomainAccess:      6,
	DomainResources:   7,
	DomainEnvironment: 8,
	DomainSocial:      9,
	DomainKnowledge:   10,
	DomainGoals:       11,
	DomainUnknown:     99,
}

// Priority returns the routing priority for the domain (lower = earlier).
func (d Domain) Priority() int {
	if p, ok := domainPriority[d]; ok {
		return p
	}
	return domainPriority[DomainUnknown]
}

// DomainTag pairs a domain with the classifier's confidence in it.
type DomainTag struct {
	Domain     Domain  `json:"domain"`
	Confidence float64 `json:"confidence"`
}

// DomainClassification is the classifier output: one primary tag,
// up to two secondary tags, and an optional rationale.
type DomainClassification struct {
	Primary   DomainTag   `json:"primary"`
	Secondary []DomainTag `json:"secondary,omitempty"`
	Rationale string      `json:"rationale,omitempty"`
}

// AllowedDomains is the domain gate handed to the extractor: primary,
// secondaries, safety always, and duration whenever symptoms is allowed.
func (c DomainClassification) AllowedDomains() map[Domain]bool {
	allowed := map[Domain]bool{
		c.Primary.Domain: true,
		DomainSafety:     true,
	}
	for _, t := range c.Secondary {
		allowed[t.Domain] = true
	}
	if allowed[DomainSymptoms] {
		allowed[DomainDuration] = true
	}
	return allowed
}

// FactorType distinguishes what kind of lever a factor represents.
type FactorType string

const (
	FactorChance            FactorType = "chance"
	FactorChoice            FactorType = "choice"
	FactorConstrainedChoice FactorType = "constrained_choice"
)

// TimeHorizon is the expected lifetime class of a factor.
type TimeHorizon string

const (
	HorizonAcute      TimeHorizon = "acute"
	HorizonChronic    TimeHorizon = "chronic"
	HorizonLifeCourse TimeHorizon = "life_course"
	HorizonUnknown    TimeHorizon = "unknown"
)

// Modifiability is how changeable a factor is for the user.
type Modifiability string

const (
	ModifiabilityLow     Modifiability = "low"
	ModifiabilityMedium  Modifiability = "medium"
	ModifiabilityHigh    Modifiability = "high"
	ModifiabilityUnknown Modifiability = "unknown"
)

// Factor is one atomic, typed, confidence-scored observation extracted
// from user text. Immutable once created; later factors of the same code
// supersede it, they never mutate it.
type Factor struct {
	ID            string        `json:"id"`
	Code          FactorCode    `json:"code"`
	Domain        Domain        `json:"domain"`
	Type          FactorType    `json:"type"`
	Value         string        `json:"value"`
	Confidence    float64       `json:"confidence"`
	Horizon       TimeHorizon   `json:"horizon"`
	Modifiability Modifiability `json:"modifiability"`
	SourceEventID string        `json:"source_event_id"`
	CreatedAt     time.Time     `json:"created_at"`
}

// MissingInfoPriority ranks how urgently a missing detail is needed.
type MissingInfoPriority string

const (
	MissingPriorityHigh   MissingInfoPriority = "high"
	MissingPriorityMedium MissingInfoPriority = "medium"
	MissingPriorityLow    MissingInfoPriority = "low"
)

// MissingInfo is a single required-detail gap. At most one is produced per
// extraction pass; while pending it suppresses non-safety factor output.
type MissingInfo struct {
	Key      string              `json:"key"`
	Question string              `json:"question"`
	Domain   Domain              `json:"domain"`
	Priority MissingInfoPriority `json:"priority"`
}

// DomainCoverage splits per-domain factor counts into acute and chronic.
type DomainCoverage struct {
	Acute   int `json:"acute"`
	Chronic int `json:"chronic"`
}

// ComplexityProfile is the durable per-user aggregate: the single freshest
// non-expired factor per code, top constraints, and domain coverage.
// Always rebuilt as a pure function of (factor history, now).
type ComplexityProfile struct {
	UpdatedAt      time.Time                 `json:"updated_at"`
	Factors        map[FactorCode]Factor     `json:"factors"`
	TopConstraints []Factor                  `json:"top_constraints,omitempty"`
	Coverage       map[Domain]DomainCoverage `json:"coverage"`
}

// RiskBand, FrictionBand and UncertaintyBand are independent ordinal
// judgments derived per event.
type RiskBand string

const (
	RiskLow    RiskBand = "low"
	RiskMedium RiskBand = "medium"
	RiskHigh   RiskBand = "high"
	RiskUrgent RiskBand = "urgent"
)

type FrictionBand string

const (
	FrictionLow    FrictionBand = "low"
	FrictionMedium FrictionBand = "medium"
	FrictionHigh   FrictionBand = "high"
)

type UncertaintyBand string

const (
	UncertaintyLow    UncertaintyBand = "low"
	UncertaintyMedium UncertaintyBand = "medium"
	UncertaintyHigh   UncertaintyBand = "high"
)

// NextActionKind is what the response turn should do.
type NextActionKind string

const (
	ActionAnswer           NextActionKind = "answer"
	ActionAskFollowUp      NextActionKind = "ask_follow_up"
	ActionLogOnly          NextActionKind = "log_only"
	ActionSafetyEscalation NextActionKind = "safety_escalation"
)

// UsedFactor records one factor that justified the bands.
type UsedFactor struct {
	Code       FactorCode `json:"code"`
	Domain     Domain     `json:"domain"`
	Confidence float64    `json:"confidence"`
}

// StateSnapshot is the per-event derived judgment. Created fresh per event;
// persisted only for audit.
type StateSnapshot struct {
	EventID     string          `json:"event_id"`
	CreatedAt   time.Time       `json:"created_at"`
	Intent      Intent          `json:"intent"`
	Risk        RiskBand        `json:"risk"`
	Friction    FrictionBand    `json:"friction"`
	Uncertainty UncertaintyBand `json:"uncertainty"`
	NextAction  NextActionKind  `json:"next_action"`
	WhatMatters []string        `json:"what_matters,omitempty"`
	FollowUp    *MissingInfo    `json:"follow_up,omitempty"`
	SafetyCopy  string          `json:"safety_copy,omitempty"`
	UsedFactors []UsedFactor    `json:"used_factors,omitempty"`
}

// NextStepCategory is the care-escalation ladder.
type NextStepCategory string

const (
	StepSelfCare      NextStepCategory = "self_care"
	StepPharmacist    NextStepCategory = "pharmacist"
	StepGPTelehealth  NextStepCategory = "gp_telehealth"
	StepUrgentCare    NextStepCategory = "urgent_care"
	StepCrisisSupport NextStepCategory = "crisis_support"
)

// RouteNextStep is the router's outcome.
type RouteNextStep struct {
	Category  NextStepCategory `json:"category"`
	Rationale string           `json:"rationale"`
	SafetyNet string           `json:"safety_net,omitempty"`
}

// ResponseMode mirrors NextActionKind on the outbound payload.
type ResponseMode string

const (
	ModeAnswer           ResponseMode = "answer"
	ModeAskFollowUp      ResponseMode = "ask_follow_up"
	ModeSafetyEscalation ResponseMode = "safety_escalation"
	ModeLogOnly          ResponseMode = "log_only"
)

// FollowUpChoice is one selectable answer; picking it writes the listed
// factors through the same merge path as organic extraction.
type FollowUpChoice struct {
	Label         string   `json:"label"`
	WritesFactors []Factor `json:"writes_factors"`
}

// FollowUpPlan turns a MissingInfo into a small multiple-choice question.
type FollowUpPlan struct {
	Key      string           `json:"key"`
	Question string           `json:"question"`
	Choices  []FollowUpChoice `json:"choices"`
}

// ActionSuggestion is one contextual "what to do now" card.
type ActionSuggestion struct {
	Title    string   `json:"title"`
	Steps    []string `json:"steps"`
	Effort   string   `json:"effort"`
	Time     string   `json:"time"`
	Contexts []string `json:"contexts,omitempty"`
}

// TransparencyChip is one signal shown in the "what I'm using" panel.
type TransparencyChip struct {
	Group  string     `json:"group"`
	Label  string     `json:"label"`
	Code   FactorCode `json:"code"`
	Weight float64    `json:"weight"`
}

// TransparencyModel lists which signals were used, grouped and ranked.
type TransparencyModel struct {
	Chips    []TransparencyChip `json:"chips"`
	Controls []string           `json:"controls"`
}

// ResponseModel is the final user-facing payload.
type ResponseModel struct {
	Mode               ResponseMode       `json:"mode"`
	Confirmation       string             `json:"confirmation"`
	Answer             string             `json:"answer,omitempty"`
	KeyFactors         []string           `json:"key_factors,omitempty"`
	FollowUpPlan       *FollowUpPlan      `json:"follow_up_plan,omitempty"`
	WhatToDoNow        []ActionSuggestion `json:"what_to_do_now,omitempty"`
	WhatIfWorse        []string           `json:"what_if_worse,omitempty"`
	SafetyNet          string             `json:"safety_net,omitempty"`
	RouterCategory     NextStepCategory   `json:"router_category,omitempty"`
	Transparency       TransparencyModel  `json:"what_im_using"`
	PersistenceWarning bool               `json:"persistence_warning,omitempty"`
}
