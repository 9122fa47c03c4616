package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteRuleOrder(t *testing.T) {
	names := make([]string, 0, len(routeRules))
	for _, r := range routeRules {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"crisis",
		"urgent",
		"defer_until_clarified",
		"high_risk_high_friction",
		"high_risk",
		"medium_risk_high_friction",
		"medium_risk",
		"default_self_care",
	}, names)
}

func TestRouteDecisionTable(t *testing.T) {
	selfHarmProfile := profileOf(t, testFactor(CodeSafetySelfHarm, 0.9, testNow))
	plain := profileOf(t)

	tests := []struct {
		name    string
		snap    StateSnapshot
		profile ComplexityProfile
		want    NextStepCategory
	}{
		{
			name:    "self harm always routes to crisis support",
			snap:    StateSnapshot{Risk: RiskLow, Friction: FrictionLow},
			profile: selfHarmProfile,
			want:    StepCrisisSupport,
		},
		{
			name:    "urgent risk",
			snap:    StateSnapshot{Risk: RiskUrgent, NextAction: ActionSafetyEscalation},
			profile: plain,
			want:    StepUrgentCare,
		},
		{
			name:    "pending question defers routing",
			snap:    StateSnapshot{Risk: RiskMedium, Uncertainty: UncertaintyHigh, NextAction: ActionAskFollowUp},
			profile: plain,
			want:    StepSelfCare,
		},
		{
			name:    "high risk with high friction",
			snap:    StateSnapshot{Risk: RiskHigh, Friction: FrictionHigh, NextAction: ActionAnswer},
			profile: plain,
			want:    StepUrgentCare,
		},
		{
			name:    "high risk alone",
			snap:    StateSnapshot{Risk: RiskHigh, Friction: FrictionLow, NextAction: ActionAnswer},
			profile: plain,
			want:    StepGPTelehealth,
		},
		{
			name:    "medium risk with high friction",
			snap:    StateSnapshot{Risk: RiskMedium, Friction: FrictionHigh, NextAction: ActionAnswer},
			profile: plain,
			want:    StepGPTelehealth,
		},
		{
			name:    "medium risk alone",
			snap:    StateSnapshot{Risk: RiskMedium, Friction: FrictionLow, NextAction: ActionAnswer},
			profile: plain,
			want:    StepPharmacist,
		},
		{
			name:    "nothing flagged",
			snap:    StateSnapshot{Risk: RiskLow, Friction: FrictionLow, NextAction: ActionAnswer},
			profile: plain,
			want:    StepSelfCare,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := Route(tt.snap, tt.profile)
			assert.Equal(t, tt.want, route.Category)
			assert.NotEmpty(t, route.Rationale)
		})
	}
}

func TestRouteSafetyNets(t *testing.T) {
	crisis := Route(StateSnapshot{}, profileOf(t, testFactor(CodeSafetySelfHarm, 0.9, testNow)))
	assert.Equal(t, safetyCopyCrisis, crisis.SafetyNet)

	urgent := Route(StateSnapshot{Risk: RiskUrgent}, profileOf(t))
	assert.Equal(t, safetyNetStandard, urgent.SafetyNet)

	selfCare := Route(StateSnapshot{Risk: RiskLow}, profileOf(t))
	assert.Empty(t, selfCare.SafetyNet)
}
