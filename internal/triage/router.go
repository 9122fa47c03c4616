package triage

// routeRule is one row of the routing decision table. Rows are evaluated
// top to bottom, first match wins; the self-harm row overrides everything.
type routeRule struct {
	Name  string
	When  func(snap StateSnapshot, selfHarm bool) bool
	Route RouteNextStep
}

var routeRules = []routeRule{
	{
		Name: "crisis",
		When: func(s StateSnapshot, selfHarm bool) bool { return selfHarm },
		Route: RouteNextStep{
			Category:  StepCrisisSupport,
			Rationale: "What you shared needs human support right now, not triage.",
			SafetyNet: safetyCopyCrisis,
		},
	},
	{
		Name: "urgent",
		When: func(s StateSnapshot, _ bool) bool {
			return s.Risk == RiskUrgent || s.NextAction == ActionSafetyEscalation
		},
		Route: RouteNextStep{
			Category:  StepUrgentCare,
			Rationale: "One of your signals can need urgent medical attention.",
			SafetyNet: safetyNetStandard,
		},
	},
	{
		Name: "defer_until_clarified",
		When: func(s StateSnapshot, _ bool) bool {
			return s.Uncertainty == UncertaintyHigh && s.NextAction == ActionAskFollowUp
		},
		Route: RouteNextStep{
			Category:  StepSelfCare,
			Rationale: "Routing waits until one more detail is clear.",
		},
	},
	{
		Name: "high_risk_high_friction",
		When: func(s StateSnapshot, _ bool) bool {
			return s.Risk == RiskHigh && s.Friction == FrictionHigh
		},
		Route: RouteNextStep{
			Category:  StepUrgentCare,
			Rationale: "The symptom is significant and getting routine care looks hard right now.",
			SafetyNet: safetyNetStandard,
		},
	},
	{
		Name: "high_risk",
		When: func(s StateSnapshot, _ bool) bool { return s.Risk == RiskHigh },
		Route: RouteNextStep{
			Category:  StepGPTelehealth,
			Rationale: "This symptom is worth a GP or telehealth conversation soon.",
			SafetyNet: safetyNetStandard,
		},
	},
	{
		Name: "medium_risk_high_friction",
		When: func(s StateSnapshot, _ bool) bool {
			return s.Risk == RiskMedium && s.Friction == FrictionHigh
		},
		Route: RouteNextStep{
			Category:  StepGPTelehealth,
			Rationale: "Telehealth works around the barriers you're facing.",
		},
	},
	{
		Name: "medium_risk",
		When: func(s StateSnapshot, _ bool) bool { return s.Risk == RiskMedium },
		Route: RouteNextStep{
			Category:  StepPharmacist,
			Rationale: "A pharmacist can handle this and tell you if it needs more.",
		},
	},
	{
		Name: "default_self_care",
		When: func(s StateSnapshot, _ bool) bool { return true },
		Route: RouteNextStep{
			Category:  StepSelfCare,
			Rationale: "Nothing here suggests more than self-care for now.",
		},
	},
}

// Route maps a snapshot to the next-step ladder.
func Route(snap StateSnapshot, profile ComplexityProfile) RouteNextStep {
	_, selfHarm := profile.Factors[CodeSafetySelfHarm]
	for _, rule := range routeRules {
		if rule.When(snap, selfHarm) {
			return rule.Route
		}
	}
	// Unreachable: the last rule always matches.
	return RouteNextStep{Category: StepSelfCare}
}
