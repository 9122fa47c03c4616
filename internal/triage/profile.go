package triage

import (
	"log/slog"
	"sort"
	"time"
)

// Factor TTLs per class. Chronic and life-course factors never expire.
const (
	ttlConstraint = 14 * 24 * time.Hour
	ttlAcute      = 72 * time.Hour
	ttlUnknown    = 7 * 24 * time.Hour
)

const maxTopConstraints = 3

// suppressedCodes never enter the profile.
var suppressedCodes = map[FactorCode]bool{
	CodeNeedsInformation: true,
}

func isConstraintClass(f Factor) bool {
	return f.Type == FactorConstrainedChoice || f.Domain == DomainAccess || f.Domain == DomainResources
}

// factorTTL returns the time-to-live for a factor and whether it expires
// at all. Constraint-class codes take precedence over horizon.
func factorTTL(f Factor) (time.Duration, bool) {
	if isConstraintClass(f) {
		return ttlConstraint, true
	}
	switch f.Horizon {
	case HorizonAcute:
		return ttlAcute, true
	case HorizonChronic, HorizonLifeCourse:
		return 0, false
	default:
		return ttlUnknown, true
	}
}

// BuildProfile folds the full factor history into a profile. Pure with
// respect to its inputs: same history and now always yield the same
// profile. Recency wins per code, ties break on higher confidence.
func BuildProfile(factors []Factor, now time.Time) ComplexityProfile {
	byCode := make(map[FactorCode]Factor)
	for _, f := range factors {
		if f.Confidence < profileConfidenceMin || suppressedCodes[f.Code] {
			continue
		}
		if _, known := TraitsFor(f.Code); !known {
			// Boundary invariant: an unrecognized code is a bug upstream,
			// not a reason to fail the whole event.
			slog.Warn("skipping factor with unrecognized code", "code", f.Code, "event_id", f.SourceEventID)
			continue
		}
		if ttl, expires := factorTTL(f); expires && now.Sub(f.CreatedAt) > ttl {
			continue
		}
		cur, exists := byCode[f.Code]
		if !exists || f.CreatedAt.After(cur.CreatedAt) ||
			(f.CreatedAt.Equal(cur.CreatedAt) && f.Confidence > cur.Confidence) {
			byCode[f.Code] = f
		}
	}

	coverage := make(map[Domain]DomainCoverage)
	for _, f := range byCode {
		c := coverage[f.Domain]
		switch f.Horizon {
		case HorizonChronic, HorizonLifeCourse:
			c.Chronic++
		default:
			// Unknown-horizon factors carry a short TTL, so they are
			// recent observations and count as acute.
			c.Acute++
		}
		coverage[f.Domain] = c
	}

	var constraints []Factor
	for _, f := range byCode {
		if f.Type == FactorConstrainedChoice || f.Domain == DomainResources || f.Domain == DomainAccess {
			constraints = append(constraints, f)
		}
	}
	sort.Slice(constraints, func(i, j int) bool {
		if !constraints[i].CreatedAt.Equal(constraints[j].CreatedAt) {
			return constraints[i].CreatedAt.After(constraints[j].CreatedAt)
		}
		if constraints[i].Confidence != constraints[j].Confidence {
			return constraints[i].Confidence > constraints[j].Confidence
		}
		return constraints[i].Code < constraints[j].Code
	})
	if len(constraints) > maxTopConstraints {
		constraints = constraints[:maxTopConstraints]
	}

	return ComplexityProfile{
		UpdatedAt:      now,
		Factors:        byCode,
		TopConstraints: constraints,
		Coverage:       coverage,
	}
}

// SortedFactors returns the profile's factors ordered by domain priority,
// then confidence, then recency. The snapshot builder and the report both
// rely on this order.
func (p ComplexityProfile) SortedFactors() []Factor {
	factors := make([]Factor, 0, len(p.Factors))
	for _, f := range p.Factors {
		factors = append(factors, f)
	}
	sort.Slice(factors, func(i, j int) bool {
		if factors[i].Domain.Priority() != factors[j].Domain.Priority() {
			return factors[i].Domain.Priority() < factors[j].Domain.Priority()
		}
		if factors[i].Confidence != factors[j].Confidence {
			return factors[i].Confidence > factors[j].Confidence
		}
		if !factors[i].CreatedAt.Equal(factors[j].CreatedAt) {
			return factors[i].CreatedAt.After(factors[j].CreatedAt)
		}
		return factors[i].Code < factors[j].Code
	})
	return factors
}
