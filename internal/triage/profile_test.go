package triage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFactor(code FactorCode, confidence float64, createdAt time.Time) Factor {
	traits, _ := TraitsFor(code)
	return Factor{
		ID:            string(code) + "-" + createdAt.Format(time.RFC3339),
		Code:          code,
		Domain:        traits.Domain,
		Type:          traits.Type,
		Value:         "true",
		Confidence:    confidence,
		Horizon:       traits.Horizon,
		Modifiability: traits.Modifiability,
		SourceEventID: "ev-1",
		CreatedAt:     createdAt,
	}
}

func TestBuildProfileConfidenceThreshold(t *testing.T) {
	factors := []Factor{
		testFactor(CodeSymptomHeadache, 0.69, testNow),
		testFactor(CodeSymptomFever, 0.7, testNow),
	}

	p := BuildProfile(factors, testNow)

	assert.NotContains(t, p.Factors, CodeSymptomHeadache)
	assert.Contains(t, p.Factors, CodeSymptomFever)
}

func TestBuildProfileRecencyWinsPerCode(t *testing.T) {
	older := testFactor(CodeSeverityModerate, 0.95, testNow.Add(-2*time.Hour))
	newer := testFactor(CodeSeverityModerate, 0.7, testNow.Add(-time.Hour))

	p := BuildProfile([]Factor{older, newer}, testNow)

	require.Contains(t, p.Factors, CodeSeverityModerate)
	assert.Equal(t, newer.ID, p.Factors[CodeSeverityModerate].ID)
}

func TestBuildProfileTieBreaksOnConfidence(t *testing.T) {
	low := testFactor(CodeSymptomCough, 0.7, testNow)
	low.ID = "low"
	high := testFactor(CodeSymptomCough, 0.9, testNow)
	high.ID = "high"

	p := BuildProfile([]Factor{low, high}, testNow)

	assert.Equal(t, "high", p.Factors[CodeSymptomCough].ID)
}

func TestBuildProfileExpiry(t *testing.T) {
	tests := []struct {
		name string
		f    Factor
		kept bool
	}{
		{"acute inside 72h", testFactor(CodeSymptomHeadache, 0.9, testNow.Add(-71*time.Hour)), true},
		{"acute past 72h", testFactor(CodeSymptomHeadache, 0.9, testNow.Add(-73*time.Hour)), false},
		{"constraint inside 14d", testFactor(CodeAccessCostBarrier, 0.9, testNow.Add(-13*24*time.Hour)), true},
		{"constraint past 14d", testFactor(CodeAccessCostBarrier, 0.9, testNow.Add(-15*24*time.Hour)), false},
		{"constraint outlives unknown-horizon ttl", testFactor(CodeAccessCostBarrier, 0.9, testNow.Add(-10*24*time.Hour)), true},
		{"unknown horizon inside 7d", testFactor(CodeSocialLimited, 0.9, testNow.Add(-6*24*time.Hour)), true},
		{"unknown horizon past 7d", testFactor(CodeSocialLimited, 0.9, testNow.Add(-8*24*time.Hour)), false},
		{"chronic never expires", testFactor(CodeDurationChronic, 0.9, testNow.Add(-100*24*time.Hour)), true},
		{"life-course never expires", testFactor(CodeContextCondition, 0.9, testNow.Add(-365*24*time.Hour)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildProfile([]Factor{tt.f}, testNow)
			if tt.kept {
				assert.Contains(t, p.Factors, tt.f.Code)
			} else {
				assert.NotContains(t, p.Factors, tt.f.Code)
			}
		})
	}
}

func TestBuildProfileSuppressesGapMarkers(t *testing.T) {
	p := BuildProfile([]Factor{testFactor(CodeNeedsInformation, 0.9, testNow)}, testNow)
	assert.Empty(t, p.Factors)
}

func TestBuildProfileSkipsUnrecognisedCodes(t *testing.T) {
	bogus := Factor{ID: "x", Code: "made_up_code", Confidence: 0.9, CreatedAt: testNow}

	p := BuildProfile([]Factor{bogus, testFactor(CodeSymptomRash, 0.8, testNow)}, testNow)

	assert.NotContains(t, p.Factors, FactorCode("made_up_code"))
	assert.Contains(t, p.Factors, CodeSymptomRash)
}

func TestBuildProfileIsPure(t *testing.T) {
	factors := []Factor{
		testFactor(CodeSymptomHeadache, 0.85, testNow.Add(-time.Hour)),
		testFactor(CodeDurationFewDays, 0.9, testNow.Add(-time.Hour)),
		testFactor(CodeAccessCostBarrier, 0.85, testNow.Add(-2*time.Hour)),
	}

	first := BuildProfile(factors, testNow)
	second := BuildProfile(factors, testNow)

	assert.Equal(t, first, second)
}

func TestBuildProfileTopConstraints(t *testing.T) {
	factors := []Factor{
		testFactor(CodeAccessCostBarrier, 0.85, testNow.Add(-4*time.Hour)),
		testFactor(CodeResourceTimePressure, 0.85, testNow.Add(-3*time.Hour)),
		testFactor(CodeResourceCaregiving, 0.85, testNow.Add(-2*time.Hour)),
		testFactor(CodeAccessTransportBarrier, 0.85, testNow.Add(-time.Hour)),
		testFactor(CodeSymptomHeadache, 0.9, testNow),
	}

	p := BuildProfile(factors, testNow)

	require.Len(t, p.TopConstraints, maxTopConstraints)
	assert.Equal(t, CodeAccessTransportBarrier, p.TopConstraints[0].Code)
	assert.Equal(t, CodeResourceCaregiving, p.TopConstraints[1].Code)
	assert.Equal(t, CodeResourceTimePressure, p.TopConstraints[2].Code)
}

func TestBuildProfileCoverage(t *testing.T) {
	factors := []Factor{
		testFactor(CodeSymptomHeadache, 0.85, testNow),
		testFactor(CodeSeveritySevere, 0.85, testNow),
		testFactor(CodeDurationChronic, 0.9, testNow),
		testFactor(CodeSocialLimited, 0.8, testNow),
	}

	p := BuildProfile(factors, testNow)

	assert.Equal(t, DomainCoverage{Acute: 2}, p.Coverage[DomainSymptoms])
	assert.Equal(t, DomainCoverage{Chronic: 1}, p.Coverage[DomainDuration])
	// Unknown-horizon factors count as acute coverage.
	assert.Equal(t, DomainCoverage{Acute: 1}, p.Coverage[DomainSocial])
}

func TestSortedFactorsOrder(t *testing.T) {
	factors := []Factor{
		testFactor(CodeResourceTimePressure, 0.9, testNow),
		testFactor(CodeSymptomHeadache, 0.8, testNow),
		testFactor(CodeSymptomFever, 0.9, testNow),
		testFactor(CodeSafetyChestPain, 0.9, testNow),
	}

	sorted := BuildProfile(factors, testNow).SortedFactors()

	require.Len(t, sorted, 4)
	assert.Equal(t, CodeSafetyChestPain, sorted[0].Code)
	assert.Equal(t, CodeSymptomFever, sorted[1].Code)
	assert.Equal(t, CodeSymptomHeadache, sorted[2].Code)
	assert.Equal(t, CodeResourceTimePressure, sorted[3].Code)
}
