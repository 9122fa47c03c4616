package triage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, store KVStore) *Service {
	t.Helper()
	svc := NewService(newTestEngine(t), NewRepository(store), nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestProcessEventAskThenFollowUp(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()
	userID := uuid.New()

	first, err := svc.ProcessEvent(ctx, EventInput{UserID: userID, Text: "I've got a headache", Intent: IntentNewReport})
	require.NoError(t, err)
	assert.Equal(t, ModeAskFollowUp, first.Mode)
	require.NotNil(t, first.FollowUpPlan)
	assert.Equal(t, "duration", first.FollowUpPlan.Key)
	assert.False(t, first.PersistenceWarning)

	second, err := svc.ProcessEvent(ctx, EventInput{UserID: userID, Text: "A few days", Intent: IntentFollowUp})
	require.NoError(t, err)
	assert.Equal(t, ModeAnswer, second.Mode)
	assert.Nil(t, second.FollowUpPlan)

	profile, err := svc.Profile(ctx, userID)
	require.NoError(t, err)
	require.Contains(t, profile.Factors, CodeDurationFewDays)
	assert.Equal(t, followUpWriteConfidence, profile.Factors[CodeDurationFewDays].Confidence)

	snap, err := svc.LatestSnapshot(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, UncertaintyLow, snap.Uncertainty)
	assert.Equal(t, ActionAnswer, snap.NextAction)

	pending, err := svc.repo.LoadPending(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, pending.Plan)
	assert.Zero(t, pending.ConsecutiveAsks)
}

func TestProcessEventCompleteReportAnswersDirectly(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	resp, err := svc.ProcessEvent(context.Background(), EventInput{
		UserID: uuid.New(),
		Text:   "I've had a throbbing headache for 3 days and it's getting worse",
		Intent: IntentNewReport,
	})

	require.NoError(t, err)
	assert.Equal(t, ModeAnswer, resp.Mode)
	assert.Equal(t, StepPharmacist, resp.RouterCategory)
	assert.NotEmpty(t, resp.Answer)
	assert.NotEmpty(t, resp.KeyFactors)
	assert.NotEmpty(t, resp.Transparency.Chips)
}

func TestProcessEventSelfHarmAlwaysEscalates(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	for _, intent := range []Intent{IntentNewReport, IntentFollowUp, IntentLogOnly} {
		resp, err := svc.ProcessEvent(context.Background(), EventInput{
			UserID: uuid.New(),
			Text:   "my tooth hurts and honestly i just want to end it all",
			Intent: intent,
		})
		require.NoError(t, err)
		assert.Equal(t, ModeSafetyEscalation, resp.Mode, string(intent))
		assert.Equal(t, StepCrisisSupport, resp.RouterCategory, string(intent))
		assert.Equal(t, safetyCopyCrisis, resp.SafetyNet, string(intent))
	}
}

func TestProcessEventAccessBarrierRaisesFriction(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	userID := uuid.New()

	resp, err := svc.ProcessEvent(context.Background(), EventInput{
		UserID: userID,
		Text:   "I can't afford to see a doctor and I'm exhausted",
		Intent: IntentNewReport,
	})
	require.NoError(t, err)
	assert.Equal(t, ModeAnswer, resp.Mode)

	snap, err := svc.LatestSnapshot(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, RiskLow, snap.Risk)
	assert.Equal(t, FrictionHigh, snap.Friction)
	assert.Equal(t, UncertaintyLow, snap.Uncertainty)
}

func TestProcessEventLogOnly(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	resp, err := svc.ProcessEvent(context.Background(), EventInput{
		UserID: uuid.New(),
		Text:   "barely slept last night",
		Intent: IntentLogOnly,
	})

	require.NoError(t, err)
	assert.Equal(t, ModeLogOnly, resp.Mode)
	assert.Empty(t, resp.Answer)
}

func TestProcessEventSurvivesBrokenStore(t *testing.T) {
	svc := newTestService(t, brokenStore{err: errors.New("connection refused")})

	resp, err := svc.ProcessEvent(context.Background(), EventInput{
		UserID: uuid.New(),
		Text:   "I've had a throbbing headache for 3 days and it's getting worse",
		Intent: IntentNewReport,
	})

	require.NoError(t, err)
	assert.True(t, resp.PersistenceWarning)
	assert.Equal(t, ModeAnswer, resp.Mode)
	assert.NotEmpty(t, resp.Answer)
	assert.NotEmpty(t, resp.Confirmation)
	assert.Equal(t, StepPharmacist, resp.RouterCategory)
}

func TestProcessEventFollowUpBudget(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.repo.SavePending(ctx, userID, PendingState{ConsecutiveAsks: maxConsecutiveAsks}))

	resp, err := svc.ProcessEvent(ctx, EventInput{UserID: userID, Text: "I've got a headache", Intent: IntentNewReport})
	require.NoError(t, err)
	assert.Equal(t, ModeAnswer, resp.Mode)
	assert.Nil(t, resp.FollowUpPlan)

	pending, err := svc.repo.LoadPending(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, pending.ConsecutiveAsks)
}

func TestProcessEventCountsConsecutiveAsks(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.ProcessEvent(ctx, EventInput{UserID: userID, Text: "I've got a headache", Intent: IntentNewReport})
	require.NoError(t, err)
	_, err = svc.ProcessEvent(ctx, EventInput{UserID: userID, Text: "my tooth hurts", Intent: IntentNewReport})
	require.NoError(t, err)

	pending, err := svc.repo.LoadPending(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, pending.ConsecutiveAsks)
	require.NotNil(t, pending.Plan)
}

func TestProcessEventUnmatchedFollowUpFallsThrough(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.ProcessEvent(ctx, EventInput{UserID: userID, Text: "I've got a headache", Intent: IntentNewReport})
	require.NoError(t, err)

	// An answer that matches no choice goes through organic extraction.
	resp, err := svc.ProcessEvent(ctx, EventInput{UserID: userID, Text: "it comes and goes, started again 2 days ago", Intent: IntentFollowUp})
	require.NoError(t, err)
	assert.Equal(t, ModeAnswer, resp.Mode)

	profile, err := svc.Profile(ctx, userID)
	require.NoError(t, err)
	assert.Contains(t, profile.Factors, CodeDurationFewDays)
	assert.Contains(t, profile.Factors, CodeDurationRecurring)
}

func TestMatchChoice(t *testing.T) {
	plan := &FollowUpPlan{Choices: followUpChoicesFor("duration")}

	tests := []struct {
		text  string
		label string
		ok    bool
	}{
		{"A few days", "A few days", true},
		{"a FEW days!", "A few days", true},
		{"it's been a few days now", "A few days", true},
		{"it's on and off for months honestly", "On and off for months", true},
		{"Today", "Today", true},
		{"", "", false},
		{"no idea honestly", "", false},
		// Fragments of a label are not an answer.
		{"off", "", false},
		{"a", "", false},
		{"on and off", "", false},
	}
	for _, tt := range tests {
		choice, ok := matchChoice(plan, tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		if tt.ok {
			assert.Equal(t, tt.label, choice.Label, tt.text)
		}
	}
}

func TestProcessEventAppliesPhrasing(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	gen := &stubGenerator{text: "Warmer line."}
	svc.textgen = gen

	resp, err := svc.ProcessEvent(context.Background(), EventInput{
		UserID: uuid.New(),
		Text:   "I've had a throbbing headache for 3 days and it's getting worse",
		Intent: IntentNewReport,
	})

	require.NoError(t, err)
	assert.Equal(t, ModeAnswer, resp.Mode)
	assert.True(t, gen.called)
	assert.Equal(t, "Warmer line.", resp.Confirmation)
}

func TestPersistCapsCachedHistory(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	ctx := context.Background()
	userID := uuid.New()

	factors := make([]Factor, 0, maxStoredFactors+5)
	for i := 0; i < maxStoredFactors+5; i++ {
		f := testFactor(CodeSymptomHeadache, 0.8, testNow)
		f.ID = fmt.Sprintf("f-%d", i)
		factors = append(factors, f)
	}

	require.NoError(t, svc.persist(ctx, userID, factors, ComplexityProfile{}, StateSnapshot{}, PendingState{}))

	cached, err := svc.loadHistory(ctx, userID)
	require.NoError(t, err)
	stored, err := svc.repo.LoadHistory(ctx, userID)
	require.NoError(t, err)

	require.Len(t, cached, maxStoredFactors)
	assert.Equal(t, "f-5", cached[0].ID)
	assert.Equal(t, stored, cached)
}

// A store whose history pages fail to read while everything else works.
type historylessStore struct{ KVStore }

func (s historylessStore) Get(ctx context.Context, key string) ([]byte, error) {
	if strings.HasPrefix(key, "triage:history:") {
		return nil, errors.New("corrupt page")
	}
	return s.KVStore.Get(ctx, key)
}

func TestProfileServesStoredWhenHistoryUnreadable(t *testing.T) {
	svc := newTestService(t, historylessStore{newFakeStore()})
	ctx := context.Background()
	userID := uuid.New()

	saved := profileOf(t, testFactor(CodeSymptomHeadache, 0.85, testNow))
	require.NoError(t, svc.repo.SaveProfile(ctx, userID, saved))

	got, err := svc.Profile(ctx, userID)
	require.NoError(t, err)
	assert.Contains(t, got.Factors, CodeSymptomHeadache)

	// No stored profile either: the history error surfaces.
	_, err = svc.Profile(ctx, uuid.New())
	assert.Error(t, err)
}

func TestRephraseConfirmation(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	gen := &stubGenerator{text: "Warmer line."}
	svc.textgen = gen
	resp := &ResponseModel{Mode: ModeAnswer, Confirmation: "Template line."}
	svc.rephraseConfirmation(context.Background(), resp)
	assert.Equal(t, "Warmer line.", resp.Confirmation)
	assert.True(t, gen.called)

	svc.textgen = &stubGenerator{err: errors.New("timeout")}
	resp = &ResponseModel{Mode: ModeAnswer, Confirmation: "Template line."}
	svc.rephraseConfirmation(context.Background(), resp)
	assert.Equal(t, "Template line.", resp.Confirmation)

	safetyGen := &stubGenerator{text: "Warmer line."}
	svc.textgen = safetyGen
	resp = &ResponseModel{Mode: ModeSafetyEscalation, Confirmation: confirmationEscalation}
	svc.rephraseConfirmation(context.Background(), resp)
	assert.Equal(t, confirmationEscalation, resp.Confirmation)
	assert.False(t, safetyGen.called)
}

type stubGenerator struct {
	text   string
	err    error
	called bool
}

func (g *stubGenerator) Generate(context.Context, string) (string, error) {
	g.called = true
	return g.text, g.err
}
