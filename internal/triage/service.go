package triage

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"wellness-triage/internal/metrics"
)

// TextGenerator is the optional phrasing collaborator. It may fail or
// return empty; the service never depends on it for correctness.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	maxConsecutiveAsks = 3
	textgenTimeout     = 800 * time.Millisecond

	historyCacheTTL   = 5 * time.Minute
	historyCacheSweep = 10 * time.Minute
)

// EventInput is the inbound event shape.
type EventInput struct {
	UserID           uuid.UUID `json:"user_id"`
	Text             string    `json:"text"`
	Intent           Intent    `json:"intent"`
	EventID          string    `json:"event_id,omitempty"`
	PreviousQuestion string    `json:"previous_question,omitempty"`
}

// Service runs the pipeline per event: read state, evaluate, write state.
// Each event is handled end to end; writes are single atomic replaces so
// concurrent events degrade to last-writer-wins, which decay corrects.
type Service struct {
	engine  *Engine
	repo    *Repository
	textgen TextGenerator
	cache   *gocache.Cache
	now     func() time.Time
}

func NewService(engine *Engine, repo *Repository, textgen TextGenerator) *Service {
	return &Service{
		engine:  engine,
		repo:    repo,
		textgen: textgen,
		cache:   gocache.New(historyCacheTTL, historyCacheSweep),
		now:     time.Now,
	}
}

// ProcessEvent is the single entry point for a user input. It always
// returns a complete response; persistence trouble is downgraded to a
// warning flag on the payload.
func (s *Service) ProcessEvent(ctx context.Context, in EventInput) (*ResponseModel, error) {
	now := s.now()
	ev := Event{
		ID:               in.EventID,
		UserID:           in.UserID,
		Text:             in.Text,
		Intent:           in.Intent,
		PreviousQuestion: in.PreviousQuestion,
		CreatedAt:        now,
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	log := slog.With("event_id", ev.ID, "user_id", in.UserID.String(), "intent", string(in.Intent))

	persistWarn := false

	history, err := s.loadHistory(ctx, in.UserID)
	if err != nil {
		log.Warn("failed to load factor history, continuing with empty profile", "error", err)
		metrics.PersistenceWarnings.Inc()
		persistWarn = true
		history = nil
	}

	pending, err := s.repo.LoadPending(ctx, in.UserID)
	if err != nil {
		log.Warn("failed to load conversation state", "error", err)
		metrics.PersistenceWarnings.Inc()
		persistWarn = true
		pending = PendingState{}
	}
	if ev.Intent == IntentFollowUp && ev.PreviousQuestion == "" && pending.Plan != nil {
		ev.PreviousQuestion = pending.Plan.Question
	}

	newFactors, missing := s.evaluate(ev, pending, now)
	allFactors := append(append([]Factor(nil), history...), newFactors...)

	profile := BuildProfile(allFactors, now)
	askExhausted := pending.ConsecutiveAsks >= maxConsecutiveAsks
	snap := BuildSnapshot(ev, newFactors, profile, missing, askExhausted, now)
	route := Route(snap, profile)
	resp := s.engine.Assemble(ev, profile, snap, route)

	// One question was either just answered or abandoned; either way the
	// slate is clean unless this turn asks again.
	pending.Plan = nil
	if snap.NextAction == ActionAskFollowUp {
		pending.Plan = resp.FollowUpPlan
		pending.ConsecutiveAsks++
		metrics.FollowUpsTotal.Inc()
	} else {
		pending.ConsecutiveAsks = 0
	}

	if err := s.persist(ctx, in.UserID, allFactors, profile, snap, pending); err != nil {
		log.Warn("failed to persist triage state", "error", err)
		metrics.PersistenceWarnings.Inc()
		persistWarn = true
	}
	resp.PersistenceWarning = persistWarn

	s.rephraseConfirmation(ctx, &resp)

	metrics.EventsTotal.WithLabelValues(string(ev.Intent)).Inc()
	metrics.RoutesTotal.WithLabelValues(string(route.Category)).Inc()
	if snap.NextAction == ActionSafetyEscalation {
		metrics.EscalationsTotal.Inc()
	}
	log.Info("event processed",
		"risk", string(snap.Risk),
		"friction", string(snap.Friction),
		"uncertainty", string(snap.Uncertainty),
		"action", string(snap.NextAction),
		"route", string(route.Category))

	return &resp, nil
}

// evaluate produces this event's new factors and at most one MissingInfo.
// A follow-up answer that matches a pending choice writes that choice's
// factors through the same path as organic extraction; anything else goes
// through the full classifier + extractor.
func (s *Service) evaluate(ev Event, pending PendingState, now time.Time) ([]Factor, *MissingInfo) {
	if ev.Intent == IntentFollowUp && pending.Plan != nil {
		if choice, ok := matchChoice(pending.Plan, ev.Text); ok {
			factors := make([]Factor, 0, len(choice.WritesFactors))
			for _, tpl := range choice.WritesFactors {
				f := tpl
				f.ID = uuid.NewString()
				f.SourceEventID = ev.ID
				f.CreatedAt = now
				factors = append(factors, f)
			}
			return factors, nil
		}
	}
	cls := s.engine.Classify(ev.Text, ev.Intent, ev.PreviousQuestion)
	extraction := s.engine.Extract(ev, cls, now)
	return extraction.Factors, extraction.Missing
}

// matchChoice compares the user's words against the plan's choice labels.
// An answer matches when it equals a normalized label or contains every word
// of one; a stray fragment like "off" must not select "On and off for
// months", since a match writes factors at follow-up confidence.
func matchChoice(plan *FollowUpPlan, text string) (FollowUpChoice, bool) {
	normalized := normalizeText(text)
	if normalized == "" {
		return FollowUpChoice{}, false
	}
	answerWords := make(map[string]bool)
	for _, w := range strings.Fields(normalized) {
		answerWords[w] = true
	}
	for _, choice := range plan.Choices {
		label := normalizeText(choice.Label)
		if normalized == label || coversLabel(answerWords, label) {
			return choice, true
		}
	}
	return FollowUpChoice{}, false
}

func coversLabel(answerWords map[string]bool, label string) bool {
	words := strings.Fields(label)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !answerWords[w] {
			return false
		}
	}
	return true
}

func (s *Service) persist(ctx context.Context, userID uuid.UUID, factors []Factor, profile ComplexityProfile, snap StateSnapshot, pending PendingState) error {
	factors = capHistory(factors)
	if err := s.repo.SaveHistory(ctx, userID, factors); err != nil {
		return err
	}
	s.cache.Set(historyCacheName(userID), factors, gocache.DefaultExpiration)
	if err := s.repo.SaveProfile(ctx, userID, profile); err != nil {
		return err
	}
	if err := s.repo.AppendSnapshot(ctx, userID, snap); err != nil {
		return err
	}
	return s.repo.SavePending(ctx, userID, pending)
}

func historyCacheName(userID uuid.UUID) string { return "history:" + userID.String() }

func (s *Service) loadHistory(ctx context.Context, userID uuid.UUID) ([]Factor, error) {
	if cached, ok := s.cache.Get(historyCacheName(userID)); ok {
		if factors, ok := cached.([]Factor); ok {
			return factors, nil
		}
	}
	factors, err := s.repo.LoadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(historyCacheName(userID), factors, gocache.DefaultExpiration)
	return factors, nil
}

// rephraseConfirmation asks the optional collaborator for a warmer
// confirmation line. Any failure or empty result keeps the template copy.
// Safety turns never go near it.
func (s *Service) rephraseConfirmation(ctx context.Context, resp *ResponseModel) {
	if s.textgen == nil || resp.Mode == ModeSafetyEscalation {
		return
	}
	genCtx, cancel := context.WithTimeout(ctx, textgenTimeout)
	defer cancel()
	phrased, err := s.textgen.Generate(genCtx, "Rephrase warmly, one sentence, no medical advice: "+resp.Confirmation)
	if err != nil || strings.TrimSpace(phrased) == "" {
		return
	}
	resp.Confirmation = strings.TrimSpace(phrased)
}

// Profile recomputes the current decayed profile from the stored history.
// If the history cannot be read, the last persisted profile is served
// instead of failing the read outright; it may predate recent decay.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (ComplexityProfile, error) {
	history, err := s.loadHistory(ctx, userID)
	if err != nil {
		if stored, perr := s.repo.LoadProfile(ctx, userID); perr == nil {
			return stored, nil
		}
		return ComplexityProfile{}, err
	}
	return BuildProfile(history, s.now()), nil
}

// LatestSnapshot returns the most recent audited snapshot, if any.
func (s *Service) LatestSnapshot(ctx context.Context, userID uuid.UUID) (*StateSnapshot, error) {
	snaps, err := s.repo.LoadSnapshots(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, nil
	}
	return &snaps[len(snaps)-1], nil
}

// Ping reports store health for the liveness endpoint.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
