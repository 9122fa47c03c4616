package triage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned by KVStore implementations for missing keys.
var ErrNotFound = errors.New("key not found")

// KVStore is the opaque persistence collaborator. The core never assumes
// anything about what sits behind it.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}

const (
	maxStoredFactors   = 200
	maxStoredSnapshots = 50
)

// PendingState is the per-conversation follow-up state: the plan whose
// answer we are waiting for and how many questions in a row we've asked.
type PendingState struct {
	Plan            *FollowUpPlan `json:"plan,omitempty"`
	ConsecutiveAsks int           `json:"consecutive_asks"`
}

// Repository persists the factor history, profile, snapshot audit trail
// and conversation state as JSON blobs in the key-value store.
type Repository struct {
	store KVStore
}

func NewRepository(store KVStore) *Repository {
	return &Repository{store: store}
}

func historyKey(userID uuid.UUID) string   { return "triage:history:" + userID.String() }
func profileKey(userID uuid.UUID) string   { return "triage:profile:" + userID.String() }
func snapshotsKey(userID uuid.UUID) string { return "triage:snapshots:" + userID.String() }
func pendingKey(userID uuid.UUID) string   { return "triage:pending:" + userID.String() }

func (r *Repository) getJSON(ctx context.Context, key string, v any) error {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *Repository) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.store.Set(ctx, key, data)
}

// LoadHistory returns the stored factor history; a missing key is an
// empty history, not an error.
func (r *Repository) LoadHistory(ctx context.Context, userID uuid.UUID) ([]Factor, error) {
	var factors []Factor
	if err := r.getJSON(ctx, historyKey(userID), &factors); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return factors, nil
}

// capHistory trims the history to its most recent tail. Everything that
// holds history — store and cache alike — must hold the same capped view.
func capHistory(factors []Factor) []Factor {
	if len(factors) > maxStoredFactors {
		return factors[len(factors)-maxStoredFactors:]
	}
	return factors
}

// SaveHistory caps the history at the most recent factors before writing.
// The write is a single atomic replace; last writer wins and decay makes
// stale data self-correcting.
func (r *Repository) SaveHistory(ctx context.Context, userID uuid.UUID, factors []Factor) error {
	return r.setJSON(ctx, historyKey(userID), capHistory(factors))
}

func (r *Repository) LoadProfile(ctx context.Context, userID uuid.UUID) (ComplexityProfile, error) {
	var p ComplexityProfile
	err := r.getJSON(ctx, profileKey(userID), &p)
	return p, err
}

func (r *Repository) SaveProfile(ctx context.Context, userID uuid.UUID, p ComplexityProfile) error {
	return r.setJSON(ctx, profileKey(userID), p)
}

// AppendSnapshot stores the snapshot for audit, keeping a bounded tail.
func (r *Repository) AppendSnapshot(ctx context.Context, userID uuid.UUID, snap StateSnapshot) error {
	var snaps []StateSnapshot
	if err := r.getJSON(ctx, snapshotsKey(userID), &snaps); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	snaps = append(snaps, snap)
	if len(snaps) > maxStoredSnapshots {
		snaps = snaps[len(snaps)-maxStoredSnapshots:]
	}
	return r.setJSON(ctx, snapshotsKey(userID), snaps)
}

// LoadSnapshots returns the audit trail, oldest first.
func (r *Repository) LoadSnapshots(ctx context.Context, userID uuid.UUID) ([]StateSnapshot, error) {
	var snaps []StateSnapshot
	if err := r.getJSON(ctx, snapshotsKey(userID), &snaps); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return snaps, nil
}

func (r *Repository) LoadPending(ctx context.Context, userID uuid.UUID) (PendingState, error) {
	var p PendingState
	if err := r.getJSON(ctx, pendingKey(userID), &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return PendingState{}, nil
		}
		return PendingState{}, err
	}
	return p, nil
}

func (r *Repository) SavePending(ctx context.Context, userID uuid.UUID, p PendingState) error {
	return r.setJSON(ctx, pendingKey(userID), p)
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
