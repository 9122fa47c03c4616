package triage

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SummaryRenderer turns the current profile and latest snapshot into a
// shareable care summary document.
type SummaryRenderer interface {
	RenderSummary(profile ComplexityProfile, snap *StateSnapshot) ([]byte, error)
}

type Handler struct {
	svc     *Service
	summary SummaryRenderer
}

func NewHandler(svc *Service, summary SummaryRenderer) *Handler {
	return &Handler{svc: svc, summary: summary}
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/triage/events", h.HandleEvent)
	r.Get("/triage/users/{userID}/profile", h.HandleProfile)
	r.Get("/triage/users/{userID}/summary", h.HandleSummary)
}

type eventRequest struct {
	UserID           string `json:"user_id"`
	Text             string `json:"text"`
	Intent           string `json:"intent"`
	EventID          string `json:"event_id"`
	PreviousQuestion string `json:"previous_question"`
}

func (h *Handler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	intent := Intent(req.Intent)
	if req.Intent == "" {
		intent = IntentNewReport
	}
	if !intent.Valid() {
		http.Error(w, "Unknown intent", http.StatusBadRequest)
		return
	}

	resp, err := h.svc.ProcessEvent(r.Context(), EventInput{
		UserID:           userID,
		Text:             req.Text,
		Intent:           intent,
		EventID:          req.EventID,
		PreviousQuestion: req.PreviousQuestion,
	})
	if err != nil {
		http.Error(w, "Processing failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	profile, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	profile, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}
	snap, err := h.svc.LatestSnapshot(r.Context(), userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		http.Error(w, "Failed to load snapshot", http.StatusInternalServerError)
		return
	}

	pdf, err := h.summary.RenderSummary(profile, snap)
	if err != nil {
		http.Error(w, "Summary failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Write(pdf)
}
