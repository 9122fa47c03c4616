package triage

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	pdf []byte
	err error
}

func (r stubRenderer) RenderSummary(ComplexityProfile, *StateSnapshot) ([]byte, error) {
	return r.pdf, r.err
}

func newTestRouter(t *testing.T, renderer SummaryRenderer) *chi.Mux {
	t.Helper()
	svc := newTestService(t, newFakeStore())
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(svc, renderer))
	return r
}

func postEvent(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/triage/events", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleEvent(t *testing.T) {
	r := newTestRouter(t, stubRenderer{})
	userID := uuid.NewString()

	rec := postEvent(t, r, `{"user_id":"`+userID+`","text":"I've had a throbbing headache for 3 days and it's getting worse","intent":"new_report"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ResponseModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ModeAnswer, resp.Mode)
	assert.NotEmpty(t, resp.Confirmation)
}

func TestHandleEventDefaultsIntent(t *testing.T) {
	r := newTestRouter(t, stubRenderer{})

	rec := postEvent(t, r, `{"user_id":"`+uuid.NewString()+`","text":"headache"}`)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleEventRejectsBadInput(t *testing.T) {
	r := newTestRouter(t, stubRenderer{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"user_id":`},
		{"bad user id", `{"user_id":"not-a-uuid","text":"headache","intent":"new_report"}`},
		{"unknown intent", `{"user_id":"` + uuid.NewString() + `","text":"headache","intent":"diagnose"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postEvent(t, r, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleProfile(t *testing.T) {
	r := newTestRouter(t, stubRenderer{})
	userID := uuid.NewString()

	rec := postEvent(t, r, `{"user_id":"`+userID+`","text":"I can't afford to see a doctor and I'm exhausted","intent":"new_report"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/triage/users/"+userID+"/profile", nil)
	got := httptest.NewRecorder()
	r.ServeHTTP(got, req)

	require.Equal(t, http.StatusOK, got.Code)
	var profile ComplexityProfile
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &profile))
	assert.Contains(t, profile.Factors, CodeAccessCostBarrier)
}

func TestHandleProfileRejectsBadUserID(t *testing.T) {
	r := newTestRouter(t, stubRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/triage/users/nope/profile", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSummary(t *testing.T) {
	r := newTestRouter(t, stubRenderer{pdf: []byte("%PDF-1.4")})

	req := httptest.NewRequest(http.MethodGet, "/triage/users/"+uuid.NewString()+"/summary", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
}

func TestHandleSummaryRendererFailure(t *testing.T) {
	r := newTestRouter(t, stubRenderer{err: errors.New("no font")})

	req := httptest.NewRequest(http.MethodGet, "/triage/users/"+uuid.NewString()+"/summary", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
