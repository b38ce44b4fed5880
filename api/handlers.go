package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/warp/hours-sentinel/cadence"
	"github.com/warp/hours-sentinel/calendar"
	"github.com/warp/hours-sentinel/runner"
	"github.com/warp/hours-sentinel/shortfall"
)

// Handler serves the trigger endpoints on top of a Runner.
type Handler struct {
	Runner *runner.Runner
	Log    *zap.Logger

	// now is swappable for tests; defaults to calendar.Today.
	now func() calendar.Date
}

func NewHandler(r *runner.Runner, log *zap.Logger) *Handler {
	return &Handler{Runner: r, Log: log, now: calendar.Today}
}

// =============================================================================
// DTO TYPES
// =============================================================================

type runRequest struct {
	// Cadence forces a single cadence ("daily", "weekly", "monthly").
	// Empty means run whatever is active today.
	Cadence string `json:"cadence,omitempty"`
	// Date overrides "today" (2006-01-02). Used for replaying a missed run.
	Date string `json:"date,omitempty"`
}

type recordDTO struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	TotalHours    string `json:"total_hours"`
	ExpectedHours string `json:"expected_hours"`
}

type previewResponse struct {
	Cadence string      `json:"cadence"`
	From    string      `json:"from"`
	To      string      `json:"to"`
	Records []recordDTO `json:"records"`
}

func toRecordDTOs(records []shortfall.Record) []recordDTO {
	out := make([]recordDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, recordDTO{
			Name:          rec.User.FullName(),
			Email:         rec.User.Email,
			TotalHours:    rec.TotalHours.StringFixed(2),
			ExpectedHours: rec.ExpectedHours.StringFixed(2),
		})
	}
	return out
}

// =============================================================================
// HANDLERS
// =============================================================================

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Run executes the active cadences, or one forced cadence when the body
// names it. Responds 204 on success, 502 when any cadence run failed.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	today, ok := h.resolveDate(w, req.Date)
	if !ok {
		return
	}

	var err error
	if req.Cadence != "" {
		var c cadence.Cadence
		if c, err = cadence.Parse(req.Cadence); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		_, err = h.Runner.RunCadence(r.Context(), c, today)
	} else {
		err = h.Runner.RunToday(r.Context(), today)
	}

	if err != nil {
		h.Log.Error("triggered run failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Preview analyzes one cadence and returns the would-be report without
// posting anything.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	c, err := cadence.Parse(r.URL.Query().Get("cadence"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	today, ok := h.resolveDate(w, r.URL.Query().Get("date"))
	if !ok {
		return
	}

	records, rng, err := h.Runner.Preview(r.Context(), c, today)
	if err != nil {
		if errors.Is(err, cadence.ErrUnknownCadence) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Log.Error("preview failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, previewResponse{
		Cadence: c.String(),
		From:    rng.From.String(),
		To:      rng.To.String(),
		Records: toRecordDTOs(records),
	})
}

func (h *Handler) resolveDate(w http.ResponseWriter, raw string) (calendar.Date, bool) {
	if raw == "" {
		return h.now(), true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want 2006-01-02")
		return calendar.Date{}, false
	}
	return calendar.FromTime(t), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
