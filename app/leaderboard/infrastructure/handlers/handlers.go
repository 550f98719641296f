package scoreboardhandlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	leaderboardservice "github.com/facematch/leaderboard/app/leaderboard/application"
	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

// ScoreboardHandler exposes the ranking service over HTTP.
type ScoreboardHandler struct {
	service leaderboardservice.Service
	logger  *slog.Logger
}

// NewScoreboardHandler creates a new ScoreboardHandler.
func NewScoreboardHandler(service leaderboardservice.Service, logger *slog.Logger) *ScoreboardHandler {
	return &ScoreboardHandler{
		service: service,
		logger:  logger,
	}
}

// GetScores handles GET /scores?mode=. An unknown or missing mode defaults to
// easy.
func (h *ScoreboardHandler) GetScores(w http.ResponseWriter, r *http.Request) {
	mode := leaderboarddomain.ParseMode(r.URL.Query().Get("mode"))

	list, err := h.service.GetScores(r.Context(), mode)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch scores: %v", err), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = leaderboarddomain.RankedList{}
	}

	writeJSON(w, http.StatusOK, list)
}

// SubmitScoreDto represents the input data for submitting a score. Score is a
// pointer so a missing field is distinguishable from a legitimate zero.
type SubmitScoreDto struct {
	Mode  string `json:"mode"`
	Name  string `json:"name"`
	Score *int   `json:"score"`
}

// SubmitScore handles POST /scores. A submission lacking mode, name, or a
// numeric score is rejected with 400 and no mutation.
func (h *ScoreboardHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var input SubmitScoreDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
		return
	}

	mode := leaderboarddomain.Mode(input.Mode)
	if !mode.IsValid() || input.Name == "" || input.Score == nil {
		http.Error(w, "mode, name, and numeric score are required", http.StatusBadRequest)
		return
	}

	list, err := h.service.SubmitScore(r.Context(), mode, input.Name, *input.Score)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to submit score: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// ClearScoresDto represents the input data for clearing a mode's scoreboard.
type ClearScoresDto struct {
	Mode string `json:"mode"`
}

// ClearScores handles POST /scores/clear. Idempotent.
func (h *ScoreboardHandler) ClearScores(w http.ResponseWriter, r *http.Request) {
	var input ClearScoresDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
		return
	}

	mode := leaderboarddomain.Mode(input.Mode)
	if !mode.IsValid() {
		http.Error(w, "mode is required", http.StatusBadRequest)
		return
	}

	if err := h.service.ClearScores(r.Context(), mode); err != nil {
		http.Error(w, fmt.Sprintf("Failed to clear scores: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Healthz reports liveness.
func (h *ScoreboardHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
