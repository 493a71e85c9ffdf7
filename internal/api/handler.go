package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/mudarris/backend/internal/bot"
	"github.com/mudarris/backend/internal/models"
	"github.com/mudarris/backend/internal/progress"
)

type Handler struct {
	svc   *bot.Service
	store *progress.Store
}

func NewHandler(svc *bot.Service, store *progress.Store) *Handler {
	return &Handler{svc: svc, store: store}
}

// PostMessage injects one inbound message through the core entry point and
// returns the replies. This is the webhook-style transport used by tests
// and local tooling.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req models.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.UserID <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "user_id is required"})
		return
	}

	replies := h.svc.OnMessage(r.Context(), req.UserID, req.Text, time.Now())
	if replies == nil {
		replies = []string{}
	}
	writeJSON(w, http.StatusOK, models.MessageResponse{Replies: replies})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	p, err := h.store.Get(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load profile"})
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}

	track := ""
	if p.Track != nil {
		track = *p.Track
	}
	writeJSON(w, http.StatusOK, models.ProfileResponse{
		UserID:           p.UserID,
		Track:            track,
		Tier:             progress.Tier(p.Experience),
		Experience:       p.Experience,
		QuizzesCompleted: p.QuizzesCompleted,
		CorrectAnswers:   p.CorrectAnswers,
		Accuracy:         progress.Accuracy(p.CorrectAnswers, p.QuizzesCompleted),
	})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := intQueryParam(r.URL.Query(), "limit", 10)
	if limit > 100 {
		limit = 100
	}

	entries, err := h.store.TopN(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load leaderboard"})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load stats"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query map[string][]string, key string, fallback int) int {
	values := query[key]
	if len(values) == 0 {
		return fallback
	}
	n, err := strconv.Atoi(values[0])
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
