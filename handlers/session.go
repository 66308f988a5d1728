package handlers

import (
	"net/http"

	"github.com/andrewpaige1/lexideck-api/models"
	"github.com/andrewpaige1/lexideck-api/store"
)

type sessionRequest struct {
	FolderID       *string `json:"folderId"`
	CardsStudied   int     `json:"cardsStudied" validate:"min=0"`
	CorrectAnswers int     `json:"correctAnswers" validate:"min=0,ltefield=CardsStudied"`
	Duration       int     `json:"duration" validate:"min=0"`
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	sess := &models.StudySession{
		UserID:         currentUser(r).ID,
		CardsStudied:   req.CardsStudied,
		CorrectAnswers: req.CorrectAnswers,
		Duration:       req.Duration,
		CompletedAt:    h.Now(),
	}
	if req.FolderID != nil && *req.FolderID != "" {
		sess.FolderID = req.FolderID
	}
	if err := h.Store.CreateSession(r.Context(), sess); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, "Study session created successfully", sess)
}

func (h *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", store.DefaultSessionPageSize)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.Store.ListSessions(r.Context(), currentUser(r).ID, page, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Study sessions retrieved successfully", result)
}

// GetStats summarises the sessions of ?period=week|month|year|all (default week).
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "week"
	}
	since, err := store.PeriodStart(period, h.Now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sessions, err := h.Store.ListSessionsSince(r.Context(), currentUser(r).ID, since)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Statistics retrieved successfully", map[string]any{
		"stats":  store.SummarizeSessions(sessions),
		"period": period,
	})
}
