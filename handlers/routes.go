package handlers

import (
	"net/http"

	"github.com/andrewpaige1/lexideck-api/utils"
)

// Routes registers every API endpoint on mux. requireUser guards the routes
// that act on behalf of a signed-in user.
func (h *Handler) Routes(mux *http.ServeMux, requireUser func(http.HandlerFunc) http.HandlerFunc) {
	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("GET /api/auth/me", requireUser(h.Me))
	mux.HandleFunc("PUT /api/auth/update-profile", requireUser(h.UpdateProfile))

	// Flashcards
	mux.HandleFunc("GET /api/flashcards", requireUser(h.GetFlashcards))
	mux.HandleFunc("GET /api/flashcards/study", requireUser(h.GetStudyCards))
	mux.HandleFunc("GET /api/flashcards/due", requireUser(h.GetDueFlashcards))
	mux.HandleFunc("POST /api/flashcards", requireUser(h.CreateFlashcard))
	mux.HandleFunc("POST /api/flashcards/bulk", requireUser(h.CreateBulkFlashcards))
	mux.HandleFunc("POST /api/flashcards/reset-progress", requireUser(h.ResetFolderProgress))
	mux.HandleFunc("GET /api/flashcards/{id}", requireUser(h.GetFlashcard))
	mux.HandleFunc("PUT /api/flashcards/{id}", requireUser(h.UpdateFlashcard))
	mux.HandleFunc("DELETE /api/flashcards/{id}", requireUser(h.DeleteFlashcard))
	mux.HandleFunc("POST /api/flashcards/{id}/answer", requireUser(h.AnswerFlashcard))
	mux.HandleFunc("PUT /api/flashcards/{id}/review", requireUser(h.ReviewFlashcard))

	// Folders
	mux.HandleFunc("GET /api/folders", requireUser(h.GetFolders))
	mux.HandleFunc("POST /api/folders", requireUser(h.CreateFolder))
	mux.HandleFunc("GET /api/folders/{id}", requireUser(h.GetFolder))
	mux.HandleFunc("PUT /api/folders/{id}", requireUser(h.UpdateFolder))
	mux.HandleFunc("DELETE /api/folders/{id}", requireUser(h.DeleteFolder))
	mux.HandleFunc("POST /api/folders/{id}/move", requireUser(h.MoveFolder))
	mux.HandleFunc("POST /api/folders/{id}/recount", requireUser(h.RecountFolder))
	mux.HandleFunc("POST /api/folders/{id}/cards", requireUser(h.AddCardToFolder))
	mux.HandleFunc("DELETE /api/folders/{id}/cards/{cardId}", requireUser(h.RemoveCardFromFolder))

	// Quizzes
	mux.HandleFunc("GET /api/quizzes", h.GetQuizzes)
	mux.HandleFunc("GET /api/quizzes/my/attempts", requireUser(h.GetMyAttempts))
	mux.HandleFunc("GET /api/quizzes/{id}", h.GetQuiz)
	mux.HandleFunc("GET /api/quizzes/{id}/review", h.GetQuizReview)
	mux.HandleFunc("POST /api/quizzes/{id}/submit", requireUser(h.SubmitQuiz))
	mux.HandleFunc("GET /api/quizzes/{id}/attempts", requireUser(h.GetQuizAttempts))
	mux.HandleFunc("GET /api/quizzes/{id}/latest-attempt", requireUser(h.GetLatestAttempt))

	// Study sessions
	mux.HandleFunc("GET /api/sessions", requireUser(h.GetSessions))
	mux.HandleFunc("POST /api/sessions", requireUser(h.CreateSession))
	mux.HandleFunc("GET /api/sessions/stats", requireUser(h.GetStats))

	mux.HandleFunc("GET /healthz", h.Healthz)
}

// Healthz reports whether the database answers a ping.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.Store.DB().DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		h.Log.WithError(err).Warn("health check failed")
		utils.WriteError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	h.respond(w, http.StatusOK, "OK", nil)
}
