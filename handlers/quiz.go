package handlers

import (
	"net/http"

	"github.com/andrewpaige1/lexideck-api/models"
	"github.com/andrewpaige1/lexideck-api/quiz"
	"github.com/andrewpaige1/lexideck-api/store"
)

type submitQuizRequest struct {
	Answers   models.AnswerSheet `json:"answers"`
	TimeSpent int                `json:"timeSpent" validate:"min=0"`
}

// GetQuizzes lists public quizzes without their questions.
func (h *Handler) GetQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.Store.ListQuizzes(r.Context(), store.QuizFilter{
		Category:   r.URL.Query().Get("category"),
		Difficulty: r.URL.Query().Get("difficulty"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	summaries := make([]models.QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		summaries = append(summaries, q.Summary())
	}
	h.respond(w, http.StatusOK, "Quizzes retrieved successfully", summaries)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := h.Store.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Quiz retrieved successfully", q)
}

// GetQuizReview returns the answer key view of a quiz with no attempt overlay.
func (h *Handler) GetQuizReview(w http.ResponseWriter, r *http.Request) {
	q, err := h.Store.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Quiz review retrieved successfully", quiz.BuildReviewView(*q, nil))
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req submitQuizRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	q, err := h.Store.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := quiz.Score(*q, req.Answers)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	attempt := quiz.NewAttempt(*q, currentUser(r).ID, req.Answers, req.TimeSpent, result)
	attempt.CompletedAt = h.Now()
	if err := h.Store.CreateAttempt(r.Context(), &attempt); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, "Quiz attempt submitted successfully", map[string]any{
		"attempt":        attempt,
		"score":          result.Score,
		"correctAnswers": result.CorrectAnswers,
		"totalQuestions": result.TotalQuestions,
		"isPassed":       result.IsPassed,
	})
}

func (h *Handler) GetQuizAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.Store.ListAttempts(r.Context(), currentUser(r).ID, r.PathValue("id"), store.QuizAttemptsLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Quiz attempts retrieved successfully", attempts)
}

// GetLatestAttempt returns the newest attempt together with its quiz and the
// reconstructed review.
func (h *Handler) GetLatestAttempt(w http.ResponseWriter, r *http.Request) {
	attempt, err := h.Store.LatestAttempt(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	q, err := h.Store.GetQuiz(r.Context(), attempt.QuizID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Latest attempt retrieved successfully", map[string]any{
		"attempt": attempt,
		"quiz":    q,
		"review":  quiz.BuildReviewView(*q, attempt),
	})
}

func (h *Handler) GetMyAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.Store.ListUserAttempts(r.Context(), currentUser(r).ID, store.MyAttemptsLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "User attempts retrieved successfully", attempts)
}
