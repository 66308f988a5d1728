// Package quiz scores quiz submissions and builds the review view shown
// after a quiz, either over a stored attempt or as a plain answer key.
package quiz

import (
	"math"

	"github.com/andrewpaige1/lexideck-api/apperr"
	"github.com/andrewpaige1/lexideck-api/models"
)

// Result is the outcome of scoring one submission.
type Result struct {
	CorrectAnswers int  `json:"correctAnswers"`
	TotalQuestions int  `json:"totalQuestions"`
	Score          int  `json:"score"`
	IsPassed       bool `json:"isPassed"`
}

// Score grades answers against the quiz's questions. Unanswered questions and
// answers that point outside the question list or the option list never
// count. A quiz with no questions cannot be scored.
func Score(q models.Quiz, answers models.AnswerSheet) (Result, error) {
	total := len(q.Questions)
	if total == 0 {
		return Result{}, apperr.Validation("quiz %q has no questions", q.Title)
	}
	correct := 0
	for idx, selected := range answers {
		if idx < 0 || idx >= total {
			continue
		}
		if IsCorrect(q.Questions[idx], selected) {
			correct++
		}
	}
	score := int(math.Round(float64(correct) / float64(total) * 100))
	return Result{
		CorrectAnswers: correct,
		TotalQuestions: total,
		Score:          score,
		IsPassed:       score >= q.PassingScore,
	}, nil
}

// IsCorrect compares the selected option's text with the correct option's
// text. Two slots holding the same text are both accepted.
func IsCorrect(question models.Question, selected int) bool {
	if selected < 0 || selected >= len(question.Options) {
		return false
	}
	if question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Options) {
		return false
	}
	return question.Options[selected] == question.Options[question.CorrectAnswer]
}

// NewAttempt builds the attempt row for a scored submission.
func NewAttempt(q models.Quiz, userID string, answers models.AnswerSheet, timeSpent int, r Result) models.QuizAttempt {
	if answers == nil {
		answers = models.AnswerSheet{}
	}
	if timeSpent < 0 {
		timeSpent = 0
	}
	return models.QuizAttempt{
		UserID:         userID,
		QuizID:         q.ID,
		Answers:        answers,
		Score:          r.Score,
		CorrectAnswers: r.CorrectAnswers,
		TotalQuestions: r.TotalQuestions,
		TimeSpent:      timeSpent,
		IsPassed:       r.IsPassed,
	}
}
