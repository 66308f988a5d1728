package quiz

import "github.com/andrewpaige1/lexideck-api/models"

type OptionView struct {
	Index      int    `json:"index"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"isCorrect"`
	IsSelected bool   `json:"isSelected"`
}

type QuestionView struct {
	Index       int          `json:"index"`
	Question    string       `json:"question"`
	Explanation string       `json:"explanation,omitempty"`
	Options     []OptionView `json:"options"`
	// Set only when the view is built over an attempt.
	Selected  *int  `json:"selected,omitempty"`
	Answered  bool  `json:"answered"`
	IsCorrect *bool `json:"isCorrect,omitempty"`
}

// Summary comes straight from the stored attempt.
type Summary struct {
	Score          int  `json:"score"`
	CorrectAnswers int  `json:"correctAnswers"`
	Incorrect      int  `json:"incorrect"`
	TotalQuestions int  `json:"totalQuestions"`
	IsPassed       bool `json:"isPassed"`
	TimeSpent      int  `json:"timeSpent"`
}

type ReviewView struct {
	QuizID       string         `json:"quizId"`
	Title        string         `json:"title"`
	PassingScore int            `json:"passingScore"`
	AttemptID    string         `json:"attemptId,omitempty"`
	Questions    []QuestionView `json:"questions"`
	Summary      *Summary       `json:"summary,omitempty"`
}

// BuildReviewView lays the quiz out for review. With an attempt, each
// question carries the learner's selection and its correctness, and the
// summary repeats the attempt's stored figures instead of regrading. Without
// one, only the answer key is marked.
func BuildReviewView(q models.Quiz, attempt *models.QuizAttempt) ReviewView {
	view := ReviewView{
		QuizID:       q.ID,
		Title:        q.Title,
		PassingScore: q.PassingScore,
		Questions:    make([]QuestionView, len(q.Questions)),
	}
	for i, question := range q.Questions {
		qv := QuestionView{
			Index:       i,
			Question:    question.Question,
			Explanation: question.Explanation,
			Options:     make([]OptionView, len(question.Options)),
		}
		selected, answered := -1, false
		if attempt != nil {
			selected, answered = attempt.Answers[i]
		}
		for j, text := range question.Options {
			qv.Options[j] = OptionView{
				Index:      j,
				Text:       text,
				IsCorrect:  j == question.CorrectAnswer,
				IsSelected: answered && j == selected,
			}
		}
		if attempt != nil {
			correct := answered && IsCorrect(question, selected)
			qv.IsCorrect = &correct
			qv.Answered = answered
			if answered {
				sel := selected
				qv.Selected = &sel
			}
		}
		view.Questions[i] = qv
	}
	if attempt != nil {
		view.AttemptID = attempt.ID
		view.Summary = &Summary{
			Score:          attempt.Score,
			CorrectAnswers: attempt.CorrectAnswers,
			Incorrect:      attempt.TotalQuestions - attempt.CorrectAnswers,
			TotalQuestions: attempt.TotalQuestions,
			IsPassed:       attempt.IsPassed,
			TimeSpent:      attempt.TimeSpent,
		}
	}
	return view
}
