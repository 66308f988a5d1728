package models

import "time"

var (
	QuizCategories   = []string{"TOEIC", "IELTS", "General English", "Business English", "Academic"}
	QuizDifficulties = []string{"Beginner", "Intermediate", "Advanced"}
)

// Settings a quiz gets when its source omits them.
const (
	DefaultTimeLimit    = 30
	DefaultPassingScore = 70
)

// Quiz is a public multiple-choice test. Questions is stored as a JSON array.
type Quiz struct {
	ID            string       `gorm:"primaryKey;size:21" json:"id"`
	Title         string       `gorm:"not null;size:200" json:"title"`
	Description   string       `gorm:"type:text" json:"description"`
	Category      string       `gorm:"size:50;index" json:"category"`
	Difficulty    string       `gorm:"size:20;index" json:"difficulty"`
	Questions     QuestionList `gorm:"not null" json:"questions"`
	TimeLimit     int          `gorm:"not null" json:"timeLimit"`
	PassingScore  int          `gorm:"not null" json:"passingScore"`
	TotalAttempts int          `gorm:"not null;default:0" json:"totalAttempts"`
	IsPublic      bool         `gorm:"not null;index" json:"isPublic"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// QuizSummary is the listing shape: everything but the questions themselves.
type QuizSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	TimeLimit     int       `json:"timeLimit"`
	PassingScore  int       `json:"passingScore"`
	TotalAttempts int       `json:"totalAttempts"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (q Quiz) Summary() QuizSummary {
	return QuizSummary{
		ID:            q.ID,
		Title:         q.Title,
		Description:   q.Description,
		Category:      q.Category,
		Difficulty:    q.Difficulty,
		TimeLimit:     q.TimeLimit,
		PassingScore:  q.PassingScore,
		TotalAttempts: q.TotalAttempts,
		QuestionCount: len(q.Questions),
		CreatedAt:     q.CreatedAt,
	}
}

// QuizAttempt is one scored submission. Rows are inserted once and never updated.
type QuizAttempt struct {
	ID             string      `gorm:"primaryKey;size:21" json:"id"`
	UserID         string      `gorm:"not null;size:21;index:idx_attempts_user_quiz" json:"userId"`
	QuizID         string      `gorm:"not null;size:21;index:idx_attempts_user_quiz" json:"quizId"`
	Answers        AnswerSheet `gorm:"not null" json:"answers"`
	Score          int         `gorm:"not null" json:"score"`
	CorrectAnswers int         `gorm:"not null" json:"correctAnswers"`
	TotalQuestions int         `gorm:"not null" json:"totalQuestions"`
	TimeSpent      int         `gorm:"not null;default:0" json:"timeSpent"`
	IsPassed       bool        `gorm:"not null;default:false" json:"isPassed"`
	CompletedAt    time.Time   `gorm:"index" json:"completedAt"`
}
