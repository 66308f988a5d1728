package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/andrewpaige1/lexideck-api/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Question is one multiple-choice item. CorrectAnswer indexes Options.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuestionList is the ordered question set of a quiz.
//
// On read it accepts either a JSON array or a JSON string that itself holds
// the array (older rows and some seed files are double encoded). It always
// writes a plain array, so nothing past this type sees the string form.
type QuestionList []Question

func (l *QuestionList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = QuestionList{}
		return nil
	}
	if data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return fmt.Errorf("questions: %w", err)
		}
		if strings.TrimSpace(encoded) == "" {
			*l = QuestionList{}
			return nil
		}
		data = []byte(encoded)
	}
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return fmt.Errorf("questions: %w", err)
	}
	if questions == nil {
		questions = []Question{}
	}
	*l = questions
	return nil
}

func (l QuestionList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Question(l))
}

// Scan implements sql.Scanner.
func (l *QuestionList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*l = QuestionList{}
		return nil
	case []byte:
		return l.UnmarshalJSON(v)
	case string:
		return l.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("questions: unsupported scan type %T", value)
	}
}

// Value implements driver.Valuer.
func (l QuestionList) Value() (driver.Value, error) {
	b, err := l.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (QuestionList) GormDataType() string { return "json" }

func (QuestionList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonColumnType(db)
}

// Validate checks that every question has a prompt, at least one option and
// a correct answer that points inside the options.
func (l QuestionList) Validate() error {
	for i, q := range l {
		if strings.TrimSpace(q.Question) == "" {
			return apperr.Validation("question %d has no prompt", i)
		}
		if len(q.Options) == 0 {
			return apperr.Validation("question %d has no options", i)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return apperr.Validation("question %d correct_answer %d is not an option index", i, q.CorrectAnswer)
		}
	}
	return nil
}

func jsonColumnType(db *gorm.DB) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "sqlite":
		return "JSON"
	}
	return ""
}
