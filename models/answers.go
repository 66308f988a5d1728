package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// AnswerSheet maps a question index to the selected option index.
//
// Clients send it as an object keyed by the index ({"0": 1, "1": 0}) or as a
// positional array. Entries that are not non-negative integers on both sides
// are dropped: they count as unanswered.
type AnswerSheet map[int]int

func (a *AnswerSheet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	sheet := AnswerSheet{}
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
	case data[0] == '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("answers: %w", err)
		}
		for i, v := range raw {
			if opt, ok := parseIndex(v); ok {
				sheet[i] = opt
			}
		}
	default:
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("answers: %w", err)
		}
		for k, v := range raw {
			q, err := strconv.Atoi(strings.TrimSpace(k))
			if err != nil || q < 0 {
				continue
			}
			if opt, ok := parseIndex(v); ok {
				sheet[q] = opt
			}
		}
	}
	*a = sheet
	return nil
}

// parseIndex accepts 2, 2.0 and "2".
func parseIndex(raw json.RawMessage) (int, bool) {
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, false
		}
		n = float64(i)
	}
	if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func (a AnswerSheet) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[int]int(a))
}

// Scan implements sql.Scanner.
func (a *AnswerSheet) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*a = AnswerSheet{}
		return nil
	case []byte:
		return a.UnmarshalJSON(v)
	case string:
		return a.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("answers: unsupported scan type %T", value)
	}
}

// Value implements driver.Valuer.
func (a AnswerSheet) Value() (driver.Value, error) {
	b, err := a.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (AnswerSheet) GormDataType() string { return "json" }

func (AnswerSheet) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonColumnType(db)
}
