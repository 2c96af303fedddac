package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// AnswerOption holds one record of labeled answer texts for a question.
type AnswerOption struct {
	A string `json:"a,omitempty"`
	B string `json:"b,omitempty"`
	C string `json:"c,omitempty"`
	D string `json:"d,omitempty"`
}

// AnswerOptions is the ordered list of answer records, stored as a JSON column.
type AnswerOptions []AnswerOption

func (a AnswerOptions) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *AnswerOptions) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = nil
		return nil
	default:
		return fmt.Errorf("unsupported answer options type %T", value)
	}
}

// Question represents a single trivia question belonging to a game.
// Questions record their own author; they are removed together with
// their game.
type Question struct {
	gorm.Model
	Question string        `gorm:"not null"`
	Answers  AnswerOptions `gorm:"type:text"`
	GameID   uint          `gorm:"not null;index"`
	UserID   uint          `gorm:"not null;index"`

	Game Game `gorm:"foreignKey:GameID"`
	User User `gorm:"foreignKey:UserID"`
}
