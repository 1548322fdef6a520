package model

import (
	"time"
	"unicode/utf8"

	"github.com/deppfellow/qna-api/internal/errs"
)

// MaxAnswerLength is the longest answer accepted, counted in runes.
const MaxAnswerLength = 300

// Answer is a text response bound to exactly one Question.
type Answer struct {
	ID         int64     `json:"id" db:"id"`
	QuestionID int64     `json:"question_id" db:"question_id"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// CreateAnswerPayload is POST /questions/{id}/answers.
type CreateAnswerPayload struct {
	QuestionID int64  `param:"id" json:"-"`
	Content    string `json:"content" validate:"required,max=300"`
}

func (p *CreateAnswerPayload) Validate() error {
	return validate.Struct(p)
}

// InvalidMessage names the length limit when that is what failed.
func (p *CreateAnswerPayload) InvalidMessage() string {
	if utf8.RuneCountInString(p.Content) > MaxAnswerLength {
		return errs.MsgAnswerTooLong
	}
	return errs.MsgInvalidRequest
}
