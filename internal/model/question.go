// Package model holds the Q&A entities and the request payloads that
// create or change them.
//
// Payload structs double as the declarative request schema: their json
// tags are the field whitelist, their validate tags the per-field rules.
package model

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every payload; validator caches struct metadata so
// one instance is used process-wide.
var validate = newValidator()

// newValidator reports fields under the name the client sent: the json key,
// or the query/path parameter for fields that never come from the body.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// Question is a top-level discussion item.
type Question struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// QuestionID addresses a single question through the {id} path segment.
type QuestionID struct {
	ID int64 `param:"id" json:"-"`
}

// Validate accepts any identifier; existence is decided by the database.
func (p *QuestionID) Validate() error {
	return nil
}

// ListQuestionsPayload is the (empty) request of GET /questions.
type ListQuestionsPayload struct{}

func (p *ListQuestionsPayload) Validate() error {
	return nil
}

// CreateQuestionPayload is the body of POST /questions.
type CreateQuestionPayload struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

func (p *CreateQuestionPayload) Validate() error {
	return validate.Struct(p)
}

// UpdateQuestionPayload is PUT /questions/{id}. All three fields are
// overwritten, so all three are required.
type UpdateQuestionPayload struct {
	ID          int64  `param:"id" json:"-"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

func (p *UpdateQuestionPayload) Validate() error {
	return validate.Struct(p)
}

// SearchQuestionsPayload is GET /questions/search. At least one filter
// must be non-empty; both together are ANDed.
type SearchQuestionsPayload struct {
	Title    string `query:"title" json:"-" validate:"required_without=Category"`
	Category string `query:"category" json:"-" validate:"required_without=Title"`
}

func (p *SearchQuestionsPayload) Validate() error {
	return validate.Struct(p)
}

// QuestionFilter carries the search criteria down to the repository.
// Empty fields do not filter.
type QuestionFilter struct {
	Title    string
	Category string
}

// Filter returns the repository filter for this search.
func (p *SearchQuestionsPayload) Filter() QuestionFilter {
	return QuestionFilter{Title: p.Title, Category: p.Category}
}
