package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/qna-api/internal/errs"
	"github.com/deppfellow/qna-api/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, target, body string, params ...string) echo.Context {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	if len(params) > 0 {
		c.SetParamNames("id")
		c.SetParamValues(params...)
	}
	return c
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidate_CreateQuestion(t *testing.T) {
	c := newContext(http.MethodPost, "/questions", `{"title":"Go","description":"How?","category":"lang"}`)

	var payload model.CreateQuestionPayload
	require.NoError(t, BindAndValidate(c, &payload))

	assert.Equal(t, "Go", payload.Title)
	assert.Equal(t, "How?", payload.Description)
	assert.Equal(t, "lang", payload.Category)
}

func TestBindAndValidate_RejectsUnknownField(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []errs.FieldError
	}{
		{
			name: "extra key",
			body: `{"title":"Go","description":"How?","category":"lang","author":"x"}`,
			want: []errs.FieldError{{Field: "author", Error: "is not allowed"}},
		},
		{
			name: "differently cased keys",
			body: `{"TITLE":"Go","Description":"How?","category":"lang"}`,
			want: []errs.FieldError{
				{Field: "TITLE", Error: "is not allowed"},
				{Field: "Description", Error: "is not allowed"},
			},
		},
		{
			name: "repeated key",
			body: `{"title":"Go","title":"Rust","description":"How?","category":"lang"}`,
			want: []errs.FieldError{{Field: "title", Error: "must appear only once"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(http.MethodPost, "/questions", tt.body)

			var payload model.CreateQuestionPayload
			httpErr := asHTTPError(t, BindAndValidate(c, &payload))

			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, errs.MsgInvalidRequest, httpErr.Message)
			assert.Equal(t, tt.want, httpErr.Errors)
			assert.Empty(t, payload.Title)
		})
	}
}

func TestBindAndValidate_NonObjectBody(t *testing.T) {
	for _, body := range []string{`[1]`, `null`, `"vote"`, `{"vote":`} {
		c := newContext(http.MethodPost, "/questions/3/vote", body, "3")

		httpErr := asHTTPError(t, BindAndValidate(c, &model.VotePayload{}))
		assert.Equal(t, errs.MsgInvalidVote, httpErr.Message, body)
		assert.Equal(t, []errs.FieldError{{Field: "body", Error: "must be a valid JSON object"}}, httpErr.Errors, body)
	}
}

func TestBindAndValidate_MissingFields(t *testing.T) {
	c := newContext(http.MethodPost, "/questions", `{"title":"Go"}`)

	httpErr := asHTTPError(t, BindAndValidate(c, &model.CreateQuestionPayload{}))

	assert.Equal(t, errs.MsgInvalidRequest, httpErr.Message)
	fields := make([]string, 0, len(httpErr.Errors))
	for _, fe := range httpErr.Errors {
		fields = append(fields, fe.Field)
		assert.Equal(t, "is required", fe.Error)
	}
	assert.ElementsMatch(t, []string{"description", "category"}, fields)
}

func TestBindAndValidate_EmptyBody(t *testing.T) {
	c := newContext(http.MethodPost, "/questions", "")

	httpErr := asHTTPError(t, BindAndValidate(c, &model.CreateQuestionPayload{}))
	assert.Len(t, httpErr.Errors, 3)
}

func TestBindAndValidate_TrailingData(t *testing.T) {
	c := newContext(http.MethodPost, "/answers/1/vote", `{"vote":1}{"vote":1}`, "1")

	httpErr := asHTTPError(t, BindAndValidate(c, &model.VotePayload{}))
	assert.Equal(t, errs.MsgInvalidVote, httpErr.Message)
}

func TestBindAndValidate_AnswerContentLength(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		message string
	}{
		{name: "exactly max", content: strings.Repeat("a", model.MaxAnswerLength)},
		{name: "multibyte at max", content: strings.Repeat("é", model.MaxAnswerLength)},
		{name: "one over max", content: strings.Repeat("a", model.MaxAnswerLength+1), wantErr: true, message: errs.MsgAnswerTooLong},
		{name: "multibyte over max", content: strings.Repeat("é", model.MaxAnswerLength+1), wantErr: true, message: errs.MsgAnswerTooLong},
		{name: "empty", content: "", wantErr: true, message: errs.MsgInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(http.MethodPost, "/questions/7/answers", `{"content":"`+tt.content+`"}`, "7")

			var payload model.CreateAnswerPayload
			err := BindAndValidate(c, &payload)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, int64(7), payload.QuestionID)
				return
			}

			httpErr := asHTTPError(t, err)
			assert.Equal(t, tt.message, httpErr.Message)
			require.Len(t, httpErr.Errors, 1)
			assert.Equal(t, "content", httpErr.Errors[0].Field)
		})
	}
}

func TestBindAndValidate_Vote(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "upvote", body: `{"vote":1}`, want: 1},
		{name: "downvote", body: `{"vote":-1}`, want: -1},
		{name: "zero", body: `{"vote":0}`, wantErr: true},
		{name: "two", body: `{"vote":2}`, wantErr: true},
		{name: "string", body: `{"vote":"1"}`, wantErr: true},
		{name: "fraction", body: `{"vote":1.5}`, wantErr: true},
		{name: "null", body: `{"vote":null}`, wantErr: true},
		{name: "missing", body: `{}`, wantErr: true},
		{name: "extra key", body: `{"vote":1,"user":"x"}`, wantErr: true},
		{name: "upper case key", body: `{"VOTE":1}`, wantErr: true},
		{name: "shadowed by upper case key", body: `{"vote":1,"VOTE":-1}`, wantErr: true},
		{name: "repeated key", body: `{"vote":1,"vote":-1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(http.MethodPost, "/questions/3/vote", tt.body, "3")

			var payload model.VotePayload
			err := BindAndValidate(c, &payload)
			if !tt.wantErr {
				require.NoError(t, err)
				require.NotNil(t, payload.Vote)
				assert.Equal(t, tt.want, *payload.Vote)
				assert.Equal(t, int64(3), payload.TargetID)
				return
			}

			httpErr := asHTTPError(t, err)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, errs.MsgInvalidVote, httpErr.Message)
		})
	}
}

func TestBindAndValidate_NonIntegerID(t *testing.T) {
	c := newContext(http.MethodGet, "/questions/abc", "", "abc")

	httpErr := asHTTPError(t, BindAndValidate(c, &model.QuestionID{}))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "id", httpErr.Errors[0].Field)
}

func TestBindAndValidate_Search(t *testing.T) {
	t.Run("title only", func(t *testing.T) {
		c := newContext(http.MethodGet, "/questions/search?title=go", "")

		var payload model.SearchQuestionsPayload
		require.NoError(t, BindAndValidate(c, &payload))
		assert.Equal(t, model.QuestionFilter{Title: "go"}, payload.Filter())
	})

	t.Run("both filters", func(t *testing.T) {
		c := newContext(http.MethodGet, "/questions/search?title=go&category=lang", "")

		var payload model.SearchQuestionsPayload
		require.NoError(t, BindAndValidate(c, &payload))
		assert.Equal(t, model.QuestionFilter{Title: "go", Category: "lang"}, payload.Filter())
	})

	t.Run("no filters", func(t *testing.T) {
		c := newContext(http.MethodGet, "/questions/search", "")

		httpErr := asHTTPError(t, BindAndValidate(c, &model.SearchQuestionsPayload{}))
		assert.Equal(t, errs.MsgInvalidRequest, httpErr.Message)
		assert.Len(t, httpErr.Errors, 2)
	})
}

func TestExtractValidationError_Custom(t *testing.T) {
	got := extractValidationError(CustomValidationErrors{{Field: "title", Message: "is blank"}})
	assert.Equal(t, []errs.FieldError{{Field: "title", Error: "is blank"}}, got)
}

func TestJSONFields(t *testing.T) {
	assert.Equal(t, map[string]bool{"content": true}, jsonFields(&model.CreateAnswerPayload{}))
	assert.Equal(t, map[string]bool{"vote": true}, jsonFields(&model.VotePayload{}))
	assert.Empty(t, jsonFields(&model.SearchQuestionsPayload{}))
}
