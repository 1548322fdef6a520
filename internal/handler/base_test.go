package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/qna-api/internal/errs"
	"github.com/deppfellow/qna-api/internal/middleware"
	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{Logger: &logger}
}

func newEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandle_FreshPayloadPerRequest(t *testing.T) {
	s := testServer()
	h := NewHandler(s)
	e := newEcho(s)

	var seen []model.CreateQuestionPayload
	e.POST("/questions", Handle(h, func(c echo.Context, req *model.CreateQuestionPayload) (*Response, error) {
		seen = append(seen, *req)
		return &Response{Message: "ok"}, nil
	}, http.StatusCreated, &model.CreateQuestionPayload{}))

	rec := do(e, http.MethodPost, "/questions", `{"title":"a","description":"b","category":"c"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// a second request missing category must not inherit the previous one
	rec = do(e, http.MethodPost, "/questions", `{"title":"x","description":"y"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.Len(t, seen, 1)
	assert.Equal(t, "c", seen[0].Category)
}

func TestHandle_ValidationShortCircuits(t *testing.T) {
	s := testServer()
	e := newEcho(s)

	called := false
	e.POST("/questions/:id/answers", Handle(NewHandler(s), func(c echo.Context, req *model.CreateAnswerPayload) (*Response, error) {
		called = true
		return &Response{}, nil
	}, http.StatusCreated, &model.CreateAnswerPayload{}))

	rec := do(e, http.MethodPost, "/questions/1/answers", `{"content":"`+strings.Repeat("x", 301)+`"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errs.MsgAnswerTooLong, body.Message)
}

func TestHandle_ErrorFromHandler(t *testing.T) {
	s := testServer()
	e := newEcho(s)

	e.GET("/questions/:id", Handle(NewHandler(s), func(c echo.Context, req *model.QuestionID) (*Response, error) {
		return nil, errs.NewNotFoundError(errs.MsgQuestionNotFound, true, nil)
	}, http.StatusOK, &model.QuestionID{}))

	rec := do(e, http.MethodGet, "/questions/5", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), errs.MsgQuestionNotFound)
}

func TestPayloadFactory(t *testing.T) {
	newReq := payloadFactory(&model.VotePayload{TargetID: 9})

	a, b := newReq(), newReq()
	assert.NotSame(t, a, b)
	assert.Zero(t, a.TargetID)
}

func TestResponse_EmptyListIsKept(t *testing.T) {
	b, err := json.Marshal(&Response{Data: []model.Answer{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(b))
}
