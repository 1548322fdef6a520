package handler

import (
	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/deppfellow/qna-api/internal/service"
	"github.com/labstack/echo/v4"
)

type AnswerHandler struct {
	Handler
	answers *service.AnswerService
}

func NewAnswerHandler(s *server.Server, answers *service.AnswerService) *AnswerHandler {
	return &AnswerHandler{
		Handler: NewHandler(s),
		answers: answers,
	}
}

func (h *AnswerHandler) CreateAnswer(c echo.Context, req *model.CreateAnswerPayload) (*Response, error) {
	answer, err := h.answers.Create(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &Response{Message: "Answer created successfully.", Data: answer}, nil
}

// ListAnswers always returns the full collection for the question.
func (h *AnswerHandler) ListAnswers(c echo.Context, req *model.QuestionID) (*Response, error) {
	answers, err := h.answers.List(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &Response{Data: answers}, nil
}

func (h *AnswerHandler) DeleteAnswers(c echo.Context, req *model.QuestionID) (*Response, error) {
	if err := h.answers.DeleteAll(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &Response{Message: "All answers for the question have been deleted successfully."}, nil
}
