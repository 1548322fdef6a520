package handler

import (
	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/deppfellow/qna-api/internal/service"
	"github.com/labstack/echo/v4"
)

type QuestionHandler struct {
	Handler
	questions *service.QuestionService
}

func NewQuestionHandler(s *server.Server, questions *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		Handler:   NewHandler(s),
		questions: questions,
	}
}

func (h *QuestionHandler) CreateQuestion(c echo.Context, req *model.CreateQuestionPayload) (*Response, error) {
	question, err := h.questions.Create(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &Response{Message: "Question created successfully.", Data: question}, nil
}

func (h *QuestionHandler) ListQuestions(c echo.Context, _ *model.ListQuestionsPayload) (*Response, error) {
	questions, err := h.questions.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &Response{Data: questions}, nil
}

func (h *QuestionHandler) GetQuestion(c echo.Context, req *model.QuestionID) (*Response, error) {
	question, err := h.questions.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &Response{Data: question}, nil
}

func (h *QuestionHandler) SearchQuestions(c echo.Context, req *model.SearchQuestionsPayload) (*Response, error) {
	questions, err := h.questions.Search(c.Request().Context(), req.Filter())
	if err != nil {
		return nil, err
	}
	return &Response{Data: questions}, nil
}

func (h *QuestionHandler) UpdateQuestion(c echo.Context, req *model.UpdateQuestionPayload) (*Response, error) {
	if _, err := h.questions.Update(c.Request().Context(), req); err != nil {
		return nil, err
	}
	return &Response{Message: "Question updated successfully."}, nil
}

func (h *QuestionHandler) DeleteQuestion(c echo.Context, req *model.QuestionID) (*Response, error) {
	if err := h.questions.Delete(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &Response{Message: "Question post has been deleted successfully."}, nil
}
