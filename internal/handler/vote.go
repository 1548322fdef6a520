package handler

import (
	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/deppfellow/qna-api/internal/service"
	"github.com/labstack/echo/v4"
)

type VoteHandler struct {
	Handler
	votes *service.VoteService
}

func NewVoteHandler(s *server.Server, votes *service.VoteService) *VoteHandler {
	return &VoteHandler{
		Handler: NewHandler(s),
		votes:   votes,
	}
}

func (h *VoteHandler) VoteQuestion(c echo.Context, req *model.VotePayload) (*Response, error) {
	if _, err := h.votes.VoteQuestion(c.Request().Context(), req); err != nil {
		return nil, err
	}
	return &Response{Message: "Vote on the question has been recorded successfully."}, nil
}

func (h *VoteHandler) VoteAnswer(c echo.Context, req *model.VotePayload) (*Response, error) {
	if _, err := h.votes.VoteAnswer(c.Request().Context(), req); err != nil {
		return nil, err
	}
	return &Response{Message: "Vote on the answer has been recorded successfully."}, nil
}
