package service

import (
	"context"

	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/deppfellow/qna-api/internal/sqlerr"
)

// AnswerStore is the persistence AnswerService needs. Each method checks
// that the question exists as part of the same statement or transaction.
type AnswerStore interface {
	Create(ctx context.Context, payload *model.CreateAnswerPayload) (*model.Answer, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]model.Answer, error)
	DeleteByQuestion(ctx context.Context, questionID int64) (int64, error)
}

type AnswerService struct {
	server *server.Server
	store  AnswerStore
}

func NewAnswerService(s *server.Server, store AnswerStore) *AnswerService {
	return &AnswerService{
		server: s,
		store:  store,
	}
}

func (s *AnswerService) Create(ctx context.Context, payload *model.CreateAnswerPayload) (*model.Answer, error) {
	answer, err := s.store.Create(ctx, payload)
	if err != nil {
		return nil, sqlerr.Wrap(err, "Unable to create answer.")
	}

	s.server.Logger.Info().
		Int64("question_id", answer.QuestionID).
		Int64("answer_id", answer.ID).
		Msg("answer created")

	return answer, nil
}

func (s *AnswerService) List(ctx context.Context, questionID int64) ([]model.Answer, error) {
	answers, err := s.store.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, sqlerr.Wrap(err, "Unable to fetch answers.")
	}
	return answers, nil
}

func (s *AnswerService) DeleteAll(ctx context.Context, questionID int64) error {
	deleted, err := s.store.DeleteByQuestion(ctx, questionID)
	if err != nil {
		return sqlerr.Wrap(err, "Unable to delete answers.")
	}

	s.server.Logger.Info().
		Int64("question_id", questionID).
		Int64("deleted", deleted).
		Msg("answers deleted")

	return nil
}
