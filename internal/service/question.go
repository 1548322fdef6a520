package service

import (
	"context"

	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/deppfellow/qna-api/internal/sqlerr"
)

// QuestionStore is the persistence QuestionService needs.
type QuestionStore interface {
	Create(ctx context.Context, payload *model.CreateQuestionPayload) (*model.Question, error)
	List(ctx context.Context) ([]model.Question, error)
	GetByID(ctx context.Context, id int64) (*model.Question, error)
	Search(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error)
	Update(ctx context.Context, payload *model.UpdateQuestionPayload) (*model.Question, error)
	Delete(ctx context.Context, id int64) error
}

type QuestionService struct {
	server *server.Server
	store  QuestionStore
}

func NewQuestionService(s *server.Server, store QuestionStore) *QuestionService {
	return &QuestionService{
		server: s,
		store:  store,
	}
}

func (s *QuestionService) Create(ctx context.Context, payload *model.CreateQuestionPayload) (*model.Question, error) {
	question, err := s.store.Create(ctx, payload)
	if err != nil {
		return nil, sqlerr.Wrap(err, "Unable to create question.")
	}

	s.server.Logger.Info().
		Int64("question_id", question.ID).
		Str("category", question.Category).
		Msg("question created")

	return question, nil
}

func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	questions, err := s.store.List(ctx)
	if err != nil {
		return nil, sqlerr.Wrap(err, "Unable to fetch questions.")
	}
	return questions, nil
}

func (s *QuestionService) Get(ctx context.Context, id int64) (*model.Question, error) {
	question, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, sqlerr.Wrap(err, "Unable to fetch question.")
	}
	return question, nil
}

func (s *QuestionService) Search(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	questions, err := s.store.Search(ctx, filter)
	if err != nil {
		return nil, sqlerr.Wrap(err, "Unable to search questions.")
	}
	return questions, nil
}

func (s *QuestionService) Update(ctx context.Context, payload *model.UpdateQuestionPayload) (*model.Question, error) {
	question, err := s.store.Update(ctx, payload)
	if err != nil {
		return nil, sqlerr.Wrap(err, "Unable to update question.")
	}
	return question, nil
}

// Delete removes the question together with its answers and votes.
func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return sqlerr.Wrap(err, "Unable to delete question.")
	}

	s.server.Logger.Info().Int64("question_id", id).Msg("question deleted")
	return nil
}
