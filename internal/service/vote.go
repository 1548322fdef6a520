package service

import (
	"context"

	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/deppfellow/qna-api/internal/sqlerr"
)

type VoteStore interface {
	VoteQuestion(ctx context.Context, questionID int64, value int) (*model.Vote, error)
	VoteAnswer(ctx context.Context, answerID int64, value int) (*model.Vote, error)
}

type VoteService struct {
	server *server.Server
	store  VoteStore
}

func NewVoteService(s *server.Server, store VoteStore) *VoteService {
	return &VoteService{
		server: s,
		store:  store,
	}
}

func (s *VoteService) VoteQuestion(ctx context.Context, payload *model.VotePayload) (*model.Vote, error) {
	vote, err := s.store.VoteQuestion(ctx, payload.TargetID, *payload.Vote)
	if err != nil {
		return nil, sqlerr.Wrap(err, "Unable to record vote.")
	}
	return vote, nil
}

func (s *VoteService) VoteAnswer(ctx context.Context, payload *model.VotePayload) (*model.Vote, error) {
	vote, err := s.store.VoteAnswer(ctx, payload.TargetID, *payload.Vote)
	if err != nil {
		return nil, sqlerr.Wrap(err, "Unable to record vote.")
	}
	return vote, nil
}
