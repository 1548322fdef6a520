package service

import (
	"github.com/deppfellow/qna-api/internal/repository"
	"github.com/deppfellow/qna-api/internal/server"
)

type Services struct {
	Questions *QuestionService
	Answers   *AnswerService
	Votes     *VoteService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Questions: NewQuestionService(s, repos.Questions),
		Answers:   NewAnswerService(s, repos.Answers),
		Votes:     NewVoteService(s, repos.Votes),
	}, nil
}
