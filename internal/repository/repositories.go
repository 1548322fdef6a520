package repository

import (
	"github.com/deppfellow/qna-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Questions *QuestionRepository
	Answers   *AnswerRepository
	Votes     *VoteRepository
}

// NewRepositories constructs the repository container on the shared
// pool (s.DB.Pool).
func NewRepositories(s *server.Server) *Repositories {
	return newRepositories(s.DB.Pool)
}

func newRepositories(db DB) *Repositories {
	return &Repositories{
		Questions: NewQuestionRepository(db),
		Answers:   NewAnswerRepository(db),
		Votes:     NewVoteRepository(db),
	}
}
