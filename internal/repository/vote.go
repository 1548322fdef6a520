package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

var errAnswerNotFound = sqlerr.NoRows("answers")

// VoteRepository appends votes. Votes are never updated, deduplicated or
// attributed to a voter.
type VoteRepository struct {
	db DB
}

func NewVoteRepository(db DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) VoteQuestion(ctx context.Context, questionID int64, value int) (*model.Vote, error) {
	vote, err := r.insert(ctx, `
		INSERT INTO question_votes (question_id, vote)
		SELECT $1::bigint, $2::smallint
		WHERE EXISTS (SELECT 1 FROM questions WHERE id = $1)
		RETURNING id, question_id AS target_id, vote, created_at`,
		questionID, value, errQuestionNotFound,
	)
	if err != nil {
		return nil, err
	}
	vote.Target = model.VoteTargetQuestion
	return vote, nil
}

func (r *VoteRepository) VoteAnswer(ctx context.Context, answerID int64, value int) (*model.Vote, error) {
	vote, err := r.insert(ctx, `
		INSERT INTO answer_votes (answer_id, vote)
		SELECT $1::bigint, $2::smallint
		WHERE EXISTS (SELECT 1 FROM answers WHERE id = $1)
		RETURNING id, answer_id AS target_id, vote, created_at`,
		answerID, value, errAnswerNotFound,
	)
	if err != nil {
		return nil, err
	}
	vote.Target = model.VoteTargetAnswer
	return vote, nil
}

// insert runs a guarded vote insert; notFound is returned when the guard
// filtered the row out.
func (r *VoteRepository) insert(ctx context.Context, sql string, targetID int64, value int, notFound error) (*model.Vote, error) {
	rows, err := r.db.Query(ctx, sql, targetID, value)
	if err != nil {
		return nil, err
	}

	vote, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Vote])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	return vote, nil
}
