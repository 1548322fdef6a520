package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/qna-api/internal/model"
	"github.com/jackc/pgx/v5"
)

const answerColumns = `id, question_id, content, created_at`

type AnswerRepository struct {
	db DB
}

func NewAnswerRepository(db DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// Create inserts the answer only if its question exists, in one statement.
// A question deleted concurrently surfaces as a foreign key violation.
func (r *AnswerRepository) Create(ctx context.Context, payload *model.CreateAnswerPayload) (*model.Answer, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO answers (question_id, content)
		SELECT $1::bigint, $2::text
		WHERE EXISTS (SELECT 1 FROM questions WHERE id = $1)
		RETURNING `+answerColumns,
		payload.QuestionID, payload.Content,
	)
	if err != nil {
		return nil, err
	}

	answer, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Answer])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return answer, nil
}

// ListByQuestion returns every answer of the question, oldest first.
// The existence check and the read share one read-only transaction.
func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID int64) ([]model.Answer, error) {
	var answers []model.Answer

	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		if err := requireQuestion(ctx, tx, questionID); err != nil {
			return err
		}

		rows, err := tx.Query(ctx, `SELECT `+answerColumns+` FROM answers WHERE question_id = $1 ORDER BY id`, questionID)
		if err != nil {
			return err
		}

		answers, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Answer])
		return err
	})
	if err != nil {
		return nil, err
	}
	return answers, nil
}

// DeleteByQuestion removes all answers of the question and reports how many
// went. Zero is a success as long as the question exists.
func (r *AnswerRepository) DeleteByQuestion(ctx context.Context, questionID int64) (int64, error) {
	var deleted int64

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := requireQuestion(ctx, tx, questionID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM answers WHERE question_id = $1`, questionID)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
