package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

var errQuestionNotFound = sqlerr.NoRows("questions")

const questionColumns = `id, title, description, category, created_at, updated_at`

type QuestionRepository struct {
	db DB
}

func NewQuestionRepository(db DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) Create(ctx context.Context, payload *model.CreateQuestionPayload) (*model.Question, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO questions (title, description, category)
		VALUES ($1, $2, $3)
		RETURNING `+questionColumns,
		payload.Title, payload.Description, payload.Category,
	)
	if err != nil {
		return nil, err
	}

	question, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Question])
	if err != nil {
		return nil, err
	}
	return question, nil
}

func (r *QuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	rows, err := r.db.Query(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Question])
}

func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	rows, err := r.db.Query(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	question, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Question])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return question, nil
}

// Search matches questions whose title and/or category contain the filter
// values, ignoring case. Empty filter fields are skipped; at least one is
// expected to be set.
func (r *QuestionRepository) Search(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Title != "" {
		args = append(args, escapeLike(filter.Title))
		conds = append(conds, `title ILIKE '%' || $1 || '%'`)
	}
	if filter.Category != "" {
		args = append(args, escapeLike(filter.Category))
		conds = append(conds, `category ILIKE '%' || $`+strconv.Itoa(len(args))+` || '%'`)
	}
	if len(conds) == 0 {
		return []model.Question{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE `+strings.Join(conds, " AND ")+` ORDER BY id`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Question])
}

// Update overwrites every editable field of the question.
func (r *QuestionRepository) Update(ctx context.Context, payload *model.UpdateQuestionPayload) (*model.Question, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE questions
		SET title = $2, description = $3, category = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+questionColumns,
		payload.ID, payload.Title, payload.Description, payload.Category,
	)
	if err != nil {
		return nil, err
	}

	question, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Question])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return question, nil
}

// Delete removes the question; its answers and votes go with it through
// ON DELETE CASCADE.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errQuestionNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
