package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/qna-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_NoRowsWithTable(t *testing.T) {
	tests := []struct {
		table string
		want  string
	}{
		{"questions", errs.MsgQuestionNotFound},
		{"answers", errs.MsgAnswerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			httpErr := asHTTPError(t, HandleError(NoRows(tt.table)))
			assert.Equal(t, http.StatusNotFound, httpErr.Status)
			assert.Equal(t, tt.want, httpErr.Message)
		})
	}
}

func TestHandleError_NoRowsWithoutTable(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(fmt.Errorf("select: %w", pgx.ErrNoRows)))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Resource not found.", httpErr.Message)
}

func TestHandleError_ForeignKeyViolationIsNotFound(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23503",
		Severity:       "ERROR",
		Message:        `insert or update on table "answers" violates foreign key constraint "answers_question_id_fkey"`,
		TableName:      "answers",
		ConstraintName: "answers_question_id_fkey",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, errs.MsgQuestionNotFound, httpErr.Message)
	assert.ErrorIs(t, httpErr, pgErr)
}

func TestHandleError_CheckViolationIsBadRequest(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:      "23514",
		TableName: "question_votes",
		Message:   "new row violates check constraint",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "QUESTION_VOTE_INVALID", httpErr.Code)
}

func TestHandleError_UnknownPgErrorIsInternal(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "53300", Message: "too many connections"}

	httpErr := asHTTPError(t, HandleError(pgErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.NotContains(t, httpErr.Message, "too many connections")
}

func TestHandleError_UniqueViolationIsInternal(t *testing.T) {
	// no table declares a unique key, so one surfacing is a server fault
	pgErr := &pgconn.PgError{Code: "23505", TableName: "answers", ConstraintName: "answers_pkey"}

	httpErr := asHTTPError(t, HandleError(pgErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.ErrorIs(t, httpErr, pgErr)
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	in := errs.NewBadRequestError(errs.MsgInvalidRequest, false, nil, nil, nil)
	assert.Same(t, in, HandleError(in))
}

func TestWrap(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "Unable to fetch questions."))
	})

	t.Run("driver fault becomes persistence error", func(t *testing.T) {
		cause := errors.New("conn closed")
		httpErr := asHTTPError(t, Wrap(cause, "Unable to fetch questions."))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, "Unable to fetch questions.", httpErr.Message)
		assert.ErrorIs(t, httpErr, cause)
	})

	t.Run("context cancellation is a persistence error", func(t *testing.T) {
		httpErr := asHTTPError(t, Wrap(context.Canceled, "Unable to delete question."))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, "Unable to delete question.", httpErr.Message)
	})

	t.Run("not found passes through", func(t *testing.T) {
		httpErr := asHTTPError(t, Wrap(NoRows("questions"), "Unable to update question."))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, errs.MsgQuestionNotFound, httpErr.Message)
	})
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, ErrCode(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, ForeignKeyViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23503"})))
	assert.Equal(t, Other, ErrCode(errors.New("boom")))
}

func TestExtractColumnForForeignKey(t *testing.T) {
	assert.Equal(t, "question_id", extractColumnForForeignKey("answers", "answers_question_id_fkey"))
	assert.Equal(t, "answer_id", extractColumnForForeignKey("answer_votes", "answer_votes_answer_id_fkey"))
	assert.Equal(t, "", extractColumnForForeignKey("answers", "weird_name"))
}

func TestGetEntityName(t *testing.T) {
	assert.Equal(t, "Question", getEntityName("answers", "question_id"))
	assert.Equal(t, "Answer", getEntityName("answers", ""))
	assert.Equal(t, "Record", getEntityName("", ""))
}
