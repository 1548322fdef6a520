package model

import (
	"time"

	"github.com/deppfellow/qna-api/internal/errs"
)

const (
	Upvote   = 1
	Downvote = -1
)

// VoteTarget names the entity a vote is attached to.
type VoteTarget string

const (
	VoteTargetQuestion VoteTarget = "question"
	VoteTargetAnswer   VoteTarget = "answer"
)

// Vote is an append-only +1/-1 record. TargetID is a question id or an
// answer id depending on Target.
type Vote struct {
	ID        int64      `json:"id" db:"id"`
	Target    VoteTarget `json:"target" db:"-"`
	TargetID  int64      `json:"target_id" db:"target_id"`
	Value     int        `json:"vote" db:"vote"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// VotePayload is POST /questions/{id}/vote and POST /answers/{id}/vote.
//
// Vote is a pointer so an omitted or null vote is told apart from a number;
// strings and fractions already fail while decoding into *int.
type VotePayload struct {
	TargetID int64 `param:"id" json:"-"`
	Vote     *int  `json:"vote" validate:"required,oneof=-1 1"`
}

func (p *VotePayload) Validate() error {
	return validate.Struct(p)
}

// InvalidMessage is reported instead of the generic invalid-request text.
func (p *VotePayload) InvalidMessage() string {
	return errs.MsgInvalidVote
}
