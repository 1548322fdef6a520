// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (FieldErrors for request bodies, HTTPError for API responses)
// so the client always receives meaningful, actionable and consistent
// error messages.
//
// The Q&A API knows three failure classes and each one has a constructor here:
//   - invalid request  -> NewBadRequestError  (400)
//   - not found        -> NewNotFoundError    (404)
//   - persistence      -> NewPersistenceError (500)
package errs

// Messages shared by handlers and services so every endpoint answers with
// the same wording for the same failure.
const (
	MsgInvalidRequest   = "Invalid request data."
	MsgInvalidVote      = "Invalid vote value."
	MsgAnswerTooLong    = "Answer length can't exceed 300."
	MsgQuestionNotFound = "Question not found."
	MsgAnswerNotFound   = "Answer not found."
	MsgRouteNotFound    = "Route not found."
)
