// Package validation contains the logic for validating
// request data.
//
// Every request payload is a struct acting as a declarative schema:
// its json tags are the whitelist of accepted body keys and its
// `validate` tags (go-playground/validator) the per-field rules.
// Failures are converted into 400 errs.HTTPError values with
// field-level errors the client can understand. Nothing here touches
// the database, so an invalid request never reaches a query.
package validation
