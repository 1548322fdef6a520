package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/qna-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with json + validator tags
//   - Implement Validate() error that runs validator.Struct(req)
type Validatable interface {
	Validate() error
}

// InvalidMessenger lets a payload replace the generic "Invalid request data."
// message, e.g. votes answer with "Invalid vote value.". It is asked after
// binding, so the message may depend on what the client sent.
type InvalidMessenger interface {
	InvalidMessage() string
}

// CustomValidationError represents a single validation issue for a specific field.
// Body keys outside the payload's json tags are reported this way.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var binder = &echo.DefaultBinder{}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. path parameters ({id}) are bound through `param` tags
//  2. GET/DELETE bind query parameters through `query` tags
//  3. POST/PUT/PATCH decode the JSON body strictly: unknown keys are rejected
//  4. payload.Validate() applies the struct rules
//
// Any failure returns a 400 *errs.HTTPError; payload must be a pointer.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := binder.BindPathParams(c, payload); err != nil {
		return errs.NewBadRequestError(invalidMessage(payload), false, nil, []errs.FieldError{
			{Field: "id", Error: "must be an integer"},
		}, nil).WithCause(err)
	}

	req := c.Request()
	switch req.Method {
	case http.MethodGet, http.MethodDelete, http.MethodHead:
		if err := binder.BindQueryParams(c, payload); err != nil {
			return errs.NewBadRequestError(invalidMessage(payload), false, nil, nil, nil).WithCause(err)
		}
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		if err := decodeStrict(req.Body, payload); err != nil {
			return errs.NewBadRequestError(invalidMessage(payload), false, nil, decodeFieldErrors(err), nil).WithCause(err)
		}
	}

	if fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(invalidMessage(payload), true, nil, fieldErrors, nil)
	}

	return nil
}

func invalidMessage(payload any) string {
	if m, ok := payload.(InvalidMessenger); ok {
		return m.InvalidMessage()
	}
	return errs.MsgInvalidRequest
}

var (
	// errTrailingData rejects bodies like `{"vote":1}{"vote":1}`.
	errTrailingData = errors.New("request body must contain a single JSON object")
	errNotObject    = errors.New("request body must be a JSON object")
)

// decodeStrict decodes a JSON body into payload. Every key must equal one of
// the payload's json tag names exactly and appear once; encoding/json alone
// would also accept "TITLE" for "title". An empty body decodes to the zero
// payload so the required-field rules report what is missing.
func decodeStrict(body io.Reader, payload any) error {
	if body == nil {
		return nil
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := checkKeys(raw, jsonFields(payload)); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(payload); err != nil {
		return err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}

	return nil
}

// jsonFields lists the body keys payload accepts: the json tag names of its
// exported fields, minus those tagged "-".
func jsonFields(payload any) map[string]bool {
	t := reflect.TypeOf(payload)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	fields := make(map[string]bool)
	if t.Kind() != reflect.Struct {
		return fields
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name != "" && name != "-" {
			fields[name] = true
		}
	}
	return fields
}

// checkKeys walks the top-level object of raw and reports every key that is
// not in allowed, or that repeats, as a CustomValidationErrors.
func checkKeys(raw []byte, allowed map[string]bool) error {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errNotObject
	}

	var invalid CustomValidationErrors
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		switch {
		case !allowed[key]:
			invalid = append(invalid, CustomValidationError{Field: key, Message: "is not allowed"})
		case seen[key]:
			invalid = append(invalid, CustomValidationError{Field: key, Message: "must appear only once"})
		}
		seen[key] = true

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
	}

	if len(invalid) > 0 {
		return invalid
	}
	return nil
}

// decodeFieldErrors turns a JSON decoding failure into field errors.
func decodeFieldErrors(err error) []errs.FieldError {
	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		return extractValidationError(custom)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []errs.FieldError{{Field: field, Error: fmt.Sprintf("must be of type %s", typeErr.Type.String())}}
	}

	return []errs.FieldError{{Field: "body", Error: "must be a valid JSON object"}}
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) []errs.FieldError {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return nil
}

func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "body", Error: err.Error()}}
	}

	for _, err := range validationErrors {
		field := err.Field()
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "required_without":
			msg = fmt.Sprintf("is required when %s is not provided", strings.ToLower(err.Param()))

		case "min":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return fieldErrors
}
