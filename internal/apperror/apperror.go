package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind identifies the failure class of a command pipeline error.
type Kind string

const (
	KindEntityNotFound       Kind = "ENTITY_NOT_FOUND"
	KindCriteriaUndetermined Kind = "CRITERIA_UNDETERMINED"
	KindNoMatch              Kind = "NO_MATCH"
	KindClassifierFormat     Kind = "CLASSIFIER_FORMAT"
	KindBackend              Kind = "BACKEND"
	KindUnsupportedTool      Kind = "UNSUPPORTED_TOOL"
)

// HTTPStatus maps a kind to the response status for the REST surface.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindEntityNotFound, KindNoMatch:
		return fiber.StatusNotFound
	case KindCriteriaUndetermined:
		return fiber.StatusUnprocessableEntity
	case KindUnsupportedTool:
		return fiber.StatusBadRequest
	case KindClassifierFormat, KindBackend:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from any error in the chain, or "" when the
// error did not originate in the pipeline.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
