package domain

import "fmt"

// Kind identifies one of the closed set of failure categories the
// pipeline exposes. Callers never see transport- or library-specific
// error shapes.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindAuth       Kind = "auth"
	KindRateLimit  Kind = "rate_limit"
	KindParse      Kind = "parse"
	KindUnknown    Kind = "unknown"
)

// Error is the single error type surfaced at the pipeline boundary.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func RateLimit(message string) *Error {
	return &Error{Kind: KindRateLimit, Message: message}
}

func Parse(message string) *Error {
	return &Error{Kind: KindParse, Message: message}
}

func Unknown(message string) *Error {
	return &Error{Kind: KindUnknown, Message: message}
}
