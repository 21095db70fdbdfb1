package domain

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a specific kind of domain failure.
type ErrorCode string

const (
	// Common errors
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput  ErrorCode = "INVALID_INPUT"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	CodeDuplicateUser ErrorCode = "DUPLICATE_USER"

	// Generation pipeline errors
	CodeGenerationFailed  ErrorCode = "GENERATION_FAILED"
	CodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	CodeEmptyQuiz         ErrorCode = "EMPTY_QUIZ"
	CodeSessionExpired    ErrorCode = "SESSION_EXPIRED"
)

// DomainError carries an error code along with a user-presentable message
// and an optional wrapped cause.
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new DomainError.
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

// AsDomainError unwraps err into a *DomainError if possible.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	ok := errors.As(err, &de)
	return de, ok
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewDuplicateUserError(username string) *DomainError {
	return NewError(CodeDuplicateUser, fmt.Sprintf("Username already taken: %s", username), nil)
}

// NewGenerationFailedError wraps a transport or service failure from the
// external text generator. Not retried.
func NewGenerationFailedError(err error) *DomainError {
	return NewError(CodeGenerationFailed, "Failed to generate content. The AI may have returned an invalid format.", err)
}

// NewMalformedResponseError marks generator output with no recoverable
// payload. Distinct from transport failure for diagnostics, presented
// identically to the end user.
func NewMalformedResponseError(err error) *DomainError {
	return NewError(CodeMalformedResponse, "Failed to generate content. The AI may have returned an invalid format.", err)
}

// NewEmptyQuizError marks a schema-valid payload with zero questions.
func NewEmptyQuizError() *DomainError {
	return NewError(CodeEmptyQuiz, "Generated quiz contained no questions", nil)
}

// NewSessionExpiredError marks a submission whose identity has no live
// pending answer key: never started, already consumed, or timed out.
func NewSessionExpiredError() *DomainError {
	return NewError(CodeSessionExpired, "Quiz session expired.", nil)
}
