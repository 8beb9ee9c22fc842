package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey      = errors.New("server missing model API key")
	ErrInvalidModelOutput = errors.New("model returned invalid menu JSON")
	ErrNoValidSelections  = errors.New("no valid menu items found in recommendations")
	ErrNoImages           = errors.New("no images provided")
	ErrInvalidImage       = errors.New("image payload is not valid base64")
	ErrUnsupportedImage   = errors.New("unsupported image type")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrScanNotFound       = errors.New("menu scan not found")
	ErrUploadFailed       = errors.New("image upload to storage failed")
)

// ErrorKind classifies failures of the extraction, wildcard and merge steps.
type ErrorKind string

const (
	KindConfiguration     ErrorKind = "configuration"
	KindTransport         ErrorKind = "transport"
	KindInvalidResponse   ErrorKind = "invalid_response"
	KindValidation        ErrorKind = "validation"
	KindNoValidSelections ErrorKind = "no_valid_selections"
	KindEmpty             ErrorKind = "empty"
)

// ValidationError reports input or model output that fails a structural check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ExtractionError is returned by menu extraction. Page is 1-based and zero for single-image calls.
type ExtractionError struct {
	Kind ErrorKind
	Page int
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("extraction failed (%s, page %d): %v", e.Kind, e.Page, e.Err)
	}
	return fmt.Sprintf("extraction failed (%s): %v", e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// WildcardError is returned by wildcard recommendation.
type WildcardError struct {
	Kind ErrorKind
	Err  error
}

func (e *WildcardError) Error() string {
	return fmt.Sprintf("wildcard failed (%s): %v", e.Kind, e.Err)
}

func (e *WildcardError) Unwrap() error {
	return e.Err
}

// MergeError is returned when multi-page menus cannot be merged.
type MergeError struct {
	Kind ErrorKind
}

func (e *MergeError) Error() string {
	if e.Kind == KindEmpty {
		return "no menus to merge"
	}
	return fmt.Sprintf("merge failed (%s)", e.Kind)
}

func (e *MergeError) Is(target error) bool {
	return target == ErrNoImages && e.Kind == KindEmpty
}

// KindOf returns the ErrorKind carried by err, or "" when err carries none.
func KindOf(err error) ErrorKind {
	var extErr *ExtractionError
	if errors.As(err, &extErr) {
		return extErr.Kind
	}
	var wcErr *WildcardError
	if errors.As(err, &wcErr) {
		return wcErr.Kind
	}
	var mErr *MergeError
	if errors.As(err, &mErr) {
		return mErr.Kind
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return KindValidation
	}
	return ""
}
