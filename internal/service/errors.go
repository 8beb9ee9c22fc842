package service

import (
	"context"
	"errors"

	"carte/internal/domain"
	"carte/internal/parser"
)

// DescribeError returns the single message shown to a diner for err.
func DescribeError(err error) string {
	if err == nil {
		return ""
	}

	var tErr *parser.TransportError
	if errors.As(err, &tErr) {
		return tErr.UserMessage()
	}
	// Malformed model output may wrap a ValidationError; the diner gets guidance instead.
	if domain.KindOf(err) == domain.KindInvalidResponse {
		var wcErr *domain.WildcardError
		if errors.As(err, &wcErr) {
			return "Failed to parse wildcard recommendations"
		}
		return "Could not read a menu from the photo. Try a clearer picture."
	}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}

	switch {
	case errors.Is(err, context.Canceled):
		return "The request was cancelled."
	case errors.Is(err, context.DeadlineExceeded):
		return "The menu service took too long to respond. Please try again."
	case errors.Is(err, domain.ErrMissingAPIKey):
		return "The server is missing its model API key."
	case errors.Is(err, domain.ErrNoValidSelections):
		return "No valid menu items found in recommendations"
	case errors.Is(err, domain.ErrNoImages):
		return "No images provided"
	case errors.Is(err, domain.ErrInvalidImage):
		return "The image is not valid base64 data."
	case errors.Is(err, domain.ErrUnsupportedImage):
		return "Unsupported image type. Use JPEG, PNG, WEBP or GIF."
	case errors.Is(err, domain.ErrFileTooLarge):
		return "The image is too large."
	case errors.Is(err, domain.ErrScanNotFound):
		return "Menu scan not found."
	case errors.Is(err, domain.ErrUploadFailed):
		return "The menu images could not be archived."
	}

	if domain.KindOf(err) == domain.KindEmpty {
		return "No images provided"
	}
	return "Failed to parse menu. Please try again."
}
