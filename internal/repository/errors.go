package repository

import (
	"errors"

	"tupyme/internal/backend"
)

// UserMessage converts any repository error into the text shown in the
// UI banner: the server-provided message when there is one, otherwise
// the fixed fallback. Callers never see a raw transport error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return backend.FallbackErrorMessage
}
