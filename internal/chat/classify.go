package chat

import (
	"errors"
	"net/http"
	"strings"

	"github.com/daaffalbari/portfolio/internal/api"
	"github.com/daaffalbari/portfolio/internal/llm"
)

// Kind is the category of a failed chat request.
type Kind int

const (
	KindUpstream Kind = iota
	KindInvalidRequest
	KindConfiguration
	KindPolicyRejection
)

const (
	msgPolicy  = "Please configure OpenRouter privacy settings at https://openrouter.ai/settings/privacy"
	msgGeneric = "Failed to process chat request"
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindConfiguration:
		return "configuration"
	case KindPolicyRejection:
		return "policy_rejection"
	default:
		return "upstream"
	}
}

// Classify maps an error from validation or the upstream provider to a Kind.
func Classify(err error) Kind {
	var appErr *api.AppError
	if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
		return KindInvalidRequest
	}
	if errors.Is(err, llm.ErrNotConfigured) {
		return KindConfiguration
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "data policy") || strings.Contains(msg, "privacy") {
		return KindPolicyRejection
	}
	return KindUpstream
}

// toAppError converts err to the caller-facing error envelope. Upstream
// detail never reaches the caller.
func toAppError(err error, kind Kind) *api.AppError {
	switch kind {
	case KindInvalidRequest:
		var appErr *api.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return api.NewBadRequestError(err.Error())
	case KindPolicyRejection:
		return &api.AppError{Code: http.StatusInternalServerError, Message: msgPolicy}
	default:
		return &api.AppError{Code: http.StatusInternalServerError, Message: msgGeneric}
	}
}
