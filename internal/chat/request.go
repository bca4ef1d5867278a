package chat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/daaffalbari/portfolio/internal/api"
)

// maxBodyBytes bounds the decoded request body.
const maxBodyBytes = 1 << 20

var errMessagesRequired = api.NewBadRequestError("Messages are required")

// Turn is one caller-supplied conversation turn.
type Turn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content"`
}

type rawRequest struct {
	Messages json.RawMessage `json:"messages"`
}

// decodeTurns reads the request body. Anything that does not yield a
// non-empty messages array is reported as missing messages.
func decodeTurns(body io.Reader, validate *validator.Validate) ([]Turn, error) {
	var raw rawRequest
	if err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&raw); err != nil {
		return nil, errMessagesRequired
	}

	trimmed := bytes.TrimSpace(raw.Messages)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errMessagesRequired
	}

	var turns []Turn
	if err := json.Unmarshal(trimmed, &turns); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if typeErr.Field == "" {
				return nil, api.NewValidationError("Invalid message: each message must be an object")
			}
			return nil, api.NewValidationError(fmt.Sprintf("Invalid message: %s must be a %s", typeErr.Field, typeErr.Type))
		}
		return nil, api.NewValidationError("Invalid message: " + err.Error())
	}
	if len(turns) == 0 {
		return nil, errMessagesRequired
	}

	for i, t := range turns {
		if err := validate.Struct(t); err != nil {
			return nil, api.NewValidationError(fmt.Sprintf("Invalid message: message %d %s", i, describe(err)))
		}
	}
	return turns, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "is missing role"
	case "oneof":
		return fmt.Sprintf("has unsupported role %q", fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
