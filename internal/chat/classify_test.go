package chat

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daaffalbari/portfolio/internal/api"
	"github.com/daaffalbari/portfolio/internal/llm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"bad request", api.NewBadRequestError("Messages are required"), KindInvalidRequest},
		{"not configured", fmt.Errorf("opening stream: %w", llm.ErrNotConfigured), KindConfiguration},
		{"data policy", errors.New("No endpoints found matching your data policy"), KindPolicyRejection},
		{"privacy", errors.New("check your Privacy settings"), KindPolicyRejection},
		{"other", errors.New("upstream timeout"), KindUpstream},
		{"server app error", api.ErrInternalServer, KindUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestToAppError(t *testing.T) {
	bad := api.NewBadRequestError("Messages are required")
	assert.Same(t, bad, toAppError(bad, KindInvalidRequest))

	got := toAppError(errors.New("data policy"), KindPolicyRejection)
	assert.Equal(t, http.StatusInternalServerError, got.Code)
	assert.Equal(t, msgPolicy, got.Message)

	got = toAppError(llm.ErrNotConfigured, KindConfiguration)
	assert.Equal(t, msgGeneric, got.Message)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "upstream", KindUpstream.String())
	assert.Equal(t, "invalid_request", KindInvalidRequest.String())
	assert.Equal(t, "configuration", KindConfiguration.String())
	assert.Equal(t, "policy_rejection", KindPolicyRejection.String())
}
