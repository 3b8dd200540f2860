package gemini

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleAPIError(t *testing.T) {
	a := &Agent{}

	tests := []struct {
		in   string
		want string
	}{
		{"googleapi: Error 429: quota exceeded", "rate limit exceeded"},
		{"googleapi: Error 401: unauthorized", "authentication failed"},
		{"googleapi: Error 403: forbidden", "authentication failed"},
		{"googleapi: Error 400: bad payload", "bad request"},
		{"googleapi: Error 503: unavailable", "service unavailable"},
		{"googleapi: Error 500: internal", "server error"},
		{"user location is not supported for the API use", "region not supported"},
	}

	for _, tt := range tests {
		err := a.handleAPIError(errors.New(tt.in))
		require.Error(t, err)
		assert.Contains(t, err.Error(), tt.want, tt.in)
	}
}

func TestHandleAPIErrorWrapsUnknown(t *testing.T) {
	a := &Agent{}

	err := a.handleAPIError(errors.New("connection reset by peer"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset by peer")
}
