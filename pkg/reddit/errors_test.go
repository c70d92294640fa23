package reddit

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	err := &APIError{Code: "USER_DOESNT_EXIST", Message: "that user doesn't exist", Field: "name"}
	assert.Equal(t, "USER_DOESNT_EXIST: that user doesn't exist (field: name)", err.Error())

	err = &APIError{Code: "RATELIMIT", Message: "slow down"}
	assert.Equal(t, "RATELIMIT: slow down", err.Error())
}

func TestAPIError_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("triple", func(t *testing.T) {
		t.Parallel()

		var e APIError

		err := json.Unmarshal([]byte(`["NO_TEXT", "we need something here", "note"]`), &e)
		require.NoError(t, err)
		assert.Equal(t, APIError{Code: "NO_TEXT", Message: "we need something here", Field: "note"}, e)
	})

	t.Run("short triple", func(t *testing.T) {
		t.Parallel()

		var e APIError

		err := json.Unmarshal([]byte(`["BAD"]`), &e)
		require.NoError(t, err)
		assert.Equal(t, "BAD", e.Code)
		assert.Empty(t, e.Message)
	})

	t.Run("object", func(t *testing.T) {
		t.Parallel()

		var e APIError

		err := json.Unmarshal([]byte(`{"code":"X","message":"y","field":"z"}`), &e)
		require.NoError(t, err)
		assert.Equal(t, APIError{Code: "X", Message: "y", Field: "z"}, e)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		var e APIError

		err := json.Unmarshal([]byte(`42`), &e)
		assert.Error(t, err)
	})
}

func TestJSONErrors_Err(t *testing.T) {
	t.Parallel()

	var nilErrs *JSONErrors
	require.NoError(t, nilErrs.Err())
	require.NoError(t, (&JSONErrors{}).Err())

	single := &JSONErrors{Errors: []APIError{{Code: "A", Message: "a"}}}
	apiErr := &APIError{}
	require.ErrorAs(t, single.Err(), &apiErr)
	assert.Equal(t, "A", apiErr.Code)

	multi := &JSONErrors{Errors: []APIError{{Code: "A", Message: "a"}, {Code: "B", Message: "b"}}}
	respErr := &ResponseError{}
	require.ErrorAs(t, multi.Err(), &respErr)
	assert.Equal(t, "A: a: B: b", respErr.Error())
	assert.Equal(t, "A", respErr.FirstError().Code)
}

func TestResponseError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response *ResponseError
		expected string
	}{
		{
			name:     "empty",
			response: &ResponseError{},
			expected: "unknown error",
		},
		{
			name:     "status and message",
			response: &ResponseError{StatusCode: 404, Message: "Not Found"},
			expected: "status 404: Not Found",
		},
		{
			name:     "reason and explanation",
			response: &ResponseError{StatusCode: 403, Reason: "private", Explanation: "subreddit is private"},
			expected: "status 403: reason: private: subreddit is private",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.response.Error())
		})
	}
}

func TestParseResponseError(t *testing.T) {
	t.Parallel()

	respErr, err := ParseResponseError(404, []byte(`{"message": "Not Found", "error": 404}`))
	require.NoError(t, err)
	assert.Equal(t, 404, respErr.StatusCode)
	assert.Equal(t, 404, respErr.Code)
	assert.Equal(t, "Not Found", respErr.Message)
	assert.Nil(t, respErr.FirstError())

	_, err = ParseResponseError(500, []byte(`<html>`))
	assert.Error(t, err)
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	wrap := func(err error) error { return fmt.Errorf("doing thing: %w", err) }

	assert.True(t, IsNotFound(wrap(&ResponseError{StatusCode: 404})))
	assert.True(t, IsNotFound(&ResponseError{Code: 404}))
	assert.True(t, IsNotFound(wrap(&APIError{Code: "USER_DOESNT_EXIST"})))
	assert.False(t, IsNotFound(&ResponseError{StatusCode: 500}))
	assert.False(t, IsNotFound(errors.New("plain")))

	assert.True(t, IsUnauthorized(&ResponseError{StatusCode: 401}))
	assert.False(t, IsUnauthorized(&ResponseError{StatusCode: 403}))

	assert.True(t, IsForbidden(wrap(&ResponseError{StatusCode: 403})))

	assert.True(t, IsRateLimited(&ResponseError{StatusCode: 429}))
	assert.True(t, IsRateLimited(&APIError{Code: "RATELIMIT"}))
	assert.False(t, IsRateLimited(nil))
}
