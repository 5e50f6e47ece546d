package hterror_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usherkit/usher/hterror"
)

func TestConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       *hterror.Error
		expStatus int
		expDetail any
	}{
		{
			name:      "ok/new_defaults_to_500",
			err:       hterror.New("something broke"),
			expStatus: http.StatusInternalServerError,
		},
		{
			name:      "ok/new_with_status",
			err:       hterror.New("nope", hterror.WithStatus(http.StatusTeapot)),
			expStatus: http.StatusTeapot,
		},
		{
			name:      "ok/method_not_allowed",
			err:       hterror.MethodNotAllowed("method POST is not allowed"),
			expStatus: http.StatusMethodNotAllowed,
		},
		{
			name:      "ok/bad_request_with_detail",
			err:       hterror.BadRequest("invalid request body", []string{"some issue"}),
			expStatus: http.StatusBadRequest,
			expDetail: []string{"some issue"},
		},
		{
			name:      "ok/server_internal_no_context",
			err:       hterror.ServerInternal("oops"),
			expStatus: http.StatusInternalServerError,
		},
		{
			name:      "ok/server_internal_single_context",
			err:       hterror.ServerInternal("oops", "cause"),
			expStatus: http.StatusInternalServerError,
			expDetail: "cause",
		},
		{
			name:      "ok/server_internal_variadic_context",
			err:       hterror.ServerInternal("oops", "a", "b"),
			expStatus: http.StatusInternalServerError,
			expDetail: []any{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expStatus, tt.err.StatusCode())
			assert.Equal(t, tt.expDetail, tt.err.Detail())
		})
	}
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		exp  int
	}{
		{
			name: "ok/direct",
			err:  hterror.MethodNotAllowed("nope"),
			exp:  http.StatusMethodNotAllowed,
		},
		{
			name: "ok/wrapped",
			err:  fmt.Errorf("outer: %w", hterror.BadRequest("bad", nil)),
			exp:  http.StatusBadRequest,
		},
		{
			name: "ok/plain_error_defaults_to_500",
			err:  errors.New("plain"),
			exp:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.exp, hterror.StatusCode(tt.err))
		})
	}
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("root cause")
	err := hterror.New("wrapper", hterror.WithCause(cause))

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "root cause")
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(hterror.BadRequest("invalid request body", []string{"x"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"invalid request body","detail":["x"]}`, string(data))

	data, err = json.Marshal(hterror.New("plain"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"plain"}`, string(data))
}
