package route_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usherkit/usher/route"
	"github.com/usherkit/usher/schema"
)

func TestBodyDecorator(t *testing.T) {
	t.Parallel()

	someString := map[string]any{
		"type":       "object",
		"properties": map[string]any{"some": map[string]any{"type": "string"}},
	}

	t.Run("ok/coercion_enabled", func(t *testing.T) {
		t.Parallel()

		g := testGroup(t)
		var seen any
		h := g.Handle(func(_ http.ResponseWriter, r *http.Request) (any, error) {
			seen = route.BodyFrom(r)
			return nil, nil
		}, route.Body(someString))

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"some": 42}`))
		rec := doRequest(h, req)

		require.Equal(t, http.StatusOK, rec.Code)
		// The handler sees the coerced body.
		assert.Equal(t, map[string]any{"some": "42"}, seen)
	})

	t.Run("err/coercion_disabled", func(t *testing.T) {
		t.Parallel()

		g := testGroup(t)
		strict := schema.New(schema.Options{AllErrors: true})
		invoked := false
		h := g.Handle(func(_ http.ResponseWriter, _ *http.Request) (any, error) {
			invoked = true
			return nil, nil
		}, route.Body(someString, strict))

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"some": 42}`))
		rec := doRequest(h, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, invoked)

		detail, ok := decodeBody(t, rec)["detail"].([]any)
		require.True(t, ok)
		assert.NotEmpty(t, detail)
	})

	t.Run("err/malformed_json", func(t *testing.T) {
		t.Parallel()

		g := testGroup(t)
		h := g.Handle(func(_ http.ResponseWriter, _ *http.Request) (any, error) {
			return nil, nil
		}, route.Body(someString))

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"some": `))
		rec := doRequest(h, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ok/empty_body_gets_defaults", func(t *testing.T) {
		t.Parallel()

		g := testGroup(t)
		var seen any
		h := g.Handle(func(_ http.ResponseWriter, r *http.Request) (any, error) {
			seen = route.BodyFrom(r)
			return nil, nil
		}, route.Body(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pinned": map[string]any{"type": "boolean", "default": false},
			},
		}))

		rec := doRequest(h, httptest.NewRequest(http.MethodPost, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"pinned": false}, seen)
	})
}

func TestResponseDecorator(t *testing.T) {
	t.Parallel()

	requireOK := map[string]any{
		"type":     "object",
		"required": []any{"ok"},
	}

	t.Run("err/missing_required_field", func(t *testing.T) {
		t.Parallel()

		g := testGroup(t)
		h := g.Handle(func(_ http.ResponseWriter, _ *http.Request) (any, error) {
			return map[string]any{}, nil
		}, route.Response(requireOK))

		rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		detail, ok := decodeBody(t, rec)["detail"].([]any)
		require.True(t, ok)
		assert.NotEmpty(t, detail)
	})

	t.Run("ok/original_result_forwarded", func(t *testing.T) {
		t.Parallel()

		g := testGroup(t)
		h := g.Handle(func(_ http.ResponseWriter, _ *http.Request) (any, error) {
			return map[string]any{"ok": true, "extra": "untouched"}, nil
		}, route.Response(map[string]any{
			"type":       "object",
			"required":   []any{"ok"},
			"properties": map[string]any{"ok": map[string]any{"type": "boolean"}},
		}))

		rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		// Validation is read-only: stripping does not reach the response body.
		assert.Equal(t, map[string]any{"ok": true, "extra": "untouched"}, decodeBody(t, rec))
	})

	t.Run("ok/struct_result", func(t *testing.T) {
		t.Parallel()

		type payload struct {
			OK bool `json:"ok"`
		}

		g := testGroup(t)
		h := g.Handle(func(_ http.ResponseWriter, _ *http.Request) (any, error) {
			return payload{OK: true}, nil
		}, route.Response(requireOK))

		rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("err/handler_error_passes_through", func(t *testing.T) {
		t.Parallel()

		g := testGroup(t)
		h := g.Handle(func(_ http.ResponseWriter, _ *http.Request) (any, error) {
			return nil, assertionError{}
		}, route.Response(requireOK))

		rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "handler failed")
	})
}

type assertionError struct{}

func (assertionError) Error() string { return "handler failed" }

func TestQueryDecoratorEndToEnd(t *testing.T) {
	t.Parallel()

	// A GET-only route with a numeric query parameter: the handler must see
	// the coerced number, and its own result must come back unchanged.
	g := testGroup(t)
	var seen map[string]any
	h := g.Handle(func(_ http.ResponseWriter, r *http.Request) (any, error) {
		seen = route.QueryFrom(r)
		return map[string]any{"q": seen["q"]}, nil
	},
		route.Get,
		route.Query(map[string]any{
			"type":       "object",
			"properties": map[string]any{"q": map[string]any{"type": "number"}},
		}),
	)

	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/?q=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(5), seen["q"])
	assert.Equal(t, map[string]any{"q": float64(5)}, decodeBody(t, rec))

	rec = doRequest(h, httptest.NewRequest(http.MethodPost, "/?q=5", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Nil(t, route.QueryFrom(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestQueryDecoratorValidationFailure(t *testing.T) {
	t.Parallel()

	g := testGroup(t)
	invoked := false
	h := g.Handle(func(_ http.ResponseWriter, _ *http.Request) (any, error) {
		invoked = true
		return nil, nil
	}, route.Query(map[string]any{
		"type":       "object",
		"properties": map[string]any{"q": map[string]any{"type": "number"}},
	}))

	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/?q=notanumber", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, invoked)
}
