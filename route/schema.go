package route

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/usherkit/usher/hterror"
	"github.com/usherkit/usher/schema"
)

const maxBodySize = 1024 * 1024 // 1MiB

// Query returns a decorator that validates the request's query parameters
// against a JSON Schema. Parameters are collected into an object (first value
// per key) and validated with the given engine, or the shared default engine
// if none is given. Validation failure means a 400 error carrying the issue
// list; on success the normalized (coerced, defaulted) parameters are
// available to inner layers via QueryFrom.
//
// The schema is compiled once, at decoration time; an invalid schema panics.
func Query(schemaDoc map[string]any, engine ...*schema.Engine) Decorator {
	compiled := engineFor(engine).MustCompile(schemaDoc)

	return func(next Handler) Handler {
		return func(w http.ResponseWriter, r *http.Request) (any, error) {
			params := make(map[string]any, len(r.URL.Query()))
			for key, vals := range r.URL.Query() {
				if len(vals) > 0 {
					params[key] = vals[0]
				}
			}

			norm, issues, err := compiled.Validate(params)
			if err != nil {
				return nil, hterror.ServerInternal("failed validating query parameters", err.Error())
			}
			if len(issues) > 0 {
				return nil, hterror.BadRequest("invalid query parameters", issues)
			}

			normalized, _ := norm.(map[string]any)
			return next(w, r.WithContext(withQuery(r.Context(), normalized)))
		}
	}
}

// Body returns a decorator that decodes the request body as JSON and
// validates it against a JSON Schema. An empty body validates as an empty
// object, so schema defaults still apply. Malformed JSON and validation
// failures both mean a 400 error; on success the normalized body is
// available to inner layers via BodyFrom.
//
// The schema is compiled once, at decoration time; an invalid schema panics.
func Body(schemaDoc map[string]any, engine ...*schema.Engine) Decorator {
	compiled := engineFor(engine).MustCompile(schemaDoc)

	return func(next Handler) Handler {
		return func(w http.ResponseWriter, r *http.Request) (any, error) {
			var body any = map[string]any{}
			if r.Body != nil {
				data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
				if err != nil {
					return nil, hterror.BadRequest("failed reading request body", err.Error())
				}
				if len(data) > 0 {
					if err = json.Unmarshal(data, &body); err != nil {
						return nil, hterror.BadRequest("malformed JSON request body", err.Error())
					}
				}
			}

			norm, issues, err := compiled.Validate(body)
			if err != nil {
				return nil, hterror.ServerInternal("failed validating request body", err.Error())
			}
			if len(issues) > 0 {
				return nil, hterror.BadRequest("invalid request body", issues)
			}

			return next(w, r.WithContext(withBody(r.Context(), norm)))
		}
	}
}

// Response returns a decorator that validates the inner handler's result
// against a JSON Schema after it returns. A failure means a 500 error
// carrying the issue list. Validation is read-only: on success the handler's
// original result is forwarded unchanged, without any normalization the
// engine may have applied while validating.
//
// The schema is compiled once, at decoration time; an invalid schema panics.
func Response(schemaDoc map[string]any, engine ...*schema.Engine) Decorator {
	compiled := engineFor(engine).MustCompile(schemaDoc)

	return func(next Handler) Handler {
		return func(w http.ResponseWriter, r *http.Request) (any, error) {
			result, err := next(w, r)
			if err != nil {
				return result, err
			}

			instance, err := asJSONValue(result)
			if err != nil {
				return nil, hterror.ServerInternal("response is not JSON-serializable", err.Error())
			}

			_, issues, err := compiled.Validate(instance)
			if err != nil {
				return nil, hterror.ServerInternal("failed validating response", err.Error())
			}
			if len(issues) > 0 {
				return nil, hterror.ServerInternal("invalid response payload", issues)
			}

			return result, nil
		}
	}
}

// asJSONValue converts an arbitrary handler result into decoded-JSON form so
// typed structs validate the same way their serialized body will.
func asJSONValue(result any) (any, error) {
	switch result.(type) {
	case nil, map[string]any, []any, string, float64, bool:
		return result, nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		//nolint:wrapcheck // Wrapped by the caller.
		return nil, err
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		//nolint:wrapcheck // Wrapped by the caller.
		return nil, err
	}
	return instance, nil
}

func engineFor(engines []*schema.Engine) *schema.Engine {
	if len(engines) > 0 && engines[0] != nil {
		return engines[0]
	}
	return schema.Default()
}
