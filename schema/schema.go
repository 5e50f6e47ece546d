package schema

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Issue describes a single validation failure.
type Issue struct {
	// Path locates the failing value within the instance, e.g. "items.0.name"
	// or "(root)".
	Path string `json:"path"`
	// Keyword is the schema keyword that failed, e.g. "required" or "type".
	Keyword string `json:"keyword"`
	// Message is a human-readable description of the failure.
	Message string `json:"message"`
}

// Schema is a JSON Schema compiled by an Engine, ready for validation. It is
// immutable and safe for concurrent use.
type Schema struct {
	engine   *Engine
	raw      map[string]any
	compiled *gojsonschema.Schema
}

// Compile compiles a JSON Schema, given as a decoded JSON object. The schema
// is compiled exactly once; the returned Schema can be validated against any
// number of times.
func (e *Engine) Compile(raw map[string]any) (*Schema, error) {
	prepared, ok := deepCopy(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid schema document")
	}
	rewriteNullable(prepared, e.opts.Nullable)

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(prepared))
	if err != nil {
		return nil, fmt.Errorf("failed compiling JSON Schema: %w", err)
	}

	return &Schema{engine: e, raw: prepared, compiled: compiled}, nil
}

// MustCompile is like Compile but panics on failure. It is intended for
// schemas declared at registration time.
func (e *Engine) MustCompile(raw map[string]any) *Schema {
	s, err := e.Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks an instance against the schema and returns the normalized
// instance along with any validation issues. The caller's value is never
// modified: normalization (defaults, stripping, coercion) is applied to a
// deep copy, which is returned whether or not validation passed. A non-nil
// error indicates an engine failure, not a validation failure.
func (s *Schema) Validate(instance any) (any, []Issue, error) {
	norm := s.engine.normalize(deepCopy(instance), s.raw)

	result, err := s.compiled.Validate(gojsonschema.NewGoLoader(norm))
	if err != nil {
		return norm, nil, fmt.Errorf("failed validating instance: %w", err)
	}
	if result.Valid() {
		return norm, nil, nil
	}

	resErrs := result.Errors()
	issues := make([]Issue, 0, len(resErrs))
	for _, re := range resErrs {
		issues = append(issues, Issue{
			Path:    re.Field(),
			Keyword: re.Type(),
			Message: re.Description(),
		})
	}
	if !s.engine.opts.AllErrors && len(issues) > 1 {
		issues = issues[:1]
	}

	return norm, issues, nil
}

// rewriteNullable handles the non-standard `nullable: true` keyword: with the
// option enabled, `{type: T, nullable: true}` becomes `{type: [T, "null"]}`;
// the keyword itself is always stripped so the compiled schema only contains
// standard keywords. Nested subschemas are rewritten as well, but values that
// are data rather than schemas (defaults, enums, consts, examples) are left
// alone.
func rewriteNullable(node map[string]any, allow bool) {
	if nb, ok := node["nullable"].(bool); ok {
		delete(node, "nullable")
		if nb && allow {
			switch t := node["type"].(type) {
			case string:
				node["type"] = []any{t, "null"}
			case []any:
				if !containsType(t, "null") {
					node["type"] = append(t, "null")
				}
			}
		}
	}

	for key, val := range node {
		switch key {
		case "default", "enum", "const", "examples":
			continue
		}
		rewriteNullableValue(val, allow)
	}
}

func rewriteNullableValue(val any, allow bool) {
	switch v := val.(type) {
	case map[string]any:
		rewriteNullable(v, allow)
	case []any:
		for _, item := range v {
			rewriteNullableValue(item, allow)
		}
	}
}

func containsType(types []any, want string) bool {
	for _, t := range types {
		if s, ok := t.(string); ok && s == want {
			return true
		}
	}
	return false
}
