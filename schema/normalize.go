package schema

import (
	"strconv"
)

// normalize applies the engine's UseDefaults, RemoveAdditional and
// CoerceTypes options to an instance, guided by the schema it will be
// validated against. The instance must be an already deep-copied decoded JSON
// value; it is modified in place and returned.
func (e *Engine) normalize(instance any, schema map[string]any) any {
	if schema == nil {
		return instance
	}

	// Null is left for the validator to judge; the nullable rewrite decides
	// whether it passes.
	if instance == nil {
		return nil
	}

	switch v := instance.(type) {
	case map[string]any:
		props, _ := schema["properties"].(map[string]any)

		if e.opts.UseDefaults {
			for name, sub := range props {
				subSchema, ok := sub.(map[string]any)
				if !ok {
					continue
				}
				if _, present := v[name]; present {
					continue
				}
				if def, ok := subSchema["default"]; ok {
					v[name] = deepCopy(def)
				}
			}
		}

		for name, val := range v {
			subSchema, declared := props[name].(map[string]any)
			switch {
			case declared:
				v[name] = e.normalize(val, subSchema)
			case e.opts.RemoveAdditional && props != nil:
				delete(v, name)
			}
		}

		return v
	case []any:
		items, ok := schema["items"].(map[string]any)
		if !ok {
			return v
		}
		for i, item := range v {
			v[i] = e.normalize(item, items)
		}
		return v
	default:
		if e.opts.CoerceTypes {
			if want, ok := declaredType(schema); ok {
				return coerce(v, want)
			}
		}
		return v
	}
}

// declaredType returns the schema's declared scalar type. Type lists (as
// produced by the nullable rewrite) resolve to their first non-null entry.
func declaredType(schema map[string]any) (string, bool) {
	switch t := schema["type"].(type) {
	case string:
		return t, true
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s != "null" {
				return s, true
			}
		}
	}
	return "", false
}

// coerce converts a scalar to the declared type where the conversion is
// unambiguous, following the usual coercion rules of JSON Schema validators
// that support it. Values that can't be converted are returned unchanged and
// left for the validator to reject.
func coerce(v any, want string) any {
	switch want {
	case "number", "integer":
		switch val := v.(type) {
		case string:
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				return f
			}
		case bool:
			if val {
				return float64(1)
			}
			return float64(0)
		}
	case "string":
		switch val := v.(type) {
		case float64:
			return strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(val)
		}
	case "boolean":
		switch val := v.(type) {
		case string:
			if b, err := strconv.ParseBool(val); err == nil {
				return b
			}
		case float64:
			switch val {
			case 0:
				return false
			case 1:
				return true
			}
		}
	}
	return v
}

// deepCopy clones a decoded JSON value so normalization never mutates the
// caller's data.
func deepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}
