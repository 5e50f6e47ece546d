package schema

// Options are the configuration knobs recognized by an Engine.
type Options struct {
	// AllErrors collects every validation issue instead of stopping at the
	// first one.
	AllErrors bool
	// Nullable makes null satisfy subschemas declaring `nullable: true`.
	Nullable bool
	// RemoveAdditional strips object properties not declared in the schema's
	// `properties` before validation.
	RemoveAdditional bool
	// UseDefaults fills in schema-declared defaults for absent properties.
	UseDefaults bool
	// CoerceTypes converts scalars to the schema's declared type where the
	// conversion is unambiguous.
	CoerceTypes bool
}

// DefaultOptions returns the options used by the shared default engine, with
// all knobs enabled.
func DefaultOptions() Options {
	return Options{
		AllErrors:        true,
		Nullable:         true,
		RemoveAdditional: true,
		UseDefaults:      true,
		CoerceTypes:      true,
	}
}

// Engine compiles JSON Schemas into validators. It is read-only after
// construction.
type Engine struct {
	opts Options
}

// New creates an Engine with the given options.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// The process-wide shared engine. It is configured once and never mutated.
var defaultEngine = New(DefaultOptions())

// Default returns the process-wide shared engine.
func Default() *Engine {
	return defaultEngine
}

// Options returns the engine's configuration.
func (e *Engine) Options() Options {
	return e.opts
}
