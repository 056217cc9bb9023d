package toonschema

import (
	"github.com/google/jsonschema-go/jsonschema"

	"go.toonfmt.dev/toon"
)

// JSON Schema type constants.
const (
	typeNull    = "null"
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// Option configures [Infer].
type Option func(*config)

type config struct {
	strict      bool
	title       string
	description string
	id          string
}

// WithStrict sets additionalProperties: false on every inferred object
// schema, matching the teacher's WithStrict schema-generation option.
func WithStrict(strict bool) Option {
	return func(c *config) { c.strict = strict }
}

// WithTitle sets the root schema's title field.
func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}

// WithDescription sets the root schema's description field.
func WithDescription(description string) Option {
	return func(c *config) { c.description = description }
}

// WithID sets the root schema's $id field.
func WithID(id string) Option {
	return func(c *config) { c.id = id }
}

// Infer returns a JSON Schema structurally describing v: objects become
// schemas with Properties/PropertyOrder (no Required list is set), arrays become schemas with
// Items (type-widened across elements the way a mixed-type YAML sequence
// widens), and primitives become their matching JSON Schema type.
//
// Unlike a YAML-oriented schema generator, Infer has no annotation or
// comment system to consult -- a TOON document carries no comments -- so
// this is pure structural inference, equivalent to running with zero
// annotators registered.
func Infer(v toon.Value, opts ...Option) *jsonschema.Schema {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	schema := walk(v, cfg)

	if cfg.title != "" {
		schema.Title = cfg.title
	}

	if cfg.description != "" {
		schema.Description = cfg.description
	}

	if cfg.id != "" {
		schema.ID = cfg.id
	}

	return schema
}

func walk(v toon.Value, cfg *config) *jsonschema.Schema {
	switch v.Kind() {
	case toon.KindObject:
		return walkObject(v.Object(), cfg)
	case toon.KindArray:
		return walkArray(v.Items(), cfg)
	default:
		return walkScalar(v)
	}
}

func walkObject(obj *toon.Object, cfg *config) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       typeObject,
		Properties: make(map[string]*jsonschema.Schema, obj.Len()),
	}

	if cfg.strict {
		schema.AdditionalProperties = falseSchema()
	} else {
		schema.AdditionalProperties = trueSchema()
	}

	propertyOrder := make([]string, 0, obj.Len())

	obj.Range(func(key string, val toon.Value) bool {
		schema.Properties[key] = walk(val, cfg)
		propertyOrder = append(propertyOrder, key)

		return true
	})

	schema.PropertyOrder = propertyOrder

	if len(schema.Properties) == 0 {
		schema.Properties = nil
		schema.PropertyOrder = nil
	}

	return schema
}

func walkArray(items []toon.Value, cfg *config) *jsonschema.Schema {
	schema := &jsonschema.Schema{Type: typeArray}

	if items := inferItemsSchema(items, cfg); items != nil {
		schema.Items = items
	}

	return schema
}

// inferItemsSchema builds an items schema for a non-empty array by walking
// the first element and, when every remaining element shares a compatible
// primitive type, widening across them. A structurally mixed array (objects
// alongside primitives, or differing object shapes) falls back to the first
// element's schema, leaving later elements unconstrained -- the same
// best-effort stance the teacher's generator takes on mixed YAML sequences.
func inferItemsSchema(items []toon.Value, cfg *config) *jsonschema.Schema {
	if len(items) == 0 {
		return nil
	}

	first := walk(items[0], cfg)
	if first.Type != typeBoolean && first.Type != typeInteger &&
		first.Type != typeNumber && first.Type != typeString && first.Type != typeNull {
		return first
	}

	widened := first.Type

	for _, item := range items[1:] {
		widened = widenType(widened, scalarType(item))
	}

	if widened == "" {
		return nil
	}

	return &jsonschema.Schema{Type: widened}
}

func scalarType(v toon.Value) string {
	switch v.Kind() {
	case toon.KindNull:
		return typeNull
	case toon.KindBool:
		return typeBoolean
	case toon.KindInt:
		return typeInteger
	case toon.KindFloat:
		return typeNumber
	case toon.KindString:
		return typeString
	default:
		return ""
	}
}

// widenType returns the widened type when merging two type strings. Returns
// empty string (no constraint) for incompatible types.
func widenType(a, b string) string {
	if a == b {
		return a
	}

	if a == "" {
		return b
	}

	if b == "" {
		return a
	}

	if (a == typeInteger && b == typeNumber) || (a == typeNumber && b == typeInteger) {
		return typeNumber
	}

	return ""
}

func walkScalar(v toon.Value) *jsonschema.Schema {
	t := scalarType(v)
	if t == "" || t == typeNull {
		return &jsonschema.Schema{}
	}

	return &jsonschema.Schema{Type: t}
}

// trueSchema returns a schema that validates everything (marshals to JSON
// true).
func trueSchema() *jsonschema.Schema {
	return &jsonschema.Schema{}
}

// falseSchema returns a schema that validates nothing (marshals to JSON
// false).
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
