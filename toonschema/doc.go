// Package toonschema infers a JSON Schema from a decoded [toon.Value].
//
// The inference algorithm is structural only: it widens types across array
// elements the same way a YAML-schema generator widens them across
// sequence elements, but carries no annotation system, since a TOON
// document has no comments to annotate from.
package toonschema
