// Package toonyaml bridges [toon.Value] and YAML documents via
// github.com/goccy/go-yaml, so a TOON document can be produced from a YAML
// source and vice versa without either side importing the other's package
// directly.
package toonyaml
