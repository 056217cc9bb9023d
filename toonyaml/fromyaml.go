package toonyaml

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"go.toonfmt.dev/toon"
)

// Sentinel errors returned by [FromYAML].
var (
	ErrInvalidYAML     = errors.New("toonyaml: invalid yaml")
	ErrUnsupportedNode = errors.New("toonyaml: unsupported yaml node")
)

// FromYAML parses the first YAML document in data and converts it to a
// [toon.Value]. Merge keys (<<) are expanded by splicing the merged
// mapping's entries into the surrounding object, last-occurrence-wins,
// skipping any key already present -- the only sensible semantic once <<
// has been flattened into a plain ordered object.
//
// A document containing only comments or whitespace decodes to an empty
// object, matching the empty-document rule of [toon.Decode].
func FromYAML(data []byte) (toon.Value, error) {
	file, err := parser.ParseBytes(data, parser.ParseComments)
	if err != nil {
		return toon.Null(), fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return toon.NewObject(), nil
	}

	doc := file.Docs[0]
	anchors := buildAnchorMap(doc.Body)

	return walkNode(doc.Body, anchors)
}

func buildAnchorMap(node ast.Node) map[string]ast.Node {
	anchors := make(map[string]ast.Node)

	ast.Walk(&anchorVisitor{anchors: anchors}, node)

	return anchors
}

type anchorVisitor struct {
	anchors map[string]ast.Node
}

// Visit implements the [ast.Visitor] interface.
func (v *anchorVisitor) Visit(node ast.Node) ast.Visitor {
	if anchor, ok := node.(*ast.AnchorNode); ok {
		v.anchors[anchor.Name.String()] = anchor.Value
	}

	return v
}

func resolveAliases(node ast.Node, anchors map[string]ast.Node) ast.Node {
	if node == nil {
		return nil
	}

	alias, ok := node.(*ast.AliasNode)
	if !ok {
		return node
	}

	if resolved, found := anchors[alias.Value.String()]; found {
		return resolved
	}

	return nil
}

func unwrapNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

func walkNode(node ast.Node, anchors map[string]ast.Node) (toon.Value, error) {
	node = resolveAliases(node, anchors)
	node = unwrapNode(node)

	if node == nil {
		return toon.Null(), nil
	}

	switch n := node.(type) {
	case *ast.MappingNode:
		return walkMapping(n.Values, anchors)
	case *ast.MappingValueNode:
		return walkMapping([]*ast.MappingValueNode{n}, anchors)
	case *ast.SequenceNode:
		return walkSequence(n, anchors)
	default:
		return walkScalar(node)
	}
}

func walkMapping(values []*ast.MappingValueNode, anchors map[string]ast.Node) (toon.Value, error) {
	obj := toon.NewOrderedObject()

	for _, mvn := range values {
		if _, ok := mvn.Key.(*ast.MergeKeyNode); ok {
			if err := spliceMergeKey(obj, mvn, anchors); err != nil {
				return toon.Null(), err
			}

			continue
		}

		val, err := walkNode(mvn.Value, anchors)
		if err != nil {
			return toon.Null(), err
		}

		obj.Set(keyString(mvn.Key), val)
	}

	return toon.ObjectValue(obj), nil
}

// keyString extracts a mapping key's literal text, preferring a quoted
// string node's decoded value over its raw source token.
func keyString(key ast.Node) string {
	if sn, ok := unwrapNode(key).(*ast.StringNode); ok {
		return sn.Value
	}

	return key.String()
}

func spliceMergeKey(obj *toon.Object, mvn *ast.MappingValueNode, anchors map[string]ast.Node) error {
	merged := resolveAliases(mvn.Value, anchors)
	merged = unwrapNode(merged)

	switch mv := merged.(type) {
	case *ast.MappingNode:
		return spliceMappingValues(obj, mv.Values, anchors)
	case *ast.MappingValueNode:
		return spliceMappingValues(obj, []*ast.MappingValueNode{mv}, anchors)
	case *ast.SequenceNode:
		for _, seqVal := range mv.Values {
			resolved := resolveAliases(seqVal, anchors)
			resolved = unwrapNode(resolved)

			mn, ok := resolved.(*ast.MappingNode)
			if !ok {
				continue
			}

			if err := spliceMappingValues(obj, mn.Values, anchors); err != nil {
				return err
			}
		}
	}

	return nil
}

func spliceMappingValues(obj *toon.Object, values []*ast.MappingValueNode, anchors map[string]ast.Node) error {
	for _, mvn := range values {
		key := keyString(mvn.Key)
		if _, exists := obj.Get(key); exists {
			continue
		}

		val, err := walkNode(mvn.Value, anchors)
		if err != nil {
			return err
		}

		obj.Set(key, val)
	}

	return nil
}

func walkSequence(seq *ast.SequenceNode, anchors map[string]ast.Node) (toon.Value, error) {
	items := make([]toon.Value, 0, len(seq.Values))

	for _, val := range seq.Values {
		item, err := walkNode(val, anchors)
		if err != nil {
			return toon.Null(), err
		}

		items = append(items, item)
	}

	return toon.Array(items), nil
}

func walkScalar(node ast.Node) (toon.Value, error) {
	switch n := node.(type) {
	case *ast.NullNode:
		return toon.Null(), nil
	case *ast.BoolNode:
		return toon.Bool(n.Value), nil
	case *ast.IntegerNode:
		return integerValue(n.Value)
	case *ast.FloatNode:
		return toon.Float(n.Value), nil
	case *ast.InfinityNode:
		return toon.Float(n.Value), nil
	case *ast.NanNode:
		return toon.Float(math.NaN()), nil
	case *ast.StringNode:
		return toon.String(n.Value), nil
	case *ast.LiteralNode:
		return toon.String(n.Value.Value), nil
	default:
		return toon.Null(), fmt.Errorf("%w: %T", ErrUnsupportedNode, node)
	}
}

func integerValue(raw any) (toon.Value, error) {
	switch n := raw.(type) {
	case int64:
		return toon.Int(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return toon.Float(float64(n)), nil
		}

		return toon.Int(int64(n)), nil
	case int:
		return toon.Int(int64(n)), nil
	default:
		return toon.Null(), fmt.Errorf("%w: integer node holds %T", ErrUnsupportedNode, raw)
	}
}
