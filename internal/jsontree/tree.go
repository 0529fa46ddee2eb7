// Package jsontree turns a JSON document into a navigable tree for
// the response tree view.
package jsontree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Kind classifies a node.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

// Node is one element of the parsed document.
type Node struct {
	Key      string // object key or array index, "" at the root
	Value    string // scalar rendering, "" for containers
	Kind     Kind
	Children []*Node
}

// IsContainer reports whether the node can be expanded.
func (n *Node) IsContainer() bool {
	return n.Kind == KindObject || n.Kind == KindArray
}

// Label renders the node for display.
func (n *Node) Label() string {
	key := n.Key
	if key == "" {
		key = "root"
	}
	switch n.Kind {
	case KindObject:
		return fmt.Sprintf("%s {%d}", key, len(n.Children))
	case KindArray:
		return fmt.Sprintf("%s [%d]", key, len(n.Children))
	default:
		return key + ": " + n.Value
	}
}

// Parse decodes a JSON document into a tree. Numbers keep their
// original text via json.Number.
func Parse(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return build("", v), nil
}

func build(key string, v any) *Node {
	switch val := v.(type) {
	case map[string]any:
		n := &Node{Key: key, Kind: KindObject}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			n.Children = append(n.Children, build(k, val[k]))
		}
		return n
	case []any:
		n := &Node{Key: key, Kind: KindArray}
		for i, item := range val {
			n.Children = append(n.Children, build(strconv.Itoa(i), item))
		}
		return n
	case string:
		return &Node{Key: key, Kind: KindString, Value: strconv.Quote(val)}
	case json.Number:
		return &Node{Key: key, Kind: KindNumber, Value: val.String()}
	case bool:
		return &Node{Key: key, Kind: KindBool, Value: strconv.FormatBool(val)}
	case nil:
		return &Node{Key: key, Kind: KindNull, Value: "null"}
	default:
		return &Node{Key: key, Kind: KindString, Value: fmt.Sprintf("%v", val)}
	}
}

// FlatNode is a tree row flattened for rendering.
type FlatNode struct {
	Node     *Node
	Depth    int
	Path     string
	Expanded bool
}

// Flatten walks the tree depth-first, descending only into container
// paths present in expanded. The root path is "$".
func Flatten(root *Node, expanded map[string]bool) []FlatNode {
	var out []FlatNode
	walk(root, "$", 0, expanded, &out)
	return out
}

func walk(n *Node, path string, depth int, expanded map[string]bool, out *[]FlatNode) {
	f := FlatNode{Node: n, Depth: depth, Path: path, Expanded: expanded[path]}
	*out = append(*out, f)
	if n.IsContainer() && expanded[path] {
		for _, c := range n.Children {
			walk(c, path+"."+c.Key, depth+1, expanded, out)
		}
	}
}
