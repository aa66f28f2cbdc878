// Package document models decoded structured exports as a
// tagged-variant tree of mappings, sequences, and scalars. Platform
// parsers traverse the tree with explicit, enumerated field-name
// aliases so schema mismatches fail loudly instead of being guessed
// around.
package document

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Kind tags the variant held by a Node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "invalid"
	}
}

// Node is one vertex of a decoded export tree.
type Node struct {
	kind    Kind
	boolVal bool
	numVal  json.Number
	strVal  string
	mapping map[string]*Node
	seq     []*Node
}

// Decode reads a JSON document into a tree. Numbers are kept in their
// source representation so millisecond timestamps survive intact.
func Decode(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("document: decoding export: %w", err)
	}
	return FromValue(v)
}

// FromValue converts an already-deserialized generic value
// (maps, slices, scalars) into a tree.
func FromValue(v any) (*Node, error) {
	switch val := v.(type) {
	case nil:
		return &Node{kind: KindNull}, nil
	case bool:
		return &Node{kind: KindBool, boolVal: val}, nil
	case json.Number:
		return &Node{kind: KindNumber, numVal: val}, nil
	case float64:
		return &Node{kind: KindNumber, numVal: json.Number(strconv.FormatFloat(val, 'g', -1, 64))}, nil
	case int:
		return &Node{kind: KindNumber, numVal: json.Number(strconv.Itoa(val))}, nil
	case int64:
		return &Node{kind: KindNumber, numVal: json.Number(strconv.FormatInt(val, 10))}, nil
	case string:
		return &Node{kind: KindString, strVal: val}, nil
	case map[string]any:
		mapping := make(map[string]*Node, len(val))
		for k, elem := range val {
			n, err := FromValue(elem)
			if err != nil {
				return nil, err
			}
			mapping[k] = n
		}
		return &Node{kind: KindMapping, mapping: mapping}, nil
	case []any:
		seq := make([]*Node, len(val))
		for i, elem := range val {
			n, err := FromValue(elem)
			if err != nil {
				return nil, err
			}
			seq[i] = n
		}
		return &Node{kind: KindSequence, seq: seq}, nil
	default:
		return nil, fmt.Errorf("document: unsupported value type %T", v)
	}
}

// Kind returns the variant tag of the node.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

// Get looks up a key in a mapping node.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.kind != KindMapping {
		return nil, false
	}
	child, ok := n.mapping[key]
	return child, ok
}

// Has reports whether a mapping node contains the key.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// FirstOf returns the value of the first alias present in a mapping
// node. Field names differ across export schema variants; the alias
// list enumerates the known spellings for one logical attribute.
func (n *Node) FirstOf(aliases ...string) (*Node, bool) {
	for _, alias := range aliases {
		if child, ok := n.Get(alias); ok {
			return child, true
		}
	}
	return nil, false
}

// Keys returns the keys of a mapping node.
func (n *Node) Keys() []string {
	if n == nil || n.kind != KindMapping {
		return nil
	}
	keys := make([]string, 0, len(n.mapping))
	for k := range n.mapping {
		keys = append(keys, k)
	}
	return keys
}

// Items returns the elements of a sequence node.
func (n *Node) Items() []*Node {
	if n == nil || n.kind != KindSequence {
		return nil
	}
	return n.seq
}

// Len returns the element count of a sequence or mapping node.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.kind {
	case KindSequence:
		return len(n.seq)
	case KindMapping:
		return len(n.mapping)
	default:
		return 0
	}
}

// Str returns the string value of a string node, or "".
func (n *Node) Str() string {
	if n == nil || n.kind != KindString {
		return ""
	}
	return n.strVal
}

// Int64 returns the integer value of a number node, or a number
// carried as a string (some exports serialize epoch fields that way).
func (n *Node) Int64() (int64, error) {
	if n == nil {
		return 0, fmt.Errorf("document: Int64 on null node")
	}
	switch n.kind {
	case KindNumber:
		return n.numVal.Int64()
	case KindString:
		return strconv.ParseInt(n.strVal, 10, 64)
	default:
		return 0, fmt.Errorf("document: Int64 on %s node", n.kind)
	}
}

// Text renders a scalar node as a string for display purposes.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	switch n.kind {
	case KindString:
		return n.strVal
	case KindNumber:
		return n.numVal.String()
	case KindBool:
		return strconv.FormatBool(n.boolVal)
	default:
		return ""
	}
}
