package render

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies the shape of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
	KindPrebuilt
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
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindPrebuilt:
		return "prebuilt"
	}
	return "unknown"
}

// Value is an untyped JSON-like value. Map keys keep insertion order.
// The Prebuilt variant carries an already-rendered Node through the
// dispatcher unchanged (formatters use it to return composite blocks).
type Value struct {
	kind   Kind
	boolV  bool
	numV   float64
	strV   string
	listV  []Value
	keys   []string
	fields map[string]Value
	nodeV  Node
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, boolV: b} }

// Number wraps a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, numV: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, strV: s} }

// List wraps a sequence of values.
func List(vs ...Value) Value { return Value{kind: KindList, listV: vs} }

// NewMap returns an empty ordered map value.
func NewMap() Value {
	return Value{kind: KindMap, fields: map[string]Value{}}
}

// Prebuilt wraps an already-rendered node.
func Prebuilt(n Node) Value { return Value{kind: KindPrebuilt, nodeV: n} }

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload.
func (v Value) Bool() bool { return v.boolV }

// Num returns the numeric payload.
func (v Value) Num() float64 { return v.numV }

// Str returns the string payload.
func (v Value) Str() string { return v.strV }

// Items returns the list payload.
func (v Value) Items() []Value { return v.listV }

// Node returns the prebuilt node payload.
func (v Value) Node() Node { return v.nodeV }

// Len returns the number of elements for lists and maps, zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.listV)
	case KindMap:
		return len(v.keys)
	}
	return 0
}

// Keys returns map keys in insertion order.
func (v Value) Keys() []string { return v.keys }

// Get looks up a map key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	val, ok := v.fields[key]
	return val, ok
}

// Set inserts or replaces a map entry, preserving first-insertion order.
func (v *Value) Set(key string, val Value) {
	if v.kind != KindMap {
		return
	}
	if v.fields == nil {
		v.fields = map[string]Value{}
	}
	if _, exists := v.fields[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = val
}

// Delete removes a map entry.
func (v *Value) Delete(key string) {
	if v.kind != KindMap {
		return
	}
	if _, exists := v.fields[key]; !exists {
		return
	}
	delete(v.fields, key)
	for i, k := range v.keys {
		if k == key {
			v.keys = append(v.keys[:i], v.keys[i+1:]...)
			break
		}
	}
}

// String renders a compact plain representation of v, mirroring how scalar
// leaves fall back when no field formatter applies.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.boolV)
	case KindNumber:
		return FormatNumber(v.numV)
	case KindString:
		return v.strV
	case KindList:
		parts := make([]string, len(v.listV))
		for i, item := range v.listV {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, 0, len(v.keys))
		for _, k := range v.keys {
			parts = append(parts, k+": "+v.fields[k].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindPrebuilt:
		return "<node>"
	}
	return ""
}

// FormatNumber renders a float the way JSON integers are expected to look:
// integral values print without a fractional part.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FromAny converts native Go data (as produced by encoding/json or yaml
// decoding into interface{}) to a Value. Plain map keys carry no order, so
// they are sorted for determinism; use FromYAML for order preservation.
func FromAny(data any) Value {
	switch t := data.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case Node:
		return Prebuilt(t)
	case bool:
		return Bool(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case string:
		return String(t)
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			items[i] = FromAny(e)
		}
		return List(items...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, FromAny(t[k]))
		}
		return m
	default:
		return String(fmt.Sprint(t))
	}
}

// FromYAML converts a decoded yaml document node to a Value. Mapping keys
// keep document order, which is how JSON object order survives decoding
// (YAML is a superset of JSON).
func FromYAML(n *yaml.Node) (Value, error) {
	if n == nil {
		return Null(), nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return FromYAML(n.Content[0])
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := FromYAML(n.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			m.Set(n.Content[i].Value, val)
		}
		return m, nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := FromYAML(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, val)
		}
		return List(items...), nil
	case yaml.ScalarNode:
		return scalarFromYAML(n)
	case yaml.AliasNode:
		return FromYAML(n.Alias)
	}
	return Value{}, fmt.Errorf("unsupported yaml node kind %v", n.Kind)
}

func scalarFromYAML(n *yaml.Node) (Value, error) {
	switch n.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		if err != nil {
			return String(n.Value), nil
		}
		return Bool(b), nil
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return String(n.Value), nil
		}
		return Number(f), nil
	default:
		return String(n.Value), nil
	}
}

// ToAny converts a Value back to native Go data. Prebuilt nodes are not
// representable and come back as their string placeholder.
func (v Value) ToAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolV
	case KindNumber:
		if v.numV == math.Trunc(v.numV) && math.Abs(v.numV) < 1e15 {
			return int64(v.numV)
		}
		return v.numV
	case KindString:
		return v.strV
	case KindList:
		out := make([]any, len(v.listV))
		for i, e := range v.listV {
			out[i] = e.ToAny()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.fields[k].ToAny()
		}
		return out
	default:
		return v.String()
	}
}
