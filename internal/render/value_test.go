package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("zebra", Number(1))
	m.Set("apple", Number(2))
	m.Set("mango", Number(3))
	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())

	// Replacing a value keeps the original position.
	m.Set("apple", Number(9))
	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())
	v, ok := m.Get("apple")
	require.True(t, ok)
	assert.Equal(t, 9.0, v.Num())

	m.Delete("zebra")
	assert.Equal(t, []string{"apple", "mango"}, m.Keys())
	_, ok = m.Get("zebra")
	assert.False(t, ok)
}

func TestValueString(t *testing.T) {
	m := NewMap()
	m.Set("a", Number(1))
	m.Set("b", String("x"))

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{name: "null is empty", v: Null(), want: ""},
		{name: "bool", v: Bool(true), want: "true"},
		{name: "integral number", v: Number(42), want: "42"},
		{name: "fractional number", v: Number(1.5), want: "1.5"},
		{name: "string", v: String("hi"), want: "hi"},
		{name: "list", v: List(Number(1), String("a")), want: "[1, a]"},
		{name: "map keeps order", v: m, want: "{a: 1, b: x}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "3", FormatNumber(3))
	assert.Equal(t, "-12", FormatNumber(-12))
	assert.Equal(t, "3.25", FormatNumber(3.25))
	assert.Equal(t, "0", FormatNumber(0))
}

func TestFromAnySortsPlainMapKeys(t *testing.T) {
	v := FromAny(map[string]any{"b": 1, "a": 2, "c": 3})
	require.Equal(t, KindMap, v.Kind())
	assert.Equal(t, []string{"a", "b", "c"}, v.Keys())
}

func TestFromAnyRoundTrip(t *testing.T) {
	in := map[string]any{
		"name":  "x",
		"n":     int64(3),
		"ok":    true,
		"ratio": 0.5,
		"tags":  []any{"a", "b"},
		"gone":  nil,
	}
	out := FromAny(in).ToAny()
	assert.Equal(t, in, out)
}

func TestFromYAMLPreservesDocumentOrder(t *testing.T) {
	input := `{"zebra": 1, "apple": {"inner_z": 1, "inner_a": 2}, "mango": [1, 2]}`
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(input), &node))
	v, err := FromYAML(&node)
	require.NoError(t, err)

	assert.Equal(t, []string{"zebra", "apple", "mango"}, v.Keys())
	inner, ok := v.Get("apple")
	require.True(t, ok)
	assert.Equal(t, []string{"inner_z", "inner_a"}, inner.Keys())
}

func TestFromYAMLScalars(t *testing.T) {
	input := "flag: true\ncount: 7\nratio: 0.5\nmissing: null\nname: hello"
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(input), &node))
	v, err := FromYAML(&node)
	require.NoError(t, err)

	flag, _ := v.Get("flag")
	assert.Equal(t, KindBool, flag.Kind())
	count, _ := v.Get("count")
	assert.Equal(t, 7.0, count.Num())
	ratio, _ := v.Get("ratio")
	assert.Equal(t, 0.5, ratio.Num())
	missing, _ := v.Get("missing")
	assert.True(t, missing.IsNull())
	name, _ := v.Get("name")
	assert.Equal(t, "hello", name.Str())
}
