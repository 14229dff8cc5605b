package safeview

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "null"},
		{"string", "hi\nthere", `"hi\nthere"`},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"json number", json.Number("12.50"), "12.50"},
		{"empty map", map[string]any{}, "{}"},
		{"empty slice", []any{}, "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Inspect(tt.value, Options{})
			assert.Equal(t, tt.want, r.Text)
			assert.False(t, r.Truncated)
		})
	}
}

func TestInspect_NestedIsSortedAndIndented(t *testing.T) {
	v := map[string]any{
		"name": "lobby",
		"id":   "s1",
		"tags": []any{"a", 2},
	}
	r := Inspect(v, Options{})
	want := "{\n" +
		"  \"id\": \"s1\",\n" +
		"  \"name\": \"lobby\",\n" +
		"  \"tags\": [\n" +
		"    \"a\",\n" +
		"    2,\n" +
		"  ],\n" +
		"}"
	assert.Equal(t, want, r.Text)

	assert.Equal(t, r, Inspect(v, Options{}), "rendering is deterministic")
}

func TestInspect_SelfReferencingMap(t *testing.T) {
	m := map[string]any{"id": "loop"}
	m["self"] = m

	var r Result
	require.NotPanics(t, func() { r = Inspect(m, Options{}) })
	assert.Contains(t, r.Text, MarkerCircular)
	assert.Contains(t, r.Text, `"loop"`)
}

func TestInspect_IndirectCycle(t *testing.T) {
	a := map[string]any{"name": "a"}
	b := map[string]any{"name": "b", "peer": a}
	list := []any{a, b}
	a["children"] = list
	a["peer"] = b

	r := Inspect(a, Options{MaxDepth: 20})
	assert.Contains(t, r.Text, MarkerCircular)
}

func TestInspect_SharedReferenceIsNotCircular(t *testing.T) {
	shared := map[string]any{"x": 1}
	v := []any{shared, shared}
	r := Inspect(v, Options{})
	assert.NotContains(t, r.Text, MarkerCircular, "siblings sharing a child are not a cycle")
	assert.Equal(t, 2, strings.Count(r.Text, `"x": 1`))
}

type node struct {
	Name string `json:"name"`
	Next *node  `json:"next"`
	skip int
}

func TestInspect_PointerCycle(t *testing.T) {
	n := &node{Name: "head", skip: 1}
	n.Next = n
	r := Inspect(n, Options{})
	assert.Contains(t, r.Text, `"name": "head"`)
	assert.Contains(t, r.Text, MarkerCircular)
	assert.NotContains(t, r.Text, "skip")
}

func TestInspect_DepthLimit(t *testing.T) {
	v := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}
	r := Inspect(v, Options{MaxDepth: 2})
	assert.Contains(t, r.Text, `"b": `+MarkerDepthLimit)
	assert.NotContains(t, r.Text, `"c"`)
}

func TestInspect_ArrayTruncation(t *testing.T) {
	items := make([]any, 10)
	for i := range items {
		items[i] = i
	}
	r := Inspect(items, Options{MaxArrayItems: 3})
	assert.Contains(t, r.Text, "[Truncated 7 more]")
	assert.Contains(t, r.Text, "  2,\n")
	assert.NotContains(t, r.Text, "  3,\n")
	assert.False(t, r.Truncated, "breadth truncation is not output truncation")
}

func TestInspect_OutputCap(t *testing.T) {
	big := make([]any, 1000)
	for i := range big {
		big[i] = strings.Repeat("é", 20)
	}
	r := Inspect(big, Options{MaxArrayItems: 1000, MaxOutputChars: 100})
	assert.True(t, r.Truncated)
	assert.Equal(t, 100, utf8.RuneCountInString(r.Text))
	assert.True(t, utf8.ValidString(r.Text))
}

func TestInspect_DeepNestingTerminates(t *testing.T) {
	var v any = "leaf"
	for i := 0; i < 10000; i++ {
		v = []any{v}
	}
	r := Inspect(v, Options{MaxDepth: 8})
	assert.Contains(t, r.Text, MarkerDepthLimit)
}

func TestTruncatedMarker(t *testing.T) {
	assert.Equal(t, "[Truncated 5 more]", TruncatedMarker(5))
}
