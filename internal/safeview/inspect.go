// Package safeview renders untrusted nested values as bounded text.
//
// Vendor payloads may be cyclic, arbitrarily deep, or very wide. Every
// function here terminates on any input, never panics, and never emits more
// than the configured number of characters.
package safeview

import (
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Markers emitted in place of content that was not rendered.
const (
	MarkerCircular   = "[Circular]"
	MarkerDepthLimit = "[DepthLimit]"
	// TruncationBanner is the first line of a truncated preview.
	TruncationBanner = "Preview truncated for stability."
)

// Defaults applied to zero Options fields.
const (
	DefaultMaxDepth       = 6
	DefaultMaxArrayItems  = 50
	DefaultMaxOutputChars = 12000
)

// Options bounds one rendering.
type Options struct {
	MaxDepth       int
	MaxArrayItems  int
	MaxOutputChars int
}

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxArrayItems <= 0 {
		o.MaxArrayItems = DefaultMaxArrayItems
	}
	if o.MaxOutputChars <= 0 {
		o.MaxOutputChars = DefaultMaxOutputChars
	}
	return o
}

// Result is rendered text plus whether the character budget cut it short.
type Result struct {
	Text      string
	Truncated bool
}

// TruncatedMarker reports how many items were left out of a sequence.
func TruncatedMarker(n int) string {
	return "[Truncated " + strconv.Itoa(n) + " more]"
}

var (
	jsonNumberType = reflect.TypeOf(json.Number(""))
	timeType       = reflect.TypeOf(time.Time{})
)

// visitKey identifies a reference-typed value on the current path.
type visitKey struct {
	kind reflect.Kind
	ptr  uintptr
	len  int
}

// referenceKey returns the identity of v if it can take part in a cycle.
func referenceKey(v reflect.Value) (visitKey, bool) {
	switch v.Kind() {
	case reflect.Map, reflect.Pointer:
		if v.IsNil() {
			return visitKey{}, false
		}
		return visitKey{kind: v.Kind(), ptr: v.Pointer()}, true
	case reflect.Slice:
		if v.IsNil() || v.Len() == 0 {
			return visitKey{}, false
		}
		return visitKey{kind: reflect.Slice, ptr: v.Pointer(), len: v.Len()}, true
	}
	return visitKey{}, false
}

// budget is a rune-counting writer that stops once its limit is reached.
type budget struct {
	b         strings.Builder
	limit     int
	used      int
	truncated bool
}

func (w *budget) write(s string) {
	if w.truncated {
		return
	}
	for _, r := range s {
		if w.used >= w.limit {
			w.truncated = true
			return
		}
		w.b.WriteRune(r)
		w.used++
	}
}

type inspector struct {
	opts     Options
	out      budget
	visiting map[visitKey]struct{}
}

// Inspect renders value as indented, JSON-like text. Cycles render as
// [Circular], containers below MaxDepth as [DepthLimit], and sequences longer
// than MaxArrayItems end with a [Truncated N more] marker.
func Inspect(value any, opts Options) Result {
	opts = opts.withDefaults()
	in := &inspector{
		opts:     opts,
		out:      budget{limit: opts.MaxOutputChars},
		visiting: make(map[visitKey]struct{}),
	}
	in.value(reflect.ValueOf(value), 0, "")
	return Result{Text: in.out.b.String(), Truncated: in.out.truncated}
}

func (in *inspector) value(v reflect.Value, depth int, indent string) {
	if in.out.truncated {
		return
	}
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			in.out.write("null")
			return
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		in.out.write("null")
		return
	}

	if s, ok := scalarText(v); ok {
		in.out.write(s)
		return
	}

	key, isRef := referenceKey(v)
	if isRef {
		if _, seen := in.visiting[key]; seen {
			in.out.write(MarkerCircular)
			return
		}
		in.visiting[key] = struct{}{}
		defer delete(in.visiting, key)
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			in.out.write("null")
			return
		}
		in.value(v.Elem(), depth, indent)
	case reflect.Map:
		if v.IsNil() {
			in.out.write("null")
			return
		}
		in.mapValue(v, depth, indent)
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			in.out.write("null")
			return
		}
		in.listValue(v, depth, indent)
	case reflect.Struct:
		in.structValue(v, depth, indent)
	default:
		in.out.write("[" + v.Kind().String() + "]")
	}
}

func (in *inspector) mapValue(v reflect.Value, depth int, indent string) {
	if v.Len() == 0 {
		in.out.write("{}")
		return
	}
	if depth >= in.opts.MaxDepth {
		in.out.write(MarkerDepthLimit)
		return
	}
	keys := sortedKeys(v)
	child := indent + "  "
	in.out.write("{\n")
	for i, k := range keys {
		if in.out.truncated {
			return
		}
		if i == in.opts.MaxArrayItems {
			in.out.write(child + TruncatedMarker(len(keys)-i) + "\n")
			break
		}
		in.out.write(child + strconv.Quote(k.label) + ": ")
		in.value(v.MapIndex(k.key), depth+1, child)
		in.out.write(",\n")
	}
	in.out.write(indent + "}")
}

func (in *inspector) listValue(v reflect.Value, depth int, indent string) {
	n := v.Len()
	if n == 0 {
		in.out.write("[]")
		return
	}
	if depth >= in.opts.MaxDepth {
		in.out.write(MarkerDepthLimit)
		return
	}
	child := indent + "  "
	in.out.write("[\n")
	for i := 0; i < n; i++ {
		if in.out.truncated {
			return
		}
		if i == in.opts.MaxArrayItems {
			in.out.write(child + TruncatedMarker(n-i) + "\n")
			break
		}
		in.out.write(child)
		in.value(v.Index(i), depth+1, child)
		in.out.write(",\n")
	}
	in.out.write(indent + "]")
}

func (in *inspector) structValue(v reflect.Value, depth int, indent string) {
	fields := exportedFields(v)
	if len(fields) == 0 {
		in.out.write("{}")
		return
	}
	if depth >= in.opts.MaxDepth {
		in.out.write(MarkerDepthLimit)
		return
	}
	child := indent + "  "
	in.out.write("{\n")
	for i, f := range fields {
		if in.out.truncated {
			return
		}
		if i == in.opts.MaxArrayItems {
			in.out.write(child + TruncatedMarker(len(fields)-i) + "\n")
			break
		}
		in.out.write(child + strconv.Quote(f.name) + ": ")
		in.value(f.value, depth+1, child)
		in.out.write(",\n")
	}
	in.out.write(indent + "}")
}

// scalarText renders leaf values. Strings are quoted so control characters
// never break a line.
func scalarText(v reflect.Value) (string, bool) {
	switch v.Type() {
	case jsonNumberType:
		return v.String(), true
	case timeType:
		if v.CanInterface() {
			return strconv.Quote(v.Interface().(time.Time).UTC().Format(time.RFC3339Nano)), true
		}
	}
	switch v.Kind() {
	case reflect.String:
		return strconv.Quote(v.String()), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), true
	}
	return "", false
}

type mapKey struct {
	label string
	key   reflect.Value
}

func sortedKeys(v reflect.Value) []mapKey {
	keys := make([]mapKey, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k := iter.Key()
		lk := k
		for lk.Kind() == reflect.Interface && !lk.IsNil() {
			lk = lk.Elem()
		}
		label, ok := scalarText(lk)
		if lk.Kind() == reflect.String {
			label = lk.String()
		} else if !ok {
			label = "[" + lk.Kind().String() + "]"
		}
		keys = append(keys, mapKey{label: label, key: k})
	}
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].label < keys[j].label })
	return keys
}

type field struct {
	name  string
	value reflect.Value
}

func exportedFields(v reflect.Value) []field {
	t := v.Type()
	out := make([]field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag := sf.Tag.Get("json"); tag != "" {
			if tag == "-" {
				continue
			}
			if n, _, _ := strings.Cut(tag, ","); n != "" {
				name = n
			}
		}
		out = append(out, field{name: name, value: v.Field(i)})
	}
	return out
}
