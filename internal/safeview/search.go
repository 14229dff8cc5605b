package safeview

import (
	"reflect"
	"strings"
)

// DefaultSearchChars caps the text SearchText builds.
const DefaultSearchChars = 64 * 1024

// SearchText flattens value into one lowercase string for substring filters.
// Keys and leaf values are joined by single spaces; cycles contribute
// "[circular]". Containers below DefaultMaxDepth are skipped.
func SearchText(value any) string {
	return SearchTextWith(value, Options{MaxOutputChars: DefaultSearchChars})
}

// SearchTextWith is SearchText with explicit depth and size limits.
func SearchTextWith(value any, opts Options) string {
	opts = opts.withDefaults()
	s := &searcher{
		opts:     opts,
		out:      budget{limit: opts.MaxOutputChars},
		visiting: make(map[visitKey]struct{}),
	}
	s.value(reflect.ValueOf(value), 0)
	return strings.TrimSpace(s.out.b.String())
}

type searcher struct {
	opts     Options
	out      budget
	visiting map[visitKey]struct{}
}

func (s *searcher) token(t string) {
	if t == "" {
		return
	}
	if s.out.used > 0 {
		s.out.write(" ")
	}
	s.out.write(strings.ToLower(t))
}

func (s *searcher) value(v reflect.Value, depth int) {
	if s.out.truncated {
		return
	}
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return
	}
	if v.Kind() == reflect.String {
		s.token(v.String())
		return
	}
	if t, ok := scalarText(v); ok {
		s.token(t)
		return
	}

	key, isRef := referenceKey(v)
	if isRef {
		if _, seen := s.visiting[key]; seen {
			s.token("[circular]")
			return
		}
		s.visiting[key] = struct{}{}
		defer delete(s.visiting, key)
	}

	switch v.Kind() {
	case reflect.Pointer:
		if !v.IsNil() {
			s.value(v.Elem(), depth)
		}
	case reflect.Map:
		if depth >= s.opts.MaxDepth {
			return
		}
		for _, k := range sortedKeys(v) {
			s.token(k.label)
			s.value(v.MapIndex(k.key), depth+1)
		}
	case reflect.Slice, reflect.Array:
		if depth >= s.opts.MaxDepth {
			return
		}
		for i := 0; i < v.Len() && !s.out.truncated; i++ {
			s.value(v.Index(i), depth+1)
		}
	case reflect.Struct:
		if depth >= s.opts.MaxDepth {
			return
		}
		for _, f := range exportedFields(v) {
			s.token(f.name)
			s.value(f.value, depth+1)
		}
	}
}
