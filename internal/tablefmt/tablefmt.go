// Package tablefmt holds the fixed-width cell helpers behind the compact-v1
// table format. Widths are terminal columns, measured with go-runewidth.
package tablefmt

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Format is the table format identifier carried in frame metadata.
const Format = "compact-v1"

// Ellipsis is the single character inserted when a cell is shortened.
const Ellipsis = "…"

// NotAvailable stands in for absent values.
const NotAvailable = "n/a"

// cond measures with ambiguous-width runes (the ellipsis among them) as one
// column regardless of the user's locale, so output is stable across hosts.
var cond = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// Width returns the display width of s in terminal columns.
func Width(s string) int {
	return cond.StringWidth(s)
}

// Mode selects where a too-long cell is shortened.
type Mode string

const (
	ModeMiddle Mode = "middle"
	ModeEnd    Mode = "end"
)

// EllipsizeMiddle keeps a prefix and a suffix of s around one ellipsis so the
// result is exactly width columns wide. Strings that fit are returned as is.
func EllipsizeMiddle(s string, width int) string {
	if cond.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return Ellipsis
	}
	avail := width - cond.StringWidth(Ellipsis)
	headW := (avail + 1) / 2
	tailW := avail - headW
	return takeHead(s, headW) + Ellipsis + takeTail(s, tailW)
}

// EllipsizeEnd keeps a prefix of s and appends an ellipsis to fit width.
func EllipsizeEnd(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if cond.StringWidth(s) <= width {
		return s
	}
	return takeHead(s, width-cond.StringWidth(Ellipsis)) + Ellipsis
}

// FitCell shortens s to width using mode. Unknown modes shorten at the end.
func FitCell(s string, width int, mode Mode) string {
	if mode == ModeMiddle {
		return EllipsizeMiddle(s, width)
	}
	return EllipsizeEnd(s, width)
}

// PadCell fits s to width and pads it with spaces to exactly width columns.
func PadCell(s string, width int, mode Mode) string {
	if width <= 0 {
		return ""
	}
	return cond.FillRight(FitCell(s, width, mode), width)
}

func takeHead(s string, width int) string {
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := cond.RuneWidth(r)
		if used+w > width {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String()
}

func takeTail(s string, width int) string {
	runes := []rune(s)
	used := 0
	start := len(runes)
	for i := len(runes) - 1; i >= 0; i-- {
		w := cond.RuneWidth(runes[i])
		if used+w > width {
			break
		}
		used += w
		start = i
	}
	return string(runes[start:])
}

// SanitizePrintable renders value as one printable line. nil becomes "n/a";
// newlines and tabs become spaces, other control characters are dropped, and
// whitespace runs collapse to one space.
func SanitizePrintable(value any) string {
	if isNil(value) {
		return NotAvailable
	}
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprint(v)
	}

	var b strings.Builder
	pendingSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case unicode.IsControl(r):
			continue
		default:
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

var truthyWords = map[string]struct{}{
	"true": {}, "yes": {}, "y": {}, "on": {}, "1": {},
	"active": {}, "enabled": {}, "online": {}, "connected": {},
}

// FormatBoolTag returns "yes" for true and recognized truthy strings, "no" otherwise.
func FormatBoolTag(value any) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "yes"
		}
	case *bool:
		if v != nil && *v {
			return "yes"
		}
	case string:
		if _, ok := truthyWords[strings.ToLower(strings.TrimSpace(v))]; ok {
			return "yes"
		}
	}
	return "no"
}

// ShortID keeps the first head and last tail characters of a long id.
func ShortID(id string, head, tail int) string {
	if head < 0 {
		head = 0
	}
	if tail < 0 {
		tail = 0
	}
	runes := []rune(id)
	if len(runes) <= head+tail+1 {
		return id
	}
	return string(runes[:head]) + Ellipsis + string(runes[len(runes)-tail:])
}
