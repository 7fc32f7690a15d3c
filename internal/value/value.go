// Package value implements the tagged union that carries typed data between
// nodes, validators, and bindings.
package value

import "fmt"

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNone Kind = iota
	KindText
	KindBool
	KindNumber
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a closed tagged union: None | Text | Bool | Number | List.
// The zero Value is None. Conversions between variants are explicit; there is
// no implicit coercion.
type Value struct {
	kind Kind
	text string
	b    bool
	num  int64
	list []string
}

// None is the empty Value.
var None = Value{kind: KindNone}

// Text constructs a Text(string) Value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Bool constructs a Bool(bool) Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number constructs a Number(i64) Value.
func Number(n int64) Value { return Value{kind: KindNumber, num: n} }

// List constructs a List(sequence of string) Value. The slice is copied.
func List(items []string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Kind reports which variant this Value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNone reports whether this is the None variant.
func (v Value) IsNone() bool { return v.kind == KindNone }

// AsText returns the Text payload and whether v is a Text.
func (v Value) AsText() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// AsBool returns the Bool payload and whether v is a Bool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsNumber returns the Number payload and whether v is a Number.
func (v Value) AsNumber() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsList returns the List payload and whether v is a List. The returned slice
// is owned by the caller.
func (v Value) AsList() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp, true
}

// Equal reports structural, variant-wise equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNone:
		return true
	case KindText:
		return v.text == o.text
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num == o.num
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Hash returns a stable key usable as a map key for deduplication. Values of
// different kinds never collide.
func (v Value) Hash() string {
	switch v.kind {
	case KindNone:
		return "none:"
	case KindText:
		return "text:" + v.text
	case KindBool:
		return fmt.Sprintf("bool:%v", v.b)
	case KindNumber:
		return fmt.Sprintf("num:%d", v.num)
	case KindList:
		return fmt.Sprintf("list:%q", v.list)
	default:
		return "invalid:"
	}
}

// String renders a Value for debugging/log output; it is not a serialization
// format.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindText:
		return fmt.Sprintf("Text(%q)", v.text)
	case KindBool:
		return fmt.Sprintf("Bool(%v)", v.b)
	case KindNumber:
		return fmt.Sprintf("Number(%d)", v.num)
	case KindList:
		return fmt.Sprintf("List(%v)", v.list)
	default:
		return "Invalid"
	}
}
