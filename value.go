// value.go — the runtime value model.
//
// Every expression and built-in operates on Value, a tagged union over the
// five Corvo kinds. Lists and Tables are reference types (mutated in place
// by append/remove/set); Numbers and Strings are immutable payloads.
package corvo

import (
	"strconv"
	"strings"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VNone   ValueTag = iota // absence; the result of statements
	VNumber                 // float64
	VString                 // string
	VList                   // *ListObject
	VTable                  // *TableObject
)

func (t ValueTag) String() string {
	switch t {
	case VNone:
		return "none"
	case VNumber:
		return "number"
	case VString:
		return "string"
	case VList:
		return "list"
	case VTable:
		return "table"
	default:
		return "unknown"
	}
}

// Value is the universal runtime carrier. Tag determines which Go type Data
// holds (see ValueTag).
type Value struct {
	Tag  ValueTag
	Data any
}

// None is the singleton absent value.
var None = Value{Tag: VNone}

// ListObject is the mutable backing store of a List value. Indices are
// 0-based here; the 1-based user-facing convention is applied at the
// operator boundary.
type ListObject struct {
	Elems []Value
}

// TableObject is the mutable backing store of a Table value: an ordered,
// rectangular grid of string cells loaded from CSV.
type TableObject struct {
	Rows [][]string
}

// Cols reports the table's column count (0 for an empty table).
func (t *TableObject) Cols() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// Constructors.
func Num(f float64) Value           { return Value{Tag: VNumber, Data: f} }
func Str(s string) Value            { return Value{Tag: VString, Data: s} }
func ListOf(xs ...Value) Value      { return Value{Tag: VList, Data: &ListObject{Elems: xs}} }
func TableOf(rows [][]string) Value { return Value{Tag: VTable, Data: &TableObject{Rows: rows}} }

// AsNumber returns the float64 payload; valid only when Tag==VNumber.
func (v Value) AsNumber() float64 { return v.Data.(float64) }

// AsString returns the string payload; valid only when Tag==VString.
func (v Value) AsString() string { return v.Data.(string) }

// AsList returns the list payload; valid only when Tag==VList.
func (v Value) AsList() *ListObject { return v.Data.(*ListObject) }

// AsTable returns the table payload; valid only when Tag==VTable.
func (v Value) AsTable() *TableObject { return v.Data.(*TableObject) }

// DisplayText renders the canonical text of a value as used by display,
// string concatenation, length of, and file writes. Tables have no direct
// rendering (ok=false); their contents are reached through column and cell
// access instead.
func (v Value) DisplayText() (string, bool) {
	switch v.Tag {
	case VNone:
		return "none", true
	case VNumber:
		return FormatNumber(v.AsNumber()), true
	case VString:
		return v.AsString(), true
	case VList:
		parts := make([]string, 0, len(v.AsList().Elems))
		for _, el := range v.AsList().Elems {
			txt, ok := el.DisplayText()
			if !ok {
				return "", false
			}
			parts = append(parts, txt)
		}
		return "[" + strings.Join(parts, ", ") + "]", true
	default:
		return "", false
	}
}

// FormatNumber renders a Number in canonical decimal text: integral values
// without a decimal point ("3"), fractional values with the shortest exact
// decimal form ("2.5").
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Equal reports value equality as used by comparisons and "remove ... from".
// Numbers compare by value, Strings by content, Lists element-wise. A Table
// or a mixed-kind pairing is never equal under this relation; comparability
// is enforced separately by the evaluator.
func Equal(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VNumber:
		return a.AsNumber() == b.AsNumber()
	case VString:
		return a.AsString() == b.AsString()
	case VList:
		la, lb := a.AsList(), b.AsList()
		if len(la.Elems) != len(lb.Elems) {
			return false
		}
		for i := range la.Elems {
			if !Equal(la.Elems[i], lb.Elems[i]) {
				return false
			}
		}
		return true
	case VNone:
		return true
	default:
		return false
	}
}
