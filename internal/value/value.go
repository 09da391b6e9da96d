// Package value models decoded configuration values as a closed sum type
// and converts them into environment variable strings.
//
// The conversion is asymmetric on purpose: a string becomes its bare
// content, every other kind keeps its JSON spelling.
//
//	"foo"          -> foo
//	42             -> 42
//	true           -> true
//	null           -> null
//	[1,"a"]        -> [1,"a"]
//	{"b":1,"a":2}  -> {"a":2,"b":1}
package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is one decoded JSON value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	text string // string content or canonical number literal
	arr  []Value
	obj  map[string]Value
}

// NullValue returns the null variant.
func NullValue() Value { return Value{kind: Null} }

// BoolValue returns a boolean variant.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// StringValue returns a string variant.
func StringValue(s string) Value { return Value{kind: String, text: s} }

// ArrayValue returns an array variant holding v in order.
func ArrayValue(v ...Value) Value { return Value{kind: Array, arr: v} }

// ObjectValue returns an object variant. A nil map is treated as empty.
func ObjectValue(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{kind: Object, obj: m}
}

// NumberValue builds a number from its JSON literal, canonicalising it.
func NumberValue(literal string) (Value, error) {
	text, err := canonicalNumber(literal)
	if err != nil {
		return Value{}, err
	}
	return Value{kind: Number, text: text}, nil
}

// Kind reports the variant.
func (v Value) Kind() Kind { return v.kind }

// FromAny converts a decoded document tree into a Value. Accepted leaves are
// the shapes produced by encoding/json with UseNumber and by yaml.v3.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		return NumberValue(t.String())
	case float64:
		return floatValue(t)
	case float32:
		return floatValue(float64(t))
	case int:
		return Value{kind: Number, text: strconv.Itoa(t)}, nil
	case int64:
		return Value{kind: Number, text: strconv.FormatInt(t, 10)}, nil
	case uint64:
		return Value{kind: Number, text: strconv.FormatUint(t, 10)}, nil
	case []any:
		arr := make([]Value, len(t))
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = v
		}
		return ArrayValue(arr...), nil
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			obj[k] = v
		}
		return ObjectValue(obj), nil
	default:
		return Value{}, fmt.Errorf("unsupported value of type %T", x)
	}
}

func floatValue(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("number %v has no JSON representation", f)
	}
	return Value{kind: Number, text: formatFloat(f)}, nil
}

// Coerce renders v as an environment variable value.
func Coerce(v Value) string {
	switch v.kind {
	case String:
		return v.text
	case Number:
		return v.text
	case Bool:
		return strconv.FormatBool(v.b)
	case Null:
		return "null"
	case Array, Object:
		var buf bytes.Buffer
		v.writeJSON(&buf)
		return buf.String()
	}
	panic(fmt.Sprintf("value: unhandled kind %v", v.kind))
}

// MarshalJSON emits the canonical compact form used by Coerce.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	v.writeJSON(&buf)
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) {
	switch v.kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(v.b))
	case Number:
		buf.WriteString(v.text)
	case String:
		writeString(buf, v.text)
	case Array:
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			e.writeJSON(buf)
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, k := range sortedKeys(v.obj) {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, k)
			buf.WriteByte(':')
			v.obj[k].writeJSON(buf)
		}
		buf.WriteByte('}')
	}
}

// writeString JSON-quotes s without escaping <, > and &.
func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encode of a string cannot fail.
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1) // trailing newline added by Encode
}

// canonicalNumber keeps integer literals verbatim and rewrites every other
// number with formatFloat: 1.50 -> 1.5, 1e3 -> 1000, 1e300 -> 1e+300.
func canonicalNumber(literal string) (string, error) {
	if literal == "" {
		return "", fmt.Errorf("empty number literal")
	}
	if !strings.ContainsAny(literal, ".eE") {
		if _, err := strconv.ParseFloat(literal, 64); err != nil && !isRangeErr(err) {
			return "", fmt.Errorf("invalid number literal %q", literal)
		}
		return literal, nil
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		if isRangeErr(err) {
			return literal, nil
		}
		return "", fmt.Errorf("invalid number literal %q", literal)
	}
	return formatFloat(f), nil
}

// formatFloat writes the shortest representation that round-trips. Plain
// decimals are used for magnitudes in [1e-6, 1e21); outside that range the
// exponent form keeps values like 1e300 short: 1e+300, 1.5e-7.
func formatFloat(f float64) string {
	if abs := math.Abs(f); abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + exp
}

// isRangeErr reports a literal outside float64 range, which is still a
// valid JSON number and is kept as written.
func isRangeErr(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange)
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
