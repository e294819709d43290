package geojson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the type tag of a property Value
type Kind uint8

const (
	Null Kind = iota
	String
	Number
	Bool
	// Raw holds a nested object or array as compact JSON text
	Raw
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Raw:
		return "raw"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a single property value. Numbers keep their JSON text, so no
// precision is lost between decoding and formatting.
type Value struct {
	kind Kind
	text string
	b    bool
}

func NullValue() Value {
	return Value{kind: Null}
}

func StringValue(s string) Value {
	return Value{kind: String, text: s}
}

func NumberValue(n json.Number) Value {
	return Value{kind: Number, text: n.String()}
}

func BoolValue(b bool) Value {
	return Value{kind: Bool, b: b}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == Null
}

// Number returns the JSON number text of a Number value
func (v Value) Number() (json.Number, bool) {
	if v.kind != Number {
		return "", false
	}
	return json.Number(v.text), true
}

// String renders the value the way it is written into a CSV field:
// integers without decimal artifacts, other numbers in their shortest
// round-trip form, booleans as true/false and null as the empty string.
func (v Value) String() string {
	switch v.kind {
	case String, Raw:
		return v.text
	case Number:
		return formatNumber(v.text)
	case Bool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty property value")
	}
	switch data[0] {
	case 'n':
		if !bytes.Equal(data, []byte("null")) {
			return fmt.Errorf("invalid property value %q", data)
		}
		*v = NullValue()
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*v = Value{kind: Raw, text: buf.String()}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = NumberValue(n)
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case String:
		return json.Marshal(v.text)
	case Number, Raw:
		return []byte(v.text), nil
	case Bool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

func formatNumber(text string) string {
	// integers of any size are kept as written
	if !strings.ContainsAny(text, ".eE") {
		return text
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// out of float64 range, keep what the document said
		return text
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
