// Package convert implements the structured-text conversion engine:
// JSON parsing into an order-preserving value model, serialization with
// configurable indentation, Markdown rendering and extraction, and the
// YAML bridge.
package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Member is a single key/value entry in an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object with insertion order preserved. Keys are
// unique: a duplicate key in the input replaces the value but keeps the
// first key's position.
type Object []Member

// Array is a JSON array. Elements are nil, bool, json.Number, string,
// Object or Array.
type Array []any

// Get returns the value for key and whether the key is present.
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Parse decodes text as a single JSON value. Numbers are kept as
// json.Number so they serialize back with their original precision.
func Parse(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return nil, describeParseError(err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, describeParseError(err)
		}
		return nil, errors.New("unexpected data after top-level JSON value")
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (any, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		// nil, bool, json.Number or string
		return tok, nil
	}
	switch delim {
	case '{':
		return parseObject(dec)
	case '[':
		return parseArray(dec)
	}
	return nil, fmt.Errorf("unexpected delimiter %q", delim.String())
}

func parseObject(dec *json.Decoder) (Object, error) {
	obj := Object{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		replaced := false
		for i := range obj {
			if obj[i].Key == key {
				obj[i].Value = val
				replaced = true
				break
			}
		}
		if !replaced {
			obj = append(obj, Member{Key: key, Value: val})
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) (Array, error) {
	arr := Array{}
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// describeParseError keeps the decoder's diagnostic and attaches the
// byte offset when one is available.
func describeParseError(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Errorf("%s (at offset %d)", syntaxErr.Error(), syntaxErr.Offset)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.New("unexpected end of JSON input")
	}
	return err
}

// Indent selects the indentation unit used by Serialize. The zero value
// produces compact output with no whitespace.
type Indent struct {
	unit string
}

// IndentSpaces indents with n spaces per nesting level. n <= 0 yields
// compact output.
func IndentSpaces(n int) Indent {
	if n <= 0 {
		return Indent{}
	}
	return Indent{unit: strings.Repeat(" ", n)}
}

// IndentTab indents with one tab per nesting level.
func IndentTab() Indent {
	return Indent{unit: "\t"}
}

// IndentNone produces compact output.
func IndentNone() Indent {
	return Indent{}
}

// Serialize renders a parsed value back to JSON text, preserving object
// key order.
func Serialize(v any, indent Indent) string {
	var b strings.Builder
	writeValue(&b, v, indent.unit, 0)
	return b.String()
}

func writeValue(b *strings.Builder, v any, unit string, depth int) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case json.Number:
		b.WriteString(t.String())
	case string:
		writeQuoted(b, t)
	case float64:
		b.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
	case int:
		b.WriteString(strconv.Itoa(t))
	case Object:
		writeObject(b, t, unit, depth)
	case Array:
		writeArray(b, t, unit, depth)
	case []any:
		writeArray(b, Array(t), unit, depth)
	default:
		// Unknown Go values pass through encoding/json.
		data, err := json.Marshal(t)
		if err != nil {
			b.WriteString("null")
			return
		}
		b.Write(data)
	}
}

func writeObject(b *strings.Builder, o Object, unit string, depth int) {
	if len(o) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		writeNewlineIndent(b, unit, depth+1)
		writeQuoted(b, m.Key)
		b.WriteByte(':')
		if unit != "" {
			b.WriteByte(' ')
		}
		writeValue(b, m.Value, unit, depth+1)
	}
	writeNewlineIndent(b, unit, depth)
	b.WriteByte('}')
}

func writeArray(b *strings.Builder, a Array, unit string, depth int) {
	if len(a) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteByte('[')
	for i, el := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		writeNewlineIndent(b, unit, depth+1)
		writeValue(b, el, unit, depth+1)
	}
	writeNewlineIndent(b, unit, depth)
	b.WriteByte(']')
}

func writeNewlineIndent(b *strings.Builder, unit string, depth int) {
	if unit == "" {
		return
	}
	b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		b.WriteString(unit)
	}
}

// writeQuoted emits a JSON string literal without HTML escaping, so
// output stays byte-comparable with what users typed in.
func writeQuoted(b *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	b.Write(bytes.TrimRight(buf.Bytes(), "\n"))
}
