// Package jsonvalue decodes JSON documents into a value tree that keeps object
// key order and the literal text of every number.
//
// Decoded values are one of:
//
//	*Object  JSON object, keys in document order
//	[]any    JSON array
//	string   JSON string
//	Number   JSON number, literal text as written
//	bool     JSON true / false
//	nil      JSON null
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
)

// DefaultMaxDepth bounds container nesting while decoding.
const DefaultMaxDepth = 1000

// ErrTooDeep is returned when a document nests deeper than the decoder allows.
var ErrTooDeep = errors.New("jsonvalue: nesting too deep")

// Number is the literal text of a JSON number.
type Number string

// String returns the literal text.
func (n Number) String() string { return string(n) }

// Object is a JSON object that remembers the order its keys appeared in.
type Object struct {
	keys   []string
	fields map[string]any
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{fields: make(map[string]any)}
}

// Set adds or replaces a key. A replaced key keeps its original position.
func (o *Object) Set(key string, v any) {
	if _, exists := o.fields[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// Decode parses exactly one JSON document.
func Decode(data []byte) (any, error) {
	return DecodeWithDepth(data, DefaultMaxDepth)
}

// DecodeWithDepth parses exactly one JSON document, failing with ErrTooDeep
// when containers nest more than maxDepth levels. maxDepth <= 0 disables the cap.
func DecodeWithDepth(data []byte, maxDepth int) (any, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	d := &decoder{dec: dec, maxDepth: maxDepth}
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("jsonvalue: empty document")
		}
		return nil, fmt.Errorf("jsonvalue: %w", err)
	}
	v, err := d.value(tok, 0)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("jsonvalue: %w", err)
		}
		return nil, fmt.Errorf("jsonvalue: unexpected data after top-level value")
	}
	return v, nil
}

type decoder struct {
	dec      *j.Decoder
	maxDepth int
}

func (d *decoder) value(tok j.Token, depth int) (any, error) {
	switch v := tok.(type) {
	case j.Delim:
		if d.maxDepth > 0 && depth >= d.maxDepth {
			return nil, ErrTooDeep
		}
		switch v {
		case '{':
			return d.object(depth + 1)
		case '[':
			return d.array(depth + 1)
		default:
			return nil, fmt.Errorf("jsonvalue: unexpected delimiter %q", rune(v))
		}
	case j.Number:
		return Number(v), nil
	case float64:
		return Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case string:
		return v, nil
	case bool:
		return v, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("jsonvalue: unexpected token %T", tok)
	}
}

func (d *decoder) object(depth int) (*Object, error) {
	obj := NewObject()
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, fmt.Errorf("jsonvalue: %w", err)
		}
		if delim, ok := tok.(j.Delim); ok && delim == '}' {
			return obj, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("jsonvalue: expected object key, got %T", tok)
		}

		tok, err = d.dec.Token()
		if err != nil {
			return nil, fmt.Errorf("jsonvalue: %w", err)
		}
		v, err := d.value(tok, depth)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
}

func (d *decoder) array(depth int) ([]any, error) {
	arr := make([]any, 0)
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, fmt.Errorf("jsonvalue: %w", err)
		}
		if delim, ok := tok.(j.Delim); ok && delim == ']' {
			return arr, nil
		}
		v, err := d.value(tok, depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// Plain converts a decoded value into the map[string]any / []any form most
// JSON tooling expects. Numbers become encoding/json-compatible json.Number.
func Plain(v any) any {
	switch val := v.(type) {
	case *Object:
		m := make(map[string]any, val.Len())
		for _, k := range val.keys {
			m[k] = Plain(val.fields[k])
		}
		return m
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Plain(item)
		}
		return out
	case Number:
		return json.Number(val)
	default:
		return val
	}
}

// Marshal renders a decoded value back to compact JSON, preserving key order
// and number literals.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case *Object:
		buf.WriteByte('{')
		for i, k := range val.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := j.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := writeValue(buf, val.fields[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Number:
		buf.WriteString(string(val))
	default:
		b, err := j.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}
