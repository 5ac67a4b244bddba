package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ondatra-labs/toon"
)

// decodeJSON reads a single JSON document from data and converts it to a
// Value. It streams tokens directly rather than decoding into
// map[string]interface{} first, since Go's JSON decoding into a map loses
// both key order (Object is insertion-ordered) and the integer/float
// distinction (everything becomes float64).
func decodeJSON(data []byte) (toon.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return toon.Value{}, fmt.Errorf("toon: invalid JSON: %w", err)
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (toon.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return toon.Value{}, err
	}
	return jsonValueFromToken(dec, tok)
}

func jsonValueFromToken(dec *json.Decoder, tok json.Token) (toon.Value, error) {
	switch t := tok.(type) {
	case nil:
		return toon.Null(), nil
	case bool:
		return toon.Bool(t), nil
	case string:
		return toon.String(t), nil
	case json.Number:
		return numberFromJSON(t)
	case json.Delim:
		switch t {
		case '[':
			return decodeJSONArray(dec)
		case '{':
			return decodeJSONObject(dec)
		default:
			return toon.Value{}, fmt.Errorf("unexpected JSON delimiter %q", t)
		}
	default:
		return toon.Value{}, fmt.Errorf("unsupported JSON token %T", tok)
	}
}

func decodeJSONArray(dec *json.Decoder) (toon.Value, error) {
	var items []toon.Value
	for dec.More() {
		item, err := decodeJSONValue(dec)
		if err != nil {
			return toon.Value{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return toon.Value{}, err
	}
	return toon.ArrayFromSlice(items), nil
}

func decodeJSONObject(dec *json.Decoder) (toon.Value, error) {
	obj := toon.NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return toon.Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return toon.Value{}, fmt.Errorf("JSON object key is not a string: %v", keyTok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return toon.Value{}, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return toon.Value{}, err
	}
	return toon.FromObject(obj), nil
}

func numberFromJSON(n json.Number) (toon.Value, error) {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return toon.Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return toon.Value{}, fmt.Errorf("invalid JSON number %q: %w", n.String(), err)
	}
	return toon.Float(f), nil
}

// encodeJSON renders v as indented JSON text, preserving Object field order
// by writing object members directly instead of round-tripping through a
// Go map.
func encodeJSON(v toon.Value) ([]byte, error) {
	var b bytes.Buffer
	if err := writeJSONValue(&b, v, ""); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func writeJSONValue(b *bytes.Buffer, v toon.Value, indent string) error {
	switch v.Kind() {
	case toon.KindNull:
		b.WriteString("null")
	case toon.KindBool:
		if v.Bool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case toon.KindInt:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case toon.KindFloat:
		b.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case toon.KindString:
		return writeJSONString(b, v.Str())
	case toon.KindArray:
		return writeJSONArray(b, v.ArraySlice(), indent)
	case toon.KindObject:
		return writeJSONObject(b, v.Obj(), indent)
	default:
		return fmt.Errorf("toon: unsupported value kind %s", v.Kind())
	}
	return nil
}

func writeJSONString(b *bytes.Buffer, s string) error {
	encoded, err := json.Marshal(s)
	if err != nil {
		return err
	}
	b.Write(encoded)
	return nil
}

func writeJSONArray(b *bytes.Buffer, items []toon.Value, indent string) error {
	if len(items) == 0 {
		b.WriteString("[]")
		return nil
	}
	childIndent := indent + "  "
	b.WriteString("[\n")
	for i, item := range items {
		b.WriteString(childIndent)
		if err := writeJSONValue(b, item, childIndent); err != nil {
			return err
		}
		if i < len(items)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(indent + "]")
	return nil
}

func writeJSONObject(b *bytes.Buffer, obj toon.Object, indent string) error {
	fields := obj.Fields()
	if len(fields) == 0 {
		b.WriteString("{}")
		return nil
	}
	childIndent := indent + "  "
	b.WriteString("{\n")
	for i, f := range fields {
		b.WriteString(childIndent)
		if err := writeJSONString(b, f.Key); err != nil {
			return err
		}
		b.WriteString(": ")
		if err := writeJSONValue(b, f.Value, childIndent); err != nil {
			return err
		}
		if i < len(fields)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(indent + "}")
	return nil
}
