// Package encode implements the TOON encoder: the structural walk over a
// value.Value tree, tabular-array detection, dotted-path key folding, and
// the line-buffering emission strategy described in Sections 4.2 and 4.4
// of the format specification.
package encode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ondatra-labs/toon/internal/config"
	"github.com/ondatra-labs/toon/internal/keypath"
	"github.com/ondatra-labs/toon/internal/scalar"
	"github.com/ondatra-labs/toon/internal/value"
)

// Encode renders v as a TOON document under cfg.
func Encode(v value.Value, cfg config.Encoder) (string, error) {
	s := &state{cfg: cfg}
	if err := s.root(v); err != nil {
		return "", err
	}
	return strings.Join(s.lines, "\n"), nil
}

type state struct {
	cfg   config.Encoder
	lines []string
}

func (s *state) delim() byte { return s.cfg.Delimiter.Byte() }

func (s *state) emit(line string) {
	s.lines = append(s.lines, line)
}

func (s *state) indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(" ", depth*s.cfg.IndentSize)
}

func (s *state) root(v value.Value) error {
	switch v.Kind() {
	case value.KindObject:
		return s.object(v.Obj(), 0)
	case value.KindArray:
		return s.array("", v.ArraySlice(), 0)
	default:
		token, err := scalar.Format(v, s.delim())
		if err != nil {
			return err
		}
		s.emit(token)
		return nil
	}
}

// object emits each field of obj at the given depth, applying key folding
// when enabled and dropping fields whose value is an empty Object (Section
// 3, invariant 1).
func (s *state) object(obj value.Object, depth int) error {
	if depth == 0 && obj.IsEmpty() {
		return nil
	}
	indent := s.indent(depth)
	for _, field := range obj.Fields() {
		if isEmptyObject(field.Value) {
			continue
		}

		key, val := field.Key, field.Value
		folded := false
		if s.cfg.KeyFolding == config.KeyFoldingSafe {
			if segments, terminal, ok := foldChain(key, val, s.delim()); ok {
				key, val, folded = keypath.Join(segments), terminal, true
			}
		}

		if isEmptyObject(val) {
			continue
		}

		if err := s.field(indent, key, val, depth, folded); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) field(indent, key string, val value.Value, depth int, folded bool) error {
	switch val.Kind() {
	case value.KindNull, value.KindBool, value.KindInt, value.KindFloat, value.KindString:
		keyLit, err := s.encodeKey(key, folded)
		if err != nil {
			return err
		}
		token, err := scalar.Format(val, s.delim())
		if err != nil {
			return err
		}
		s.emit(indent + keyLit + ": " + token)
		return nil
	case value.KindObject:
		keyLit, err := s.encodeKey(key, folded)
		if err != nil {
			return err
		}
		s.emit(indent + keyLit + ":")
		return s.object(val.Obj(), depth+1)
	case value.KindArray:
		return s.array(key, val.ArraySlice(), depth)
	default:
		return fmt.Errorf("toon: unsupported field %q of kind %s", key, val.Kind())
	}
}

// encodeKey renders a field key. Folded keys were assembled from
// independently-verified key-safe segments, so they're emitted verbatim;
// ordinary keys are quoted when they fail the key-safe predicate.
func (s *state) encodeKey(key string, folded bool) (string, error) {
	if folded {
		return key, nil
	}
	if keypath.SegmentSafe(key, s.delim()) {
		return key, nil
	}
	return scalar.Quote(key), nil
}

func (s *state) array(key string, items []value.Value, depth int) error {
	indent := s.indent(depth)
	keyLit := ""
	if key != "" {
		lit, err := s.encodeKey(key, false)
		if err != nil {
			return err
		}
		keyLit = lit
	}

	if isPrimitiveArray(items) {
		line := indent + s.header(keyLit, len(items), nil)
		if len(items) > 0 {
			tokens := make([]string, len(items))
			for i, item := range items {
				token, err := scalar.Format(item, s.delim())
				if err != nil {
					return err
				}
				tokens[i] = token
			}
			line += " " + strings.Join(tokens, string([]byte{s.delim()}))
		}
		s.emit(line)
		return nil
	}

	if fields, ok := s.detectTabular(items); ok {
		s.emit(indent + s.header(keyLit, len(items), fields))
		rowIndent := s.indent(depth + 1)
		for _, item := range items {
			row, err := s.tabularRow(item.Obj(), fields)
			if err != nil {
				return err
			}
			s.emit(rowIndent + row)
		}
		return nil
	}

	s.emit(indent + s.header(keyLit, len(items), nil))
	for _, item := range items {
		if err := s.listItem(item, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) tabularRow(obj value.Object, fields []string) (string, error) {
	tokens := make([]string, len(fields))
	for i, f := range fields {
		v, _ := obj.Get(f)
		token, err := scalar.Format(v, s.delim())
		if err != nil {
			return "", err
		}
		tokens[i] = token
	}
	return strings.Join(tokens, string([]byte{s.delim()})), nil
}

// listItem emits one element of a heterogeneous array, prefixed with "- ".
func (s *state) listItem(item value.Value, depth int) error {
	indent := s.indent(depth)
	switch item.Kind() {
	case value.KindNull, value.KindBool, value.KindInt, value.KindFloat, value.KindString:
		token, err := scalar.Format(item, s.delim())
		if err != nil {
			return err
		}
		s.emit(indent + "- " + token)
		return nil
	case value.KindObject:
		return s.objectListItem(item.Obj(), depth)
	case value.KindArray:
		return s.arrayListItem("", item.ArraySlice(), depth)
	default:
		return fmt.Errorf("toon: unsupported list item of kind %s", item.Kind())
	}
}

// objectListItem collapses the object's first field onto the "- " line,
// then emits any remaining fields as a normal nested object.
func (s *state) objectListItem(obj value.Object, depth int) error {
	indent := s.indent(depth)
	if obj.IsEmpty() {
		s.emit(indent + "- {}")
		return nil
	}
	first := obj.Fields()[0]
	rest := value.NewObject(obj.Fields()[1:]...)

	switch first.Value.Kind() {
	case value.KindNull, value.KindBool, value.KindInt, value.KindFloat, value.KindString:
		keyLit, err := s.encodeKey(first.Key, false)
		if err != nil {
			return err
		}
		token, err := scalar.Format(first.Value, s.delim())
		if err != nil {
			return err
		}
		s.emit(indent + "- " + keyLit + ": " + token)
		if !rest.IsEmpty() {
			return s.object(rest, depth+1)
		}
		return nil
	case value.KindArray:
		keyLit, err := s.encodeKey(first.Key, false)
		if err != nil {
			return err
		}
		if err := s.arrayListItem(keyLit, first.Value.ArraySlice(), depth); err != nil {
			return err
		}
		if !rest.IsEmpty() {
			return s.object(rest, depth+1)
		}
		return nil
	default: // nested object: no scalar/array to combine onto the dash line
		s.emit(indent + "-")
		return s.object(obj, depth+1)
	}
}

// arrayListItem emits an array that is itself an element of a heterogeneous
// array (or the value of the first field of one), prefixed with "- ".
func (s *state) arrayListItem(keyLit string, items []value.Value, depth int) error {
	indent := s.indent(depth)

	if fields, ok := s.detectTabular(items); ok {
		s.emit(indent + "- " + s.header(keyLit, len(items), fields))
		rowIndent := s.indent(depth + 1)
		for _, item := range items {
			row, err := s.tabularRow(item.Obj(), fields)
			if err != nil {
				return err
			}
			s.emit(rowIndent + row)
		}
		return nil
	}

	if isPrimitiveArray(items) {
		line := indent + "- " + s.header(keyLit, len(items), nil)
		if len(items) > 0 {
			tokens := make([]string, len(items))
			for i, item := range items {
				token, err := scalar.Format(item, s.delim())
				if err != nil {
					return err
				}
				tokens[i] = token
			}
			line += " " + strings.Join(tokens, string([]byte{s.delim()}))
		}
		s.emit(line)
		return nil
	}

	s.emit(indent + "- " + s.header(keyLit, len(items), nil))
	for _, item := range items {
		if err := s.listItem(item, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// header renders "key[N]:" or "key[N]{f1,f2}:", omitting the delimiter mark
// from the brackets when it's the default comma (Section 6).
func (s *state) header(keyLit string, length int, fields []string) string {
	var b strings.Builder
	b.WriteString(keyLit)
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(length))
	if s.cfg.Delimiter != config.Comma {
		b.WriteByte(s.delim())
	}
	b.WriteByte(']')
	if len(fields) > 0 {
		b.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(s.delim())
			}
			b.WriteString(f)
		}
		b.WriteByte('}')
	}
	b.WriteByte(':')
	return b.String()
}

// detectTabular implements Section 4.4: an array of objects sharing the
// same ordered, scalar-valued, key-safe field sequence can be rendered as a
// tabular block.
func (s *state) detectTabular(items []value.Value) ([]string, bool) {
	return detectTabular(items, s.delim())
}

func detectTabular(items []value.Value, delimiter byte) ([]string, bool) {
	if len(items) == 0 {
		return nil, false
	}
	firstItem := items[0]
	if firstItem.Kind() != value.KindObject || firstItem.Obj().IsEmpty() {
		return nil, false
	}
	firstFields := firstItem.Obj().Fields()
	keys := make([]string, len(firstFields))
	for i, f := range firstFields {
		if !f.Value.IsScalar() {
			return nil, false
		}
		if !keypath.SegmentSafe(f.Key, delimiter) {
			return nil, false
		}
		keys[i] = f.Key
	}
	for _, item := range items[1:] {
		if item.Kind() != value.KindObject {
			return nil, false
		}
		fields := item.Obj().Fields()
		if len(fields) != len(keys) {
			return nil, false
		}
		for i, f := range fields {
			if f.Key != keys[i] || !f.Value.IsScalar() {
				return nil, false
			}
		}
	}
	return keys, true
}

func isPrimitiveArray(items []value.Value) bool {
	for _, item := range items {
		if !item.IsScalar() {
			return false
		}
	}
	return true
}

func isEmptyObject(v value.Value) bool {
	return v.Kind() == value.KindObject && v.Obj().IsEmpty()
}

// foldChain walks a chain of single-field objects starting from val,
// collecting key as the first path segment. It stops at the first value
// that is a scalar (a successful fold all the way to a leaf), or at a
// branching node: an object with zero or more-than-one field, or an array.
// Folding is only reported as applicable when at least two segments were
// collected and every segment is independently key-safe.
func foldChain(key string, val value.Value, delimiter byte) (segments []string, terminal value.Value, ok bool) {
	segments = []string{key}
	current := val
	for current.Kind() == value.KindObject && current.Obj().Len() == 1 {
		f := current.Obj().Fields()[0]
		segments = append(segments, f.Key)
		current = f.Value
	}
	if len(segments) < 2 {
		return nil, value.Value{}, false
	}
	for _, seg := range segments {
		if !keypath.SegmentSafe(seg, delimiter) {
			return nil, value.Value{}, false
		}
	}
	return segments, current, true
}
