// Package decode implements the TOON decoder: line-model preprocessing,
// indentation-unit inference, and the scoped recursive-descent parse of
// objects, arrays, tabular blocks and heterogeneous list items described in
// Section 4.3 of the format specification.
package decode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ondatra-labs/toon/internal/config"
	"github.com/ondatra-labs/toon/internal/errs"
	"github.com/ondatra-labs/toon/internal/keypath"
	"github.com/ondatra-labs/toon/internal/scalar"
	"github.com/ondatra-labs/toon/internal/value"
)

// classifyScalarErr maps a scalar-parsing failure to its Section 7 error
// kind; ErrUnterminatedString and ErrInvalidEscape are distinguished by
// sentinel, anything else is an UnexpectedToken.
func classifyScalarErr(err error, lineNo int) error {
	switch {
	case errors.Is(err, scalar.ErrUnterminatedString):
		return errs.New(errs.UnterminatedString, lineNo, "%v", err)
	case errors.Is(err, scalar.ErrInvalidEscape):
		return errs.New(errs.InvalidEscape, lineNo, "%v", err)
	default:
		return errs.New(errs.UnexpectedToken, lineNo, "%v", err)
	}
}

// parseToken parses a scalar token, classifying any failure by line.
func parseToken(token string, lineNo int) (value.Value, error) {
	v, err := scalar.ParseToken(token)
	if err != nil {
		return value.Value{}, classifyScalarErr(err, lineNo)
	}
	return v, nil
}

// Decode parses a TOON document under cfg.
func Decode(text string, cfg config.Decoder) (value.Value, error) {
	p, err := newParser(text, cfg)
	if err != nil {
		return value.Value{}, err
	}
	return p.parseDocument()
}

// line is one structurally significant line of the document: blank lines
// and whole-line comments never reach this stage.
type line struct {
	number  int
	indent  int
	content string
}

type parser struct {
	lines      []line
	pos        int
	cfg        config.Decoder
	indentUnit int
}

func newParser(text string, cfg config.Decoder) (*parser, error) {
	raw := splitLines(text)
	lines := make([]line, 0, len(raw))
	for i, l := range raw {
		number := i + 1
		spaces := 0
		for spaces < len(l) && l[spaces] == ' ' {
			spaces++
		}
		if spaces < len(l) && l[spaces] == '\t' {
			return nil, errs.New(errs.IndentError, number, "tabs are not allowed in indentation")
		}
		content := l[spaces:]
		if strings.TrimSpace(content) == "" {
			continue
		}
		if content[0] == '#' {
			continue
		}
		lines = append(lines, line{number: number, indent: spaces, content: content})
	}

	unit := 0
	for _, l := range lines {
		if l.indent > 0 && (unit == 0 || l.indent < unit) {
			unit = l.indent
		}
	}
	if unit == 0 {
		unit = 1
	}
	for _, l := range lines {
		if l.indent%unit != 0 {
			return nil, errs.New(errs.IndentError, l.number, "indentation is not a multiple of the document's indent unit")
		}
	}

	structured := make([]line, len(lines))
	for i, l := range lines {
		structured[i] = line{number: l.number, indent: l.indent / unit, content: l.content}
	}

	return &parser{lines: structured, cfg: cfg, indentUnit: unit}, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (p *parser) current() line { return p.lines[p.pos] }

func (p *parser) parseDocument() (value.Value, error) {
	if len(p.lines) == 0 {
		return value.FromObject(value.Object{}), nil
	}
	first := p.current()
	if first.indent != 0 {
		return value.Value{}, errs.New(errs.IndentError, first.number, "document must start at indent level 0")
	}

	header, ok, err := p.tryParseHeader(first.content, first.number)
	if err != nil {
		return value.Value{}, err
	}
	if ok && header.Key == "" {
		p.pos++
		return p.parseArray(header, 0)
	}
	if len(p.lines) == 1 && !ok && indexOutsideQuotes(first.content, ':') <= 0 {
		p.pos++
		return parseToken(strings.TrimSpace(first.content), first.number)
	}

	var obj value.Object
	if err := p.parseObjectFields(&obj, 0); err != nil {
		return value.Value{}, err
	}
	return value.FromObject(obj), nil
}

// parseObjectFields consumes fields at the given depth into obj, stopping
// at the first line whose indent is less than depth.
func (p *parser) parseObjectFields(obj *value.Object, depth int) error {
	for p.pos < len(p.lines) {
		l := p.current()
		if l.indent < depth {
			return nil
		}
		if l.indent > depth {
			return errs.New(errs.IndentError, l.number, "unexpected indentation")
		}
		if isDashLine(l.content) {
			return errs.New(errs.UnexpectedToken, l.number, "list item outside an array")
		}

		header, ok, err := p.tryParseHeader(l.content, l.number)
		if err != nil {
			return err
		}
		if ok {
			if header.Key == "" {
				return errs.New(errs.HeaderError, l.number, "array header inside an object must have a key")
			}
			p.pos++
			val, err := p.parseArray(header, depth)
			if err != nil {
				return err
			}
			if err := p.setField(obj, header.Key, header.KeyQuoted, val, l.number); err != nil {
				return err
			}
			continue
		}

		colon := indexOutsideQuotes(l.content, ':')
		if colon <= 0 {
			if indexOutsideQuotes(l.content, '[') >= 0 {
				return errs.New(errs.HeaderError, l.number, "array header is missing %q", ":")
			}
			return errs.New(errs.UnexpectedToken, l.number, "expected %q", "key: value")
		}
		key, quoted, err := decodeKeyToken(strings.TrimSpace(l.content[:colon]))
		if err != nil {
			return classifyScalarErr(err, l.number)
		}
		valTok := strings.TrimSpace(l.content[colon+1:])
		p.pos++
		if valTok == "" {
			var nested value.Object
			if err := p.parseObjectFields(&nested, depth+1); err != nil {
				return err
			}
			if err := p.setField(obj, key, quoted, value.FromObject(nested), l.number); err != nil {
				return err
			}
			continue
		}
		val, err := parseToken(valTok, l.number)
		if err != nil {
			return err
		}
		if err := p.setField(obj, key, quoted, val, l.number); err != nil {
			return err
		}
	}
	return nil
}

// setField installs key/val into obj, applying strict duplicate-key
// detection and, when enabled, dotted-path expansion (Section 4.3).
func (p *parser) setField(obj *value.Object, key string, quoted bool, val value.Value, lineNo int) error {
	if p.cfg.ExpandPaths == config.PathExpansionSafe && !quoted && strings.Contains(key, ".") {
		return expandInto(obj, keypath.Split(key), val, p.cfg.Strict, lineNo)
	}
	if p.cfg.Strict && obj.Has(key) {
		return errs.New(errs.DuplicateKey, lineNo, "duplicate key %q", key)
	}
	obj.Set(key, val)
	return nil
}

func expandInto(obj *value.Object, segments []string, val value.Value, strict bool, lineNo int) error {
	if len(segments) == 1 {
		if strict && obj.Has(segments[0]) {
			return errs.New(errs.DuplicateKey, lineNo, "duplicate key %q", segments[0])
		}
		obj.Set(segments[0], val)
		return nil
	}
	head := segments[0]
	var child value.Object
	if existing, ok := obj.Get(head); ok {
		if existing.Kind() != value.KindObject {
			return errs.New(errs.PathConflict, lineNo, "path %q conflicts with an existing scalar field", head)
		}
		child = existing.Obj()
	}
	if err := expandInto(&child, segments[1:], val, strict, lineNo); err != nil {
		return err
	}
	obj.Set(head, value.FromObject(child))
	return nil
}

// parseArray implements the three array shapes of Section 4.3: inline or
// blocked scalar lists, tabular blocks, and heterogeneous "- " lists.
func (p *parser) parseArray(header parsedHeader, depth int) (value.Value, error) {
	itemDepth := depth + 1

	if len(header.Fields) > 0 {
		return p.parseTabular(header, itemDepth)
	}
	if header.Inline != "" {
		tokens, err := splitFields(header.Inline, header.Delimiter, header.Line)
		if err != nil {
			return value.Value{}, err
		}
		items := make([]value.Value, len(tokens))
		for i, t := range tokens {
			v, err := parseToken(t, header.Line)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		if p.cfg.Strict && len(items) != header.Length {
			return value.Value{}, errs.New(errs.CountMismatch, header.Line, "declared length %d does not match %d inline values", header.Length, len(items))
		}
		return value.ArrayFromSlice(items), nil
	}
	return p.parseBlockList(header, itemDepth)
}

func (p *parser) parseTabular(header parsedHeader, itemDepth int) (value.Value, error) {
	rows := make([]value.Value, 0, header.Length)
	for p.pos < len(p.lines) {
		l := p.current()
		if l.indent < itemDepth {
			break
		}
		if l.indent != itemDepth {
			return value.Value{}, errs.New(errs.IndentError, l.number, "unexpected indentation in tabular row")
		}
		p.pos++
		tokens, err := splitFields(l.content, header.Delimiter, l.number)
		if err != nil {
			return value.Value{}, err
		}
		if p.cfg.Strict && len(tokens) != len(header.Fields) {
			return value.Value{}, errs.New(errs.FieldCountMismatch, l.number, "row has %d fields, header declares %d", len(tokens), len(header.Fields))
		}
		var row value.Object
		for i, f := range header.Fields {
			var v value.Value
			if i < len(tokens) {
				v, err = parseToken(tokens[i], l.number)
				if err != nil {
					return value.Value{}, err
				}
			} else {
				v = value.Null()
			}
			row.Set(f, v)
		}
		rows = append(rows, value.FromObject(row))
	}
	if p.cfg.Strict && len(rows) != header.Length {
		return value.Value{}, errs.New(errs.CountMismatch, header.Line, "declared length %d does not match %d rows", header.Length, len(rows))
	}
	return value.ArrayFromSlice(rows), nil
}

func (p *parser) parseBlockList(header parsedHeader, itemDepth int) (value.Value, error) {
	items := []value.Value{}
	heterogeneous := false
	if p.pos < len(p.lines) && p.current().indent >= itemDepth {
		if p.current().indent != itemDepth {
			l := p.current()
			return value.Value{}, errs.New(errs.IndentError, l.number, "unexpected indentation in array")
		}
		heterogeneous = isDashLine(p.current().content)
	}

	for p.pos < len(p.lines) {
		l := p.current()
		if l.indent < itemDepth {
			break
		}
		if l.indent != itemDepth {
			return value.Value{}, errs.New(errs.IndentError, l.number, "unexpected indentation in array")
		}
		if isDashLine(l.content) != heterogeneous {
			break
		}
		p.pos++
		if heterogeneous {
			val, err := p.parseDashItem(dashRest(l.content), itemDepth)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, val)
			continue
		}
		val, err := parseToken(strings.TrimSpace(l.content), l.number)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, val)
	}

	if p.cfg.Strict && len(items) != header.Length {
		return value.Value{}, errs.New(errs.CountMismatch, header.Line, "declared length %d does not match %d items", header.Length, len(items))
	}
	return value.ArrayFromSlice(items), nil
}

// parseDashItem parses the remainder of a "- " line at the given depth,
// mirroring the encoder's collapsing of an object's first field onto the
// dash line (Section 4.2).
func (p *parser) parseDashItem(rest string, depth int) (value.Value, error) {
	switch rest {
	case "{}":
		return value.FromObject(value.Object{}), nil
	case "":
		var obj value.Object
		if err := p.parseObjectFields(&obj, depth+1); err != nil {
			return value.Value{}, err
		}
		return value.FromObject(obj), nil
	}

	lineNo := p.lines[p.pos-1].number
	header, ok, err := p.tryParseHeader(rest, lineNo)
	if err != nil {
		return value.Value{}, err
	}
	if ok {
		if header.Key == "" {
			return p.parseArray(header, depth)
		}
		var obj value.Object
		val, err := p.parseArray(header, depth)
		if err != nil {
			return value.Value{}, err
		}
		if err := p.setField(&obj, header.Key, header.KeyQuoted, val, lineNo); err != nil {
			return value.Value{}, err
		}
		if err := p.parseObjectFields(&obj, depth+1); err != nil {
			return value.Value{}, err
		}
		return value.FromObject(obj), nil
	}

	if colon := indexOutsideQuotes(rest, ':'); colon > 0 {
		key, quoted, err := decodeKeyToken(strings.TrimSpace(rest[:colon]))
		if err != nil {
			return value.Value{}, classifyScalarErr(err, lineNo)
		}
		valTok := strings.TrimSpace(rest[colon+1:])
		var obj value.Object
		if valTok == "" {
			var nested value.Object
			if err := p.parseObjectFields(&nested, depth+1); err != nil {
				return value.Value{}, err
			}
			if err := p.setField(&obj, key, quoted, value.FromObject(nested), lineNo); err != nil {
				return value.Value{}, err
			}
		} else {
			val, err := parseToken(valTok, lineNo)
			if err != nil {
				return value.Value{}, err
			}
			if err := p.setField(&obj, key, quoted, val, lineNo); err != nil {
				return value.Value{}, err
			}
		}
		if err := p.parseObjectFields(&obj, depth+1); err != nil {
			return value.Value{}, err
		}
		return value.FromObject(obj), nil
	}

	return parseToken(rest, lineNo)
}

func isDashLine(content string) bool {
	return content == "-" || strings.HasPrefix(content, "- ")
}

func dashRest(content string) string {
	if content == "-" {
		return ""
	}
	return strings.TrimSpace(content[2:])
}

// parsedHeader is the decoded form of a "key[N{delim}]{fields}:" line.
type parsedHeader struct {
	Key       string
	KeyQuoted bool
	Length    int
	Delimiter byte
	Fields    []string
	Inline    string
	Line      int
}

// tryParseHeader recognizes an array header. It returns ok == false (with a
// nil error) when content has no "[" in the portion preceding the first
// unquoted colon, meaning the line is an ordinary key/value pair instead.
func (p *parser) tryParseHeader(content string, lineNo int) (parsedHeader, bool, error) {
	colon := indexOutsideQuotes(content, ':')
	if colon == -1 {
		return parsedHeader{}, false, nil
	}
	left := strings.TrimSpace(content[:colon])
	right := strings.TrimSpace(content[colon+1:])
	if left == "" {
		return parsedHeader{}, false, nil
	}
	bracketStart := indexOutsideQuotes(left, '[')
	if bracketStart == -1 {
		return parsedHeader{}, false, nil
	}
	keyPart := strings.TrimSpace(left[:bracketStart])
	afterBracket := left[bracketStart+1:]
	bracketEnd := indexOutsideQuotes(afterBracket, ']')
	if bracketEnd == -1 {
		return parsedHeader{}, false, errs.New(errs.HeaderError, lineNo, "missing closing bracket in array header")
	}
	lengthSeg := afterBracket[:bracketEnd]
	fieldSeg := strings.TrimSpace(afterBracket[bracketEnd+1:])

	var key string
	var quoted bool
	if keyPart != "" {
		k, q, err := decodeKeyToken(keyPart)
		if err != nil {
			return parsedHeader{}, false, errs.New(errs.HeaderError, lineNo, "%v", err)
		}
		key, quoted = k, q
	}

	length, delim, err := parseLengthSegment(lengthSeg)
	if err != nil {
		return parsedHeader{}, false, errs.New(errs.HeaderError, lineNo, "%v", err)
	}

	var fields []string
	if fieldSeg != "" {
		if !strings.HasPrefix(fieldSeg, "{") || !strings.HasSuffix(fieldSeg, "}") {
			return parsedHeader{}, false, errs.New(errs.HeaderError, lineNo, "malformed field list %q", fieldSeg)
		}
		inner := fieldSeg[1 : len(fieldSeg)-1]
		if inner != "" {
			toks, err := splitFields(inner, delim, lineNo)
			if err != nil {
				return parsedHeader{}, false, errs.New(errs.HeaderError, lineNo, "%v", err)
			}
			fields = toks
		}
	}

	return parsedHeader{
		Key: key, KeyQuoted: quoted, Length: length, Delimiter: delim,
		Fields: fields, Inline: right, Line: lineNo,
	}, true, nil
}

// parseLengthSegment parses the "N[delim_char]" segment inside an array
// header's brackets.
func parseLengthSegment(seg string) (int, byte, error) {
	i := 0
	for i < len(seg) && seg[i] >= '0' && seg[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, config.Comma.Byte(), fmt.Errorf("missing array length in %q", seg)
	}
	n, err := strconv.Atoi(seg[:i])
	if err != nil {
		return 0, config.Comma.Byte(), err
	}
	delim := config.Comma.Byte()
	if i < len(seg) {
		if i != len(seg)-1 {
			return 0, config.Comma.Byte(), fmt.Errorf("invalid delimiter marker %q", seg[i:])
		}
		switch seg[i] {
		case '\t':
			delim = config.Tab.Byte()
		case '|':
			delim = config.Pipe.Byte()
		default:
			return 0, config.Comma.Byte(), fmt.Errorf("unknown delimiter marker %q", seg[i:])
		}
	}
	return n, delim, nil
}

// decodeKeyToken reads one key token: a quoted string, unescaped, or a bare
// token taken verbatim.
func decodeKeyToken(token string) (string, bool, error) {
	if token == "" {
		return "", false, fmt.Errorf("empty key")
	}
	if token[0] == '"' {
		s, err := scalar.Unquote(token)
		return s, true, err
	}
	return token, false, nil
}

// splitFields splits s on delimiter, honoring quoted spans, trimming
// surrounding whitespace from each unquoted field (Section 4.3).
func splitFields(s string, delimiter byte, lineNo int) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var out []string
	start := 0
	i := 0
	for i < len(s) {
		switch s[i] {
		case '"':
			end, err := scalar.ScanQuotedSpan(s, i)
			if err != nil {
				return nil, errs.New(errs.UnterminatedString, lineNo, "%v", err)
			}
			i = end
		case delimiter:
			out = append(out, strings.TrimSpace(s[start:i]))
			i++
			start = i
		default:
			i++
		}
	}
	out = append(out, strings.TrimSpace(s[start:]))
	return out, nil
}

// indexOutsideQuotes returns the index of the first occurrence of target in
// s that lies outside any quoted span, or -1 if none exists.
func indexOutsideQuotes(s string, target byte) int {
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '"' {
			end, err := scalar.ScanQuotedSpan(s, i)
			if err != nil {
				return -1
			}
			i = end
			continue
		}
		if c == target {
			return i
		}
		i++
	}
	return -1
}
