package decode_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ondatra-labs/toon/internal/config"
	"github.com/ondatra-labs/toon/internal/decode"
	"github.com/ondatra-labs/toon/internal/errs"
	"github.com/ondatra-labs/toon/internal/value"
)

func TestDecodeScalarRoot(t *testing.T) {
	t.Parallel()

	got, err := decode.Decode("42", config.DefaultDecoder())
	require.NoError(t, err)
	require.Equal(t, value.KindInt, got.Kind())
	require.Equal(t, int64(42), got.Int())
}

func TestDecodeFlatObject(t *testing.T) {
	t.Parallel()

	got, err := decode.Decode("id: 1\nname: Alice", config.DefaultDecoder())
	require.NoError(t, err)
	require.Equal(t, value.KindObject, got.Kind())

	idVal, ok := got.Obj().Get("id")
	require.True(t, ok)
	require.Equal(t, int64(1), idVal.Int())

	nameVal, ok := got.Obj().Get("name")
	require.True(t, ok)
	require.Equal(t, "Alice", nameVal.Str())
}

func TestDecodeNestedObject(t *testing.T) {
	t.Parallel()

	got, err := decode.Decode("user:\n  id: 1\n  name: Alice", config.DefaultDecoder())
	require.NoError(t, err)

	userVal, ok := got.Obj().Get("user")
	require.True(t, ok)
	require.Equal(t, value.KindObject, userVal.Kind())

	idVal, ok := userVal.Obj().Get("id")
	require.True(t, ok)
	require.Equal(t, int64(1), idVal.Int())
}

func TestDecodePrimitiveArrayInline(t *testing.T) {
	t.Parallel()

	got, err := decode.Decode("tags[3]: a,b,c", config.DefaultDecoder())
	require.NoError(t, err)

	tagsVal, ok := got.Obj().Get("tags")
	require.True(t, ok)
	require.Equal(t, value.KindArray, tagsVal.Kind())
	require.Len(t, tagsVal.ArraySlice(), 3)
	require.Equal(t, "a", tagsVal.ArraySlice()[0].Str())
}

func TestDecodeTabularArray(t *testing.T) {
	t.Parallel()

	doc := "users[2]{id,name}:\n  1,Alice\n  2,Bob"
	got, err := decode.Decode(doc, config.DefaultDecoder())
	require.NoError(t, err)

	usersVal, ok := got.Obj().Get("users")
	require.True(t, ok)
	items := usersVal.ArraySlice()
	require.Len(t, items, 2)

	first := items[0].Obj()
	idVal, _ := first.Get("id")
	require.Equal(t, int64(1), idVal.Int())
	nameVal, _ := first.Get("name")
	require.Equal(t, "Alice", nameVal.Str())
}

func TestDecodeRootArray(t *testing.T) {
	t.Parallel()

	doc := "[2]{id,name}:\n  1,Alice\n  2,Bob"
	got, err := decode.Decode(doc, config.DefaultDecoder())
	require.NoError(t, err)
	require.Equal(t, value.KindArray, got.Kind())
	require.Len(t, got.ArraySlice(), 2)
}

func TestDecodeHeterogeneousArray(t *testing.T) {
	t.Parallel()

	doc := "items[2]:\n  - 1\n  - name: extra\n    active: true"
	got, err := decode.Decode(doc, config.DefaultDecoder())
	require.NoError(t, err)

	itemsVal, ok := got.Obj().Get("items")
	require.True(t, ok)
	items := itemsVal.ArraySlice()
	require.Len(t, items, 2)
	require.Equal(t, int64(1), items[0].Int())

	second := items[1].Obj()
	nameVal, ok := second.Get("name")
	require.True(t, ok)
	require.Equal(t, "extra", nameVal.Str())
	activeVal, ok := second.Get("active")
	require.True(t, ok)
	require.True(t, activeVal.Bool())
}

func TestDecodeDottedPathExpansion(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultDecoder()
	cfg.ExpandPaths = config.PathExpansionSafe

	got, err := decode.Decode("a.b.c: 1", cfg)
	require.NoError(t, err)

	aVal, ok := got.Obj().Get("a")
	require.True(t, ok)
	bVal, ok := aVal.Obj().Get("b")
	require.True(t, ok)
	cVal, ok := bVal.Obj().Get("c")
	require.True(t, ok)
	require.Equal(t, int64(1), cVal.Int())
}

func TestDecodePathExpansionMergesSharedPrefix(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultDecoder()
	cfg.ExpandPaths = config.PathExpansionSafe

	got, err := decode.Decode("a.b: 1\na.c: 2", cfg)
	require.NoError(t, err)

	aVal, ok := got.Obj().Get("a")
	require.True(t, ok)
	require.Equal(t, []string{"b", "c"}, aVal.Obj().Keys())
}

func TestDecodePathExpansionConflictErrors(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultDecoder()
	cfg.ExpandPaths = config.PathExpansionSafe

	_, err := decode.Decode("a: 1\na.b: 2", cfg)
	require.Error(t, err)
	var decErr *errs.DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, errs.PathConflict, decErr.Kind)
}

func TestDecodeStrictRejectsCountMismatch(t *testing.T) {
	t.Parallel()

	_, err := decode.Decode("tags[3]: a,b", config.DefaultDecoder())
	require.Error(t, err)
	var decErr *errs.DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, errs.CountMismatch, decErr.Kind)
}

func TestDecodeNonStrictToleratesCountMismatch(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultDecoder()
	cfg.Strict = false

	got, err := decode.Decode("tags[3]: a,b", cfg)
	require.NoError(t, err)

	tagsVal, _ := got.Obj().Get("tags")
	require.Len(t, tagsVal.ArraySlice(), 2)
}

func TestDecodeStrictRejectsDuplicateKey(t *testing.T) {
	t.Parallel()

	_, err := decode.Decode("a: 1\na: 2", config.DefaultDecoder())
	require.Error(t, err)
	var decErr *errs.DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, errs.DuplicateKey, decErr.Kind)
}

func TestDecodeNonStrictDuplicateKeyTakesLastValue(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultDecoder()
	cfg.Strict = false

	got, err := decode.Decode("a: 1\na: 2", cfg)
	require.NoError(t, err)

	aVal, _ := got.Obj().Get("a")
	require.Equal(t, int64(2), aVal.Int())
}

func TestDecodeRejectsTabIndentation(t *testing.T) {
	t.Parallel()

	_, err := decode.Decode("user:\n\tid: 1", config.DefaultDecoder())
	require.Error(t, err)
	var decErr *errs.DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, errs.IndentError, decErr.Kind)
}

func TestDecodeIndentNeutrality(t *testing.T) {
	t.Parallel()

	examples := []struct {
		desc string
		doc  string
	}{
		{desc: "2 spaces", doc: "user:\n  id: 1"},
		{desc: "3 spaces", doc: "user:\n   id: 1"},
		{desc: "4 spaces", doc: "user:\n    id: 1"},
		{desc: "8 spaces", doc: "user:\n        id: 1"},
	}

	for _, e := range examples {
		e := e
		t.Run(e.desc, func(t *testing.T) {
			t.Parallel()
			got, err := decode.Decode(e.doc, config.DefaultDecoder())
			require.NoError(t, err)
			userVal, ok := got.Obj().Get("user")
			require.True(t, ok)
			idVal, ok := userVal.Obj().Get("id")
			require.True(t, ok)
			require.Equal(t, int64(1), idVal.Int())
		})
	}
}

func TestDecodeDelimiterNeutrality(t *testing.T) {
	t.Parallel()

	examples := []struct {
		desc string
		doc  string
	}{
		{desc: "comma", doc: "tags[2]: a,b"},
		{desc: "tab", doc: "tags[2\t]: a\tb"},
		{desc: "pipe", doc: "tags[2|]: a|b"},
	}

	for _, e := range examples {
		e := e
		t.Run(e.desc, func(t *testing.T) {
			t.Parallel()
			got, err := decode.Decode(e.doc, config.DefaultDecoder())
			require.NoError(t, err)
			tagsVal, ok := got.Obj().Get("tags")
			require.True(t, ok)
			require.Len(t, tagsVal.ArraySlice(), 2)
		})
	}
}

func TestDecodeQuotedStringWithEmbeddedDelimiter(t *testing.T) {
	t.Parallel()

	got, err := decode.Decode(`name: "Smith, John"`, config.DefaultDecoder())
	require.NoError(t, err)
	nameVal, ok := got.Obj().Get("name")
	require.True(t, ok)
	require.Equal(t, "Smith, John", nameVal.Str())
}

func TestDecodeCommentsAndBlankLinesAreDropped(t *testing.T) {
	t.Parallel()

	doc := "# a comment\na: 1\n\n  \nb: 2\n"
	got, err := decode.Decode(doc, config.DefaultDecoder())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got.Obj().Keys())
}

func TestDecodeEmptyObjectListItem(t *testing.T) {
	t.Parallel()

	doc := "items[1]:\n  - {}"
	got, err := decode.Decode(doc, config.DefaultDecoder())
	require.NoError(t, err)

	itemsVal, _ := got.Obj().Get("items")
	require.True(t, itemsVal.ArraySlice()[0].Obj().IsEmpty())
}

func TestDecodeUnterminatedStringErrors(t *testing.T) {
	t.Parallel()

	_, err := decode.Decode(`name: "unterminated`, config.DefaultDecoder())
	require.Error(t, err)
	var decErr *errs.DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, errs.UnterminatedString, decErr.Kind)
}
