package value_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ondatra-labs/toon/internal/value"
)

func TestObjectPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	obj := value.NewObject(
		value.Field{Key: "id", Value: value.Int(1)},
		value.Field{Key: "name", Value: value.String("Ada")},
		value.Field{Key: "role", Value: value.String("admin")},
	)

	require.Equal(t, []string{"id", "name", "role"}, obj.Keys())
}

func TestObjectSetOverwritesInPlace(t *testing.T) {
	t.Parallel()

	var obj value.Object
	obj.Set("a", value.Int(1))
	obj.Set("b", value.Int(2))
	obj.Set("a", value.Int(3))

	require.Equal(t, []string{"a", "b"}, obj.Keys())

	got, ok := obj.Get("a")
	require.True(t, ok)
	require.Equal(t, int64(3), got.Int())
}

func TestObjectGetMissing(t *testing.T) {
	t.Parallel()

	var obj value.Object
	_, ok := obj.Get("missing")
	require.False(t, ok)
}

func TestValueConstructorsReportKind(t *testing.T) {
	t.Parallel()

	examples := []struct {
		desc string
		v    value.Value
		kind value.Kind
	}{
		{desc: "null", v: value.Null(), kind: value.KindNull},
		{desc: "bool", v: value.Bool(true), kind: value.KindBool},
		{desc: "int", v: value.Int(42), kind: value.KindInt},
		{desc: "float", v: value.Float(3.14), kind: value.KindFloat},
		{desc: "string", v: value.String("hi"), kind: value.KindString},
		{desc: "array", v: value.Array(value.Int(1), value.Int(2)), kind: value.KindArray},
		{desc: "object", v: value.FromObject(value.NewObject()), kind: value.KindObject},
	}

	for _, e := range examples {
		e := e
		t.Run(e.desc, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, e.kind, e.v.Kind())
		})
	}
}

func TestArrayFromSliceDoesNotCopy(t *testing.T) {
	t.Parallel()

	items := []value.Value{value.Int(1), value.Int(2)}
	v := value.ArrayFromSlice(items)

	if diff := cmp.Diff(items, v.ArraySlice(), cmp.Comparer(func(a, b value.Value) bool {
		return a.Kind() == b.Kind() && a.Int() == b.Int()
	})); diff != "" {
		t.Fatalf("unexpected array contents (-want +got):\n%s", diff)
	}
	require.Same(t, &items[0], &v.ArraySlice()[0])
}
