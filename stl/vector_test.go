package stl

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanseungsung/addb/errs"
	"github.com/hanseungsung/addb/format"
	"github.com/hanseungsung/addb/object"
)

func newTextVector(values ...string) *Vector[string] {
	v := New[string](0)
	for _, s := range values {
		v.Add(s)
	}

	return v
}

func TestKindOf(t *testing.T) {
	require.Equal(t, format.KindPointer, KindOf[[]byte]())
	require.Equal(t, format.KindText, KindOf[string]())
	require.Equal(t, format.KindLong, KindOf[int64]())
	require.Equal(t, format.KindObject, KindOf[*object.Object]())
}

func TestNew(t *testing.T) {
	v := New[int64](0)
	require.Equal(t, format.KindLong, v.Kind())
	require.Zero(t, v.Len())
	require.Zero(t, v.Cap())

	v = New[int64](5)
	require.Equal(t, 5, v.Cap())
	require.Zero(t, v.Len())

	require.Panics(t, func() { New[string](-1) })
}

func TestCreate(t *testing.T) {
	for _, kind := range []format.Kind{format.KindPointer, format.KindText, format.KindLong, format.KindObject} {
		c := Create(kind, 3)
		require.Equal(t, kind, c.Kind())
		require.Equal(t, 3, c.Cap())
	}

	require.Panics(t, func() { Create(format.Kind(9), 0) })
}

func TestVector_AddGrowth(t *testing.T) {
	v := New[int64](0)
	const n = 3*InitVectorSize + 1

	for i := range n {
		v.Add(int64(i))
		require.Equal(t, i+1, v.Len())
		require.LessOrEqual(t, v.Len(), v.Cap())
	}

	// Growth is by a fixed increment, not a multiplier.
	require.Equal(t, 4*InitVectorSize, v.Cap())

	for i := range n {
		got, ok := v.Get(i)
		require.True(t, ok)
		require.Equal(t, int64(i), got)
	}
}

func TestVector_AddIntoPresized(t *testing.T) {
	v := New[string](2)
	v.Add("a")
	v.Add("b")
	require.Equal(t, 2, v.Cap())

	v.Add("c")
	require.Equal(t, 2+InitVectorSize, v.Cap())
	require.Equal(t, []string{"a", "b", "c"}, v.Values())
}

func TestVector_Bounds(t *testing.T) {
	v := newTextVector("a", "b", "c")

	_, ok := v.Get(3)
	require.False(t, ok)
	_, ok = v.Get(-1)
	require.False(t, ok)

	require.ErrorIs(t, v.Set(3, "x"), errs.ErrOutOfBounds)
	require.ErrorIs(t, v.Delete(3), errs.ErrOutOfBounds)
	require.ErrorIs(t, v.Delete(10), errs.ErrOutOfBounds)

	_, err := v.Unlink(3)
	require.ErrorIs(t, err, errs.ErrOutOfBounds)

	// Capacity beyond length is still out of bounds.
	require.Greater(t, v.Cap(), v.Len())
	require.ErrorIs(t, v.Set(v.Len(), "x"), errs.ErrOutOfBounds)

	require.Equal(t, []string{"a", "b", "c"}, v.Values())
}

func TestVector_Set(t *testing.T) {
	v := newTextVector("a", "b", "c")
	require.NoError(t, v.Set(1, "B"))
	require.Equal(t, []string{"a", "B", "c"}, v.Values())
}

func TestVector_SetDoesNotReleasePrevious(t *testing.T) {
	released := 0
	v := New[string](0, WithReleaser(func(string) { released++ }))
	v.Add("a")
	require.NoError(t, v.Set(0, "b"))
	require.Zero(t, released)
}

func TestVector_DeletePreservesOrder(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{name: "middle", index: 2, want: []string{"a", "b", "d", "e"}},
		{name: "first", index: 0, want: []string{"b", "c", "d", "e"}},
		{name: "last", index: 4, want: []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var released []string
			v := New[string](0, WithReleaser(func(s string) { released = append(released, s) }))
			for _, s := range []string{"a", "b", "c", "d", "e"} {
				v.Add(s)
			}

			require.NoError(t, v.Delete(tt.index))
			require.Equal(t, tt.want, v.Values())
			require.Equal(t, len(tt.want), v.Len())
			require.Equal(t, len(tt.want), v.Cap())
			require.Len(t, released, 1)
		})
	}
}

func TestVector_DeleteAll(t *testing.T) {
	v := newTextVector("a", "b")
	require.NoError(t, v.Delete(0))
	require.NoError(t, v.Delete(0))
	require.Zero(t, v.Len())

	v.Add("c")
	require.Equal(t, []string{"c"}, v.Values())
}

func TestVector_LengthTracksAddsAndDeletes(t *testing.T) {
	v := New[int64](0)
	for i := range 20 {
		v.Add(int64(i))
	}
	for range 7 {
		require.NoError(t, v.Delete(3))
	}
	require.Equal(t, 13, v.Len())

	for i := range 10 {
		v.Add(int64(100 + i))
	}
	require.Equal(t, 23, v.Len())

	got, ok := v.Get(2)
	require.True(t, ok)
	require.Equal(t, int64(2), got)
	got, ok = v.Get(3)
	require.True(t, ok)
	require.Equal(t, int64(10), got)
}

func TestVector_Unlink(t *testing.T) {
	released := 0
	v := New[string](0, WithReleaser(func(string) { released++ }))
	for _, s := range []string{"a", "b", "c"} {
		v.Add(s)
	}

	got, err := v.Unlink(1)
	require.NoError(t, err)
	require.Equal(t, "b", got)
	require.Equal(t, []string{"a", "c"}, v.Values())
	require.Zero(t, released)
}

func TestVector_Pop(t *testing.T) {
	v := newTextVector("a", "b")
	capBefore := v.Cap()

	got, err := v.Pop()
	require.NoError(t, err)
	require.Equal(t, "b", got)
	require.Equal(t, 1, v.Len())
	require.Equal(t, capBefore, v.Cap())

	got, err = v.Pop()
	require.NoError(t, err)
	require.Equal(t, "a", got)

	_, err = v.Pop()
	require.ErrorIs(t, err, errs.ErrEmptyContainer)
}

func TestVector_Free(t *testing.T) {
	released := 0
	v := New[string](0, WithReleaser(func(string) { released++ }))
	require.ErrorIs(t, v.Free(), errs.ErrNotAllocated)

	v.Add("a")
	v.Add("b")
	require.NoError(t, v.Free())
	require.Zero(t, released)
	require.Zero(t, v.Len())
	require.Zero(t, v.Cap())
	require.ErrorIs(t, v.Free(), errs.ErrNotAllocated)
}

func TestVector_FreeDeepReleasesEachElementOnce(t *testing.T) {
	released := map[string]int{}
	v := New[string](0, WithReleaser(func(s string) { released[s]++ }))
	for i := range 2*InitVectorSize + 3 {
		v.Add("v" + strconv.Itoa(i))
	}
	require.NoError(t, v.Delete(0))

	require.NoError(t, v.FreeDeep())
	require.Len(t, released, 2*InitVectorSize+3)
	for s, n := range released {
		require.Equal(t, 1, n, "element %s released %d times", s, n)
	}

	// A second deep free must not release anything again.
	require.ErrorIs(t, v.FreeDeep(), errs.ErrNotAllocated)
	for _, n := range released {
		require.Equal(t, 1, n)
	}
}

func TestVector_FreeDeepLongOwnsNothing(t *testing.T) {
	released := 0
	v := New[int64](0, WithReleaser(func(int64) { released++ }))
	v.Add(1)
	v.Add(2)
	require.NoError(t, v.FreeDeep())
	require.Zero(t, released)
}

func TestVector_FreeDeepPointer(t *testing.T) {
	released := 0
	v := New[[]byte](0, WithReleaser(func([]byte) { released++ }))
	v.Add([]byte{1, 2})
	v.Add([]byte{3})
	require.NoError(t, v.FreeDeep())
	require.Equal(t, 2, released)
}

func TestVector_ObjectReferences(t *testing.T) {
	freed := 0
	hook := object.WithFreeHook(func(*object.Object) { freed++ })
	a := object.New("a", hook)
	b := object.New("b", hook)
	c := object.New("c", hook)

	v := New[*object.Object](0)
	v.Add(a)
	v.Add(b)
	v.Add(c)
	require.Equal(t, 2, a.RefCount())

	// The creator drops its references; the vector keeps the objects alive.
	a.DecrRef()
	b.DecrRef()
	require.Zero(t, freed)

	require.NoError(t, v.Delete(0))
	require.True(t, a.Released())
	require.Equal(t, 1, freed)

	got, err := v.Unlink(0)
	require.NoError(t, err)
	require.Same(t, b, got)
	require.Equal(t, 1, b.RefCount())

	require.NoError(t, v.FreeDeep())
	require.Equal(t, 1, c.RefCount())
	require.False(t, c.Released())

	require.True(t, b.DecrRef())
	require.True(t, c.DecrRef())
	require.Equal(t, 3, freed)
}

func TestVector_RejectsNilObject(t *testing.T) {
	v := New[*object.Object](0)
	require.Panics(t, func() { v.Add(nil) })
	require.Zero(t, v.Len())
	require.Zero(t, v.Cap())

	o := object.New("Kim")
	v.Add(o)
	require.Panics(t, func() { _ = v.Set(0, nil) })

	got, ok := v.Get(0)
	require.True(t, ok)
	require.Same(t, o, got)
}

func TestVector_String(t *testing.T) {
	require.Equal(t, "2018 Kim Yonsei", newTextVector("2018", "Kim", "Yonsei").String())
	require.Equal(t, "", New[string](0).String())

	longs := New[int64](0)
	longs.Add(-4)
	longs.Add(10)
	require.Equal(t, "-4 10", longs.String())
}

func TestVector_AppendText(t *testing.T) {
	longs := New[int64](0)
	require.NoError(t, longs.AppendText("42"))
	require.ErrorIs(t, longs.AppendText("forty"), errs.ErrMalformedInput)
	require.Equal(t, []int64{42}, longs.Values())

	objs := New[*object.Object](0)
	require.NoError(t, objs.AppendText("Kim"))
	o, ok := objs.Get(0)
	require.True(t, ok)
	require.Equal(t, "Kim", o.String())
	require.Equal(t, 1, o.RefCount())

	text, ok := objs.TextAt(0)
	require.True(t, ok)
	require.Equal(t, "Kim", text)
	_, ok = objs.TextAt(1)
	require.False(t, ok)
}

func TestVector_All(t *testing.T) {
	v := newTextVector("a", "b", "c")
	var got []string
	for i, s := range v.All() {
		require.Equal(t, v.Values()[i], s)
		got = append(got, s)
		if i == 1 {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, got)
}

func TestVector_Digest(t *testing.T) {
	a := newTextVector("ab", "c")
	b := newTextVector("a", "bc")
	c := newTextVector("ab", "c")
	require.NotEqual(t, a.Digest(), b.Digest())
	require.Equal(t, a.Digest(), c.Digest())

	bytesVec := New[[]byte](0)
	bytesVec.Add([]byte("ab"))
	bytesVec.Add([]byte("c"))
	require.NotEqual(t, a.Digest(), bytesVec.Digest())
}

func TestVector_LogValue(t *testing.T) {
	v := newTextVector("x", "y")
	val := v.LogValue()
	attrs := val.Group()
	require.Len(t, attrs, 4)
	require.Equal(t, "Text", attrs[0].Value.String())
	require.Equal(t, int64(2), attrs[1].Value.Int64())
	require.Equal(t, "x y", attrs[3].Value.String())
}
