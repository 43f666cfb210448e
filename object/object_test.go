package object

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObject_RefCounting(t *testing.T) {
	freed := 0
	o := New("Kim", WithFreeHook(func(*Object) { freed++ }))
	require.Equal(t, 1, o.RefCount())
	require.Equal(t, "Kim", o.String())

	o.IncrRef().IncrRef()
	require.Equal(t, 3, o.RefCount())

	require.False(t, o.DecrRef())
	require.False(t, o.DecrRef())
	require.False(t, o.Released())
	require.Zero(t, freed)

	require.True(t, o.DecrRef())
	require.True(t, o.Released())
	require.Equal(t, 1, freed)
}

func TestObject_DecrRefAfterRelease(t *testing.T) {
	o := New("x")
	require.True(t, o.DecrRef())
	require.Panics(t, func() { o.DecrRef() })
}

func TestObject_IncrRefAfterRelease(t *testing.T) {
	o := New("x")
	o.DecrRef()
	require.Panics(t, func() { o.IncrRef() })
	require.True(t, o.Released())
	require.Zero(t, o.RefCount())

	require.Panics(t, func() { o.IncrRef() })
	require.Zero(t, o.RefCount())
}

func TestObject_ConcurrentIncrRef(t *testing.T) {
	o := New("shared")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				o.IncrRef()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 801, o.RefCount())
}
