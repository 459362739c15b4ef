package preprocess

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, uint32(1), r.Resolve("a.glsl"))
	assert.Equal(t, uint32(2), r.Resolve("b.glsl"))
	assert.Equal(t, uint32(1), r.Resolve("a.glsl"))
	assert.Equal(t, 2, r.Len())

	name, ok := r.Name(2)
	require.True(t, ok)
	assert.Equal(t, "b.glsl", name)

	_, ok = r.Name(0)
	assert.False(t, ok)
	_, ok = r.Name(3)
	assert.False(t, ok)

	_, ok = r.Lookup("c.glsl")
	assert.False(t, ok)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_ZeroValue(t *testing.T) {
	var r Registry
	_, ok := r.Lookup("a")
	assert.False(t, ok)
	assert.Equal(t, uint32(1), r.Resolve("a"))
}

func TestRegistry_NamesIsACopy(t *testing.T) {
	r := NewRegistry()
	r.Resolve("a")
	names := r.Names()
	names[0] = "changed"
	assert.Equal(t, []string{"a"}, r.Names())
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, n := range []string{"x", "y", "z"} {
				r.Resolve(n)
			}
		}()
	}
	wg.Wait()

	seen := map[uint32]bool{}
	for _, n := range []string{"x", "y", "z"} {
		id, ok := r.Lookup(n)
		require.True(t, ok)
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Equal(t, 3, r.Len())
}
