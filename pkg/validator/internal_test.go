package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUCache(t *testing.T) {
	t.Parallel()

	t.Run("evicts least recently used", func(t *testing.T) {
		c := newLRUCache[string, int](2)
		c.put("a", 1)
		c.put("b", 2)

		v, ok := c.get("a")
		require.True(t, ok)
		assert.Equal(t, 1, v)

		c.put("c", 3)
		_, ok = c.get("b")
		assert.False(t, ok, "b was least recently used")
		_, ok = c.get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, c.len())
	})

	t.Run("updates existing keys", func(t *testing.T) {
		c := newLRUCache[string, int](2)
		c.put("a", 1)
		c.put("a", 10)
		v, _ := c.get("a")
		assert.Equal(t, 10, v)
		assert.Equal(t, 1, c.len())
	})

	t.Run("zero capacity disables caching", func(t *testing.T) {
		c := newLRUCache[string, int](0)
		assert.Nil(t, c)
		c.put("a", 1)
		_, ok := c.get("a")
		assert.False(t, ok)
		assert.Equal(t, 0, c.len())
	})
}

func TestLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("happy path", func(t *testing.T) {
		l := newLifecycle()
		assert.Equal(t, StateIdle, l.state())
		require.NoError(t, l.fire(eventStart))
		assert.False(t, l.terminal())
		require.NoError(t, l.fire(eventComplete))
		assert.Equal(t, StateCompleted, l.state())
		assert.True(t, l.terminal())
	})

	t.Run("terminal states accept nothing", func(t *testing.T) {
		l := newLifecycle()
		require.NoError(t, l.fire(eventFail))
		assert.Equal(t, StateFailed, l.state())
		assert.ErrorIs(t, l.fire(eventStart), ErrNoTransition)
		assert.ErrorIs(t, l.fire(eventComplete), ErrNoTransition)
	})

	t.Run("cannot complete before starting", func(t *testing.T) {
		l := newLifecycle()
		assert.ErrorIs(t, l.fire(eventComplete), ErrNoTransition)
		assert.Equal(t, StateIdle, l.state())
	})
}

func TestPatternSource(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		`/^abc$/`:   `^abc$`,
		`/^abc$/i`:  `(?i)^abc$`,
		`/^a$/gims`: `(?ims)^a$`,
		`/^a$/ii`:   `(?i)^a$`,
		`/^a$/x`:    `/^a$/x`,
		`^abc$`:     `^abc$`,
		`/`:         `/`,
		`/a/b/`:     `a/b`,
	}
	for in, want := range tests {
		assert.Equal(t, want, patternSource(in), in)
	}
}

func TestRegistryCompileCaches(t *testing.T) {
	t.Parallel()

	r := NewRegistry(WithPatternCacheSize(1))
	first, err := r.compile(`^a+$`)
	require.NoError(t, err)
	second, err := r.compile(`^a+$`)
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = r.compile(`(`)
	assert.Error(t, err)
	assert.Equal(t, 1, r.patterns.len())
}

func TestStandaloneContextCompilesPatterns(t *testing.T) {
	t.Parallel()

	c := &Context{Field: "code", Name: "code", Index: -1, Value: String("AB12")}
	first, err := c.compile(`^[A-Z]+\d+$`)
	require.NoError(t, err)
	second, err := c.compile(`^[A-Z]+\d+$`)
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.True(t, regexRule(c, []string{`/^[A-Z]+\d+$/`}).Valid)
	assert.False(t, regexRule(c, []string{`/^\d+$/`}).Valid)
	assert.False(t, regexRule(c, []string{`/(/`}).Valid)
}
