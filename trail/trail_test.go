package trail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevIntRoundTrip(t *testing.T) {
	env := NewEnv()
	r := env.NewRevInt(5)

	env.PushWorld()
	r.Set(10)
	assert.EqualValues(t, 10, r.Get())
	env.PopWorld()
	assert.EqualValues(t, 5, r.Get())
}

func TestRevIntNestedWorlds(t *testing.T) {
	env := NewEnv()
	r := env.NewRevInt(0)

	env.PushWorld() // world 1
	r.Set(1)
	env.PushWorld() // world 2
	r.Set(2)
	r.Set(3) // second write in same world must not double-log
	assert.EqualValues(t, 3, r.Get())
	env.PopWorld() // back to world 1
	assert.EqualValues(t, 1, r.Get())
	env.PopWorld() // back to world 0
	assert.EqualValues(t, 0, r.Get())
}

func TestRevBitSetRoundTrip(t *testing.T) {
	env := NewEnv()
	b := env.NewRevBitSet(8)
	b.Set(3)
	b.Set(5)

	env.PushWorld()
	b.Clear(3)
	assert.False(t, b.Test(3))
	env.PopWorld()
	assert.True(t, b.Test(3))
	assert.True(t, b.Test(5))
}

func TestRevSparseSetRemoveAddInverse(t *testing.T) {
	env := NewEnv()
	s := env.NewRevSparseSet(5)

	env.PushWorld()
	s.Remove(2)
	assert.False(t, s.Contains(2))
	assert.Equal(t, 4, s.Size())
	env.PopWorld()
	assert.True(t, s.Contains(2))
	assert.Equal(t, 5, s.Size())

	// every original element must still be present, regardless of order.
	seen := make(map[int]bool)
	s.Each(func(v int) { seen[v] = true })
	for v := 0; v < 5; v++ {
		assert.Truef(t, seen[v], "element %d missing after round trip", v)
	}
}

func TestPopWorldAtRootPanics(t *testing.T) {
	env := NewEnv()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic popping world 0")
		}
	}()
	env.PopWorld()
}

func TestDeepNestingRoundTrip(t *testing.T) {
	env := NewEnv()
	r := env.NewRevInt(0)
	const depth = 50
	for d := 1; d <= depth; d++ {
		env.PushWorld()
		r.Set(int64(d))
	}
	for d := depth - 1; d >= 0; d-- {
		env.PopWorld()
		assert.EqualValues(t, d, r.Get())
	}
}
