package mutex_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bedrock/mutex"
)

// TestMutex_ExclusiveIncrements hammers the guarded counter from many goroutines.
func TestMutex_ExclusiveIncrements(t *testing.T) {
	m := mutex.New(0)
	const goroutines, rounds = 32, 500

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				g := m.Lock()
				*g.Value()++
				g.Unlock()
			}
		}()
	}
	wg.Wait()

	g := m.Lock()
	defer g.Unlock()
	require.Equal(t, goroutines*rounds, *g.Value())
}

// TestMutex_ZeroValue checks the zero Mutex is usable and holds the zero T.
func TestMutex_ZeroValue(t *testing.T) {
	var m mutex.Mutex[[]int]
	m.With(func(v *[]int) {
		require.Nil(t, *v)
		*v = append(*v, 1, 2)
	})
	m.With(func(v *[]int) { require.Equal(t, []int{1, 2}, *v) })
}

// TestMutex_WithReleasesOnPanic ensures a panicking closure does not leak the lock.
func TestMutex_WithReleasesOnPanic(t *testing.T) {
	m := mutex.New("a")
	require.Panics(t, func() {
		m.With(func(v *string) {
			*v = "b"
			panic("boom")
		})
	})

	g, ok := m.TryLock()
	require.True(t, ok, "lock must be free after a panicking With")
	defer g.Unlock()
	require.Equal(t, "b", *g.Value())
}

// TestGuard_UnlockIdempotent verifies double Unlock is harmless and use-after-unlock panics.
func TestGuard_UnlockIdempotent(t *testing.T) {
	m := mutex.New(5)
	g := m.Lock()
	require.True(t, g.Held())
	g.Set(6)
	g.Unlock()
	g.Unlock()
	require.False(t, g.Held())

	require.PanicsWithError(t, mutex.ErrGuardReleased.Error(), func() { _ = g.Value() })

	g2 := m.Lock()
	defer g2.Unlock()
	require.Equal(t, 6, *g2.Value())
}

// TestMutex_TryLockContended shows TryLock fails while a guard is live.
func TestMutex_TryLockContended(t *testing.T) {
	m := mutex.New(struct{}{})
	g := m.Lock()

	_, ok := m.TryLock()
	require.False(t, ok)

	g.Unlock()
	g2, ok := m.TryLock()
	require.True(t, ok)
	g2.Unlock()
}

// TestMutex_NewCond waits on a predicate over the protected value.
func TestMutex_NewCond(t *testing.T) {
	m := mutex.New(false)
	cond := m.NewCond()

	done := make(chan struct{})
	go func() {
		defer close(done)
		g := m.Lock()
		defer g.Unlock()
		for !*g.Value() {
			cond.Wait()
		}
	}()

	m.With(func(v *bool) { *v = true })
	cond.Broadcast()
	<-done
}
