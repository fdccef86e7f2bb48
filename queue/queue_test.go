package queue_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bedrock/queue"
)

// TestQueue_FIFO checks items come out in push order.
func TestQueue_FIFO(t *testing.T) {
	q := queue.New[int]()
	for i := 0; i < 200; i++ {
		require.True(t, q.Push(i))
	}
	require.Equal(t, 200, q.Len())
	for i := 0; i < 200; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	require.Zero(t, q.Len())
}

// TestQueue_StopDrains verifies Stopped keeps pending items poppable, then reports empty.
func TestQueue_StopDrains(t *testing.T) {
	q := queue.New[string]()
	q.Push("a")
	q.Push("b")
	q.Stop(queue.Stopped)
	require.Equal(t, queue.Stopped, q.State())

	require.False(t, q.Push("c"), "push after stop must be rejected")

	v, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, "a", v)
	v, ok = q.Pop()
	require.True(t, ok)
	require.Equal(t, "b", v)

	_, ok = q.Pop()
	require.False(t, ok, "drained stopped queue reports empty")
}

// TestQueue_ForceStopDiscards verifies ForceStopped ignores pending items.
func TestQueue_ForceStopDiscards(t *testing.T) {
	q := queue.New[int]()
	q.Push(1)
	q.Push(2)
	require.Equal(t, []int{1, 2}, q.Stop(queue.ForceStopped))

	_, ok := q.Pop()
	require.False(t, ok)
	require.Zero(t, q.Len())
	require.False(t, q.Push(3))
}

// TestQueue_TransitionsOneWay ensures a stopped queue never runs again and
// that repeating a Stop is ignored.
func TestQueue_TransitionsOneWay(t *testing.T) {
	q := queue.New[int]()
	q.Stop(queue.Running)
	require.Equal(t, queue.Running, q.State(), "Stop(Running) is a no-op")

	q.Push(1)
	q.Stop(queue.Stopped)
	require.Nil(t, q.Stop(queue.Stopped), "repeated Stop is ignored")
	q.Stop(queue.Running)
	require.Equal(t, queue.Stopped, q.State())

	v, ok := q.Pop()
	require.True(t, ok, "graceful stop keeps pending items")
	require.Equal(t, 1, v)
}

// TestQueue_EscalateStoppedToForceStopped discards what a graceful stop left.
func TestQueue_EscalateStoppedToForceStopped(t *testing.T) {
	q := queue.New[int]()
	q.Push(1)
	q.Push(2)
	q.Push(3)
	q.Stop(queue.Stopped)

	v, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, 1, v)

	require.Equal(t, []int{2, 3}, q.Stop(queue.ForceStopped))
	require.Equal(t, queue.ForceStopped, q.State())
	_, ok = q.Pop()
	require.False(t, ok)

	require.Nil(t, q.Stop(queue.Stopped), "ForceStopped is terminal")
	require.Nil(t, q.Stop(queue.ForceStopped))
	require.Equal(t, queue.ForceStopped, q.State())
}

// TestQueue_StopWakesBlockedPoppers checks every blocked Pop returns after Stop.
func TestQueue_StopWakesBlockedPoppers(t *testing.T) {
	for _, state := range []queue.State{queue.Stopped, queue.ForceStopped} {
		t.Run(state.String(), func(t *testing.T) {
			q := queue.New[int]()
			const poppers = 8

			var wg sync.WaitGroup
			wg.Add(poppers)
			results := make(chan bool, poppers)
			for i := 0; i < poppers; i++ {
				go func() {
					defer wg.Done()
					_, ok := q.Pop()
					results <- ok
				}()
			}

			// give the poppers a moment to block
			time.Sleep(20 * time.Millisecond)
			q.Stop(state)
			wg.Wait()
			close(results)
			for ok := range results {
				assert.False(t, ok)
			}
		})
	}
}

// TestQueue_PushWakesPopper verifies a blocked Pop receives a later Push.
func TestQueue_PushWakesPopper(t *testing.T) {
	q := queue.New[int]()
	got := make(chan int, 1)
	go func() {
		v, ok := q.Pop()
		if ok {
			got <- v
		}
		close(got)
	}()

	time.Sleep(10 * time.Millisecond)
	require.True(t, q.Push(42))
	select {
	case v := <-got:
		require.Equal(t, 42, v)
	case <-time.After(2 * time.Second):
		t.Fatal("blocked Pop was not woken by Push")
	}
}

// TestQueue_ConcurrentProducersConsumers moves every item exactly once.
func TestQueue_ConcurrentProducersConsumers(t *testing.T) {
	q := queue.New[int]()
	const producers, perProducer, consumers = 4, 1000, 4

	var prod sync.WaitGroup
	prod.Add(producers)
	for p := 0; p < producers; p++ {
		go func(base int) {
			defer prod.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(base*perProducer + i)
			}
		}(p)
	}

	seen := make([][]int, consumers)
	var cons sync.WaitGroup
	cons.Add(consumers)
	for c := 0; c < consumers; c++ {
		go func(c int) {
			defer cons.Done()
			for {
				v, ok := q.Pop()
				if !ok {
					return
				}
				seen[c] = append(seen[c], v)
			}
		}(c)
	}

	prod.Wait()
	q.Stop(queue.Stopped)
	cons.Wait()

	counts := make(map[int]int, producers*perProducer)
	for _, s := range seen {
		for _, v := range s {
			counts[v]++
		}
	}
	require.Len(t, counts, producers*perProducer)
	for v, n := range counts {
		require.Equal(t, 1, n, "item %d delivered %d times", v, n)
	}
}

// TestState_String covers the Stringer.
func TestState_String(t *testing.T) {
	assert.Equal(t, "running", queue.Running.String())
	assert.Equal(t, "stopped", queue.Stopped.String())
	assert.Equal(t, "force-stopped", queue.ForceStopped.String())
	assert.Equal(t, "unknown", queue.State(9).String())
}
