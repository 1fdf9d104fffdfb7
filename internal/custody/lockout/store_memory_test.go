package lockout

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custody/pkg/requestcontext"
)

func TestMemoryStore(t *testing.T) {
	start := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) context.Context {
		return requestcontext.WithTime(context.Background(), start.Add(d))
	}

	t.Run("counts failures inside the window", func(t *testing.T) {
		store := NewMemoryStore()
		for i := 1; i <= 3; i++ {
			n, err := store.RecordFailure(at(time.Duration(i)*time.Minute), "k", 10*time.Minute)
			require.NoError(t, err)
			assert.Equal(t, i, n)
		}
		n, err := store.Failures(at(5*time.Minute), "k")
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("window starts at the first failure", func(t *testing.T) {
		store := NewMemoryStore()
		_, err := store.RecordFailure(at(0), "k", 10*time.Minute)
		require.NoError(t, err)
		_, err = store.RecordFailure(at(9*time.Minute), "k", 10*time.Minute)
		require.NoError(t, err)

		n, err := store.Failures(at(10*time.Minute), "k")
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = store.RecordFailure(at(11*time.Minute), "k", 10*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("clear removes the counter", func(t *testing.T) {
		store := NewMemoryStore()
		_, err := store.RecordFailure(at(0), "k", time.Minute)
		require.NoError(t, err)
		require.NoError(t, store.Clear(at(0), "k"))

		n, err := store.Failures(at(0), "k")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("expired counters for unseen keys are pruned", func(t *testing.T) {
		store := NewMemoryStore()
		for i := range 100 {
			_, err := store.RecordFailure(at(0), fmt.Sprintf("officer-%d", i), time.Minute)
			require.NoError(t, err)
		}
		require.Equal(t, 100, store.Len())

		_, err := store.RecordFailure(at(2*time.Minute), "officer-new", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 1, store.Len())

		n, err := store.Failures(at(2*time.Minute), "officer-new")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("live counters survive a sweep", func(t *testing.T) {
		store := NewMemoryStore()
		_, err := store.RecordFailure(at(0), "short", time.Minute)
		require.NoError(t, err)
		_, err = store.RecordFailure(at(0), "long", 10*time.Minute)
		require.NoError(t, err)

		_, err = store.RecordFailure(at(2*time.Minute), "other", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 2, store.Len())

		n, err := store.Failures(at(2*time.Minute), "long")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("concurrent failures are all counted", func(t *testing.T) {
		store := NewMemoryStore()
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = store.RecordFailure(at(0), "k", time.Minute)
			}()
		}
		wg.Wait()

		n, err := store.Failures(at(0), "k")
		require.NoError(t, err)
		assert.Equal(t, 50, n)
	})
}
