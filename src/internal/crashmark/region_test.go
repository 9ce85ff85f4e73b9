// FILE: tracekit/src/internal/crashmark/region_test.go
package crashmark

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRegion(t *testing.T) (*Region, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crash.marker")
	r, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r, path
}

func TestRegion_FreshIsUnmarked(t *testing.T) {
	r, path := openTestRegion(t)

	assert.False(t, r.Marked())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(RegionSize), info.Size())
}

func TestRegion_MarkAndClear(t *testing.T) {
	r, _ := openTestRegion(t)

	require.NoError(t, r.Mark())
	assert.True(t, r.Marked())
	assert.Equal(t, markerTag, r.data[:tagLen])

	require.NoError(t, r.Clear())
	assert.False(t, r.Marked())
	for i, b := range r.data[:64] {
		require.Zerof(t, b, "byte %d not zeroed", i)
	}
}

func TestRegion_MarkWritesTimestamp(t *testing.T) {
	r, _ := openTestRegion(t)

	require.NoError(t, r.Mark())

	ts := r.data[tagLen]
	assert.True(t, ts >= '0' && ts <= '9', "expected a decimal timestamp after the tag, got %q", ts)
}

func TestRegion_MarkFromSignalTagOnly(t *testing.T) {
	r, _ := openTestRegion(t)

	r.MarkFromSignal()

	assert.True(t, r.Marked())
	assert.Zero(t, r.data[tagLen], "signal path must not write a timestamp")
}

func TestRegion_MarkSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crash.marker")

	r1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, r1.Mark())
	require.NoError(t, r1.Close())

	r2, err := Open(path)
	require.NoError(t, err)
	defer r2.Close()

	assert.True(t, r2.Marked(), "mark must survive unmap and remap")
}

func TestRegion_ConcurrentMarking(t *testing.T) {
	r, _ := openTestRegion(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if n%2 == 0 {
					r.MarkFromSignal()
				} else {
					assert.NoError(t, r.Mark())
				}
			}
		}(i)
	}
	wg.Wait()

	assert.True(t, r.Marked())
	assert.Equal(t, markerTag, r.data[:tagLen], "tag must stay intact under concurrent marking")
}

func TestRegion_OpenFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	r, err := Open(filepath.Join(blocker, "crash.marker"))
	assert.Error(t, err)
	assert.Nil(t, r)
}

func TestRegion_CloseIsIdempotent(t *testing.T) {
	r, _ := openTestRegion(t)

	assert.NoError(t, r.Close())
	assert.NoError(t, r.Close())
}

func TestRegion_OperationsAfterClose(t *testing.T) {
	r, _ := openTestRegion(t)
	require.NoError(t, r.Close())

	assert.ErrorIs(t, r.Mark(), ErrNotMapped)
	assert.ErrorIs(t, r.Clear(), ErrNotMapped)
	assert.False(t, r.Marked())
	assert.NotPanics(t, func() { r.MarkFromSignal() })
}

func TestActiveSlot(t *testing.T) {
	r1, _ := openTestRegion(t)
	r2, _ := openTestRegion(t)

	t.Run("NoRegionIsSafe", func(t *testing.T) {
		assert.NotPanics(t, func() { MarkActive() })
	})

	t.Run("SingleActivation", func(t *testing.T) {
		require.NoError(t, Activate(r1))
		t.Cleanup(func() { Deactivate(r1) })

		assert.ErrorIs(t, Activate(r2), ErrActiveRegion)

		MarkActive()
		assert.True(t, r1.Marked())
		assert.False(t, r2.Marked())
	})

	t.Run("DeactivateFreesSlot", func(t *testing.T) {
		require.NoError(t, Activate(r2))
		Deactivate(r2)
		require.NoError(t, Activate(r1))
		Deactivate(r1)
	})

	t.Run("DeactivateIgnoresNonActive", func(t *testing.T) {
		require.NoError(t, Activate(r1))
		Deactivate(r2)
		MarkActive()
		assert.True(t, r1.Marked())
		Deactivate(r1)
	})
}
