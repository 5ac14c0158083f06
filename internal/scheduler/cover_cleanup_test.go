package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefs struct {
	refs []string
	err  error
}

func (f *fakeRefs) ListCoverRefs() ([]string, error) { return f.refs, f.err }

type fakeStore struct {
	files     []string
	removeErr map[string]error
	removed   []string
}

func (f *fakeStore) Orphans(referenced []string) ([]string, error) {
	keep := map[string]bool{}
	for _, r := range referenced {
		keep[r] = true
	}
	var out []string
	for _, file := range f.files {
		if !keep[file] {
			out = append(out, file)
		}
	}
	return out, nil
}

func (f *fakeStore) Remove(ref string) error {
	if err := f.removeErr[ref]; err != nil {
		return err
	}
	f.removed = append(f.removed, ref)
	return nil
}

func TestCoverCleanupScheduler_RunNow(t *testing.T) {
	t.Run("removes only unreferenced covers", func(t *testing.T) {
		store := &fakeStore{files: []string{"covers/a.jpg", "covers/b.jpg", "covers/c.jpg"}}
		s := NewCoverCleanupScheduler(&fakeRefs{refs: []string{"covers/b.jpg"}}, store, "0 3 * * *")

		removed, err := s.RunNow()
		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		assert.Equal(t, []string{"covers/a.jpg", "covers/c.jpg"}, store.removed)
	})

	t.Run("continues after a failed removal", func(t *testing.T) {
		store := &fakeStore{
			files:     []string{"covers/a.jpg", "covers/b.jpg"},
			removeErr: map[string]error{"covers/a.jpg": errors.New("permission denied")},
		}
		s := NewCoverCleanupScheduler(&fakeRefs{}, store, "0 3 * * *")

		removed, err := s.RunNow()
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		assert.Equal(t, []string{"covers/b.jpg"}, store.removed)
	})

	t.Run("does not touch files when references cannot be listed", func(t *testing.T) {
		store := &fakeStore{files: []string{"covers/a.jpg"}}
		s := NewCoverCleanupScheduler(&fakeRefs{err: errors.New("database is locked")}, store, "0 3 * * *")

		_, err := s.RunNow()
		assert.Error(t, err)
		assert.Empty(t, store.removed)
	})
}

func TestCoverCleanupScheduler_StartStop(t *testing.T) {
	t.Run("rejects invalid schedule", func(t *testing.T) {
		s := NewCoverCleanupScheduler(&fakeRefs{}, &fakeStore{}, "every day")
		err := s.Start(context.Background())
		assert.Error(t, err)
		assert.False(t, s.IsRunning())
	})

	t.Run("start and stop", func(t *testing.T) {
		s := NewCoverCleanupScheduler(&fakeRefs{}, &fakeStore{}, "30 3 * * *")
		require.NoError(t, s.Start(context.Background()))
		assert.True(t, s.IsRunning())

		// Starting twice is a no-op
		require.NoError(t, s.Start(context.Background()))

		s.Stop()
		assert.False(t, s.IsRunning())
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		s := NewCoverCleanupScheduler(&fakeRefs{}, &fakeStore{}, "30 3 * * *")
		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, s.Start(ctx))

		cancel()
		assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
	})
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 */6 * * *"))
	assert.Error(t, ValidateCronSchedule("0 0 */6 * * *"))
	assert.Error(t, ValidateCronSchedule(""))
}
