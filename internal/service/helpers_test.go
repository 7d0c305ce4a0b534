package service

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"microwave/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testLog = zap.NewNop().Sugar()

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newProgramRepo(t *testing.T) *repository.ProgramJSONFile {
	t.Helper()
	repo, err := repository.OpenProgramJSONFile(filepath.Join(t.TempDir(), "custom-programs.json"))
	require.NoError(t, err)
	return repo
}
