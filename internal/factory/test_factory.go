package factory

import (
	"time"

	"github.com/mcoot/merge2048/internal/dependencies/mocks"
	"github.com/mcoot/merge2048/internal/storage/memory"
	"github.com/mcoot/merge2048/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MockRandom  *mocks.MockRandom
	MemoryStore *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockRandom:  mockRandom,
		MemoryStore: store,
	}
}

// SaveRawBoard stores board file content without validating it
func (t *TestApp) SaveRawBoard(name, content string) {
	t.MemoryStore.SaveRaw(name, []byte(content))
}
