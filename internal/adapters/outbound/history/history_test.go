package history_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/history"
	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entry := domain.RunEntry{
		ID:          "4b8f5c2e-0d0a-4c43-9a59-3c4f3e1f7a10",
		Timestamp:   "2026-02-25T10:00:00Z",
		Source:      dir,
		CommitHash:  "abc1234",
		Overall:     78,
		Grade:       "B",
		Security:    75,
		Quality:     81,
		Application: "api-service",
	}

	require.NoError(t, h.Save(dir, entry))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])

	_, err = os.Stat(filepath.Join(dir, ".blueprintkit", "history", "validations.json"))
	assert.NoError(t, err)
}

func TestHistory_AppendMultiple(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: "t1", Overall: 47, Grade: "D"}))
	require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: "t2", Overall: 62, Grade: "C"}))
	require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: "t3", Overall: 85, Grade: "A"}))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 47, entries[0].Overall)
	assert.Equal(t, 85, entries[2].Overall)
}

func TestHistory_Bounded(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	for i := range history.MaxEntries + 5 {
		require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: fmt.Sprintf("t%d", i), Overall: i % 100}))
	}

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, history.MaxEntries)
	assert.Equal(t, "t5", entries[0].Timestamp)
}

func TestHistory_LoadEmpty(t *testing.T) {
	entries, err := history.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, ".blueprintkit", "history", "validations.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte("{not json"), 0644))

	_, err := history.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .blueprintkit/history/validations.json")
}
