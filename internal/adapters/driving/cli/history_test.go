package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history", historyCmd.Use)
}

func TestHistoryCmd_EmptyHistory(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("history")

	assert.NoError(t, err)
	assert.Contains(t, out, "No search history")
}

func TestHistoryCmd_ShowsRecordedSearches(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("search", "liquid glass")
	require.NoError(t, err)

	out, err := execute("history")

	assert.NoError(t, err)
	assert.Contains(t, out, "liquid glass")
	assert.Contains(t, out, "1x")
}

func TestHistoryCmd_Clear(t *testing.T) {
	cleanup := setupTestServices()
	defer func() {
		historyClear = false
		cleanup()
	}()

	_, err := execute("search", "liquid glass")
	require.NoError(t, err)

	out, err := execute("history", "--clear")
	assert.NoError(t, err)
	assert.Contains(t, out, "Search history cleared")

	historyClear = false
	out, err = execute("history")
	assert.NoError(t, err)
	assert.Contains(t, out, "No search history")
}

func TestHistoryCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	searchService = nil

	_, err := execute("history")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}
