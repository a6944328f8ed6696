package workspace

import (
	"testing"

	"codeforge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationLog_AppendAndRead(t *testing.T) {
	log := NewConversationLog()
	assert.Zero(t, log.Len())
	assert.Empty(t, log.Entries())

	log.Append(models.UserEntry("build me a todo app"))
	log.Append(models.PendingEntry())

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, models.EntryUser, entries[0].Kind)
	assert.Equal(t, models.EntryPending, entries[1].Kind)

	// Reads are restartable and return copies.
	entries[0] = models.ErrorEntry("mutated")
	assert.Equal(t, models.EntryUser, log.Entries()[0].Kind)
}

func TestConversationLog_ReplaceLastResolvesPending(t *testing.T) {
	log := NewConversationLog()
	log.Append(models.UserEntry("prompt"))
	log.Append(models.PendingEntry())

	require.NoError(t, log.ReplaceLast(models.AssistantEntry("done")))

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, models.EntryAssistant, entries[1].Kind)
	assert.Equal(t, "done", entries[1].Content)
}

func TestConversationLog_ReplaceLastRequiresPendingTail(t *testing.T) {
	log := NewConversationLog()

	err := log.ReplaceLast(models.AssistantEntry("done"))
	assert.Error(t, err)

	log.Append(models.UserEntry("prompt"))
	err = log.ReplaceLast(models.AssistantEntry("done"))
	assert.Error(t, err)
	assert.Equal(t, models.EntryUser, log.Entries()[0].Kind)
}
