package workspace

import (
	"fmt"
	"sync"

	"codeforge/models"
)

// ConversationLog is the ordered message history of one workspace
// session. Append-mostly: the only in-place mutation is resolving a
// pending placeholder, and nothing is ever deleted short of discarding
// the whole log when the workspace closes.
type ConversationLog struct {
	mu      sync.Mutex
	entries []models.ConversationEntry
}

func NewConversationLog() *ConversationLog {
	return &ConversationLog{}
}

// Append adds an entry at the tail.
func (l *ConversationLog) Append(entry models.ConversationEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// ReplaceLast swaps the tail entry for its resolution. Only legal while
// the tail is a pending placeholder; each completed round trip grows the
// log by exactly two entries, never three.
func (l *ConversationLog) ReplaceLast(entry models.ConversationEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == 0 {
		return fmt.Errorf("conversation log is empty")
	}
	if tail := l.entries[len(l.entries)-1]; tail.Kind != models.EntryPending {
		return fmt.Errorf("tail entry is %q, not pending", tail.Kind)
	}
	l.entries[len(l.entries)-1] = entry
	return nil
}

// Entries returns a copy of the history; reading does not consume it.
func (l *ConversationLog) Entries() []models.ConversationEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.ConversationEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *ConversationLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
