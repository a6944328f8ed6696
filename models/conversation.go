package models

// EntryKind tags a conversation entry. The set is closed: user prompts,
// a pending placeholder, assistant resolutions and error resolutions.
type EntryKind string

const (
	EntryUser      EntryKind = "user"
	EntryPending   EntryKind = "pending"
	EntryAssistant EntryKind = "assistant"
	EntryError     EntryKind = "error"
)

// ConversationEntry is one message in a workspace session's history.
type ConversationEntry struct {
	Kind    EntryKind `json:"type"`
	Content string    `json:"content"`
}

// PendingContent is the placeholder shown while a generation is in
// flight.
const PendingContent = "Generating code..."

func UserEntry(content string) ConversationEntry {
	return ConversationEntry{Kind: EntryUser, Content: content}
}

func PendingEntry() ConversationEntry {
	return ConversationEntry{Kind: EntryPending, Content: PendingContent}
}

func AssistantEntry(content string) ConversationEntry {
	return ConversationEntry{Kind: EntryAssistant, Content: content}
}

func ErrorEntry(content string) ConversationEntry {
	return ConversationEntry{Kind: EntryError, Content: content}
}
