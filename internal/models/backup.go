package models

// BackupVersion is the structural backup format version literal.
const BackupVersion = "1.0"

// Backup is the versioned envelope written by the backup codec. Media
// entries inside Chats serialize as metadata only (name, type); content
// locators are process-local and do not survive the round trip.
type Backup struct {
	Version   string          `json:"version"`
	Timestamp int64           `json:"timestamp"`
	Chats     []*Conversation `json:"chats"`
}
