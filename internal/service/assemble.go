package service

import (
	"strings"

	"github.com/mkeller/chatvault/internal/models"
)

// Fallback literals for empty conversations.
const (
	fallbackName    = "Unknown Chat"
	fallbackPreview = "No messages"
)

// assemble bundles parsed messages and extracted media into a conversation
// record with derived metadata. The identity is generated fresh; messages
// are assumed already sorted.
func (s *Session) assemble(msgs []models.Message, mediaFiles map[string]*models.Media) *models.Conversation {
	now := s.now()

	if msgs == nil {
		msgs = []models.Message{}
	}
	c := &models.Conversation{
		ID:          models.NewConversationID(now),
		Name:        displayName(msgs, s.nameLimit),
		Messages:    msgs,
		MediaFiles:  mediaFiles,
		LastMessage: fallbackPreview,
		Timestamp:   now.UnixMilli(),
	}

	if len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		c.LastMessage = last.Text
		c.Timestamp = last.Timestamp
	}

	return c
}

// displayName derives a conversation name from the distinct senders in
// first-appearance order, truncated with an ellipsis marker past limit.
func displayName(msgs []models.Message, limit int) string {
	var (
		seen    = make(map[string]bool)
		senders []string
	)
	for _, m := range msgs {
		if !seen[m.Sender] {
			seen[m.Sender] = true
			senders = append(senders, m.Sender)
		}
	}

	if len(senders) == 0 {
		return fallbackName
	}

	name := strings.Join(senders, ", ")
	if runes := []rune(name); len(runes) > limit {
		name = string(runes[:limit-3]) + "..."
	}
	return name
}
