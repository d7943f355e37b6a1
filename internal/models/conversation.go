// Package models defines the data structures for ingested chat archives
// and the structural backup format.
package models

import (
	"math/rand/v2"
	"time"
)

// Conversation is one ingested chat: ordered messages plus the media map
// extracted alongside them. The JSON field names are the backup wire
// format and must stay stable across versions.
type Conversation struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Messages   []Message         `json:"messages"`
	MediaFiles map[string]*Media `json:"mediaFiles"`

	// LastMessage and Timestamp mirror the final message for list views.
	LastMessage string `json:"lastMessage"`
	Timestamp   int64  `json:"timestamp"`

	// NeedsRelink is set after a restore: every media locator is dead
	// until a relink batch supplies fresh content. Not serialized.
	NeedsRelink bool `json:"-"`
}

// NewConversationID generates a conversation identity from the creation
// instant plus a random disambiguator, so conversations created within
// the same millisecond still get distinct IDs. A collision is cosmetic,
// not fatal.
func NewConversationID(now time.Time) int64 {
	return now.UnixMilli()<<10 | int64(rand.N(1024))
}

// SidePolicy decides which sender renders as the local user. The
// transcript format carries no notion of "me", so this is an explicit
// presentation policy rather than something inferred from message order.
type SidePolicy string

const (
	// FirstSenderIsPeer treats the first message's sender as the remote
	// party, so their messages render on the received side.
	FirstSenderIsPeer SidePolicy = "first-sender-is-peer"

	// FirstSenderIsSelf treats the first message's sender as the local
	// user.
	FirstSenderIsSelf SidePolicy = "first-sender-is-self"
)

// SentByFirstSender reports whether msg shares a sender with the first
// message of the conversation.
func (c *Conversation) SentByFirstSender(msg Message) bool {
	return len(c.Messages) > 0 && c.Messages[0].Sender == msg.Sender
}

// IsSent reports whether msg renders on the sent (local user) side under
// the given policy.
func (c *Conversation) IsSent(msg Message, policy SidePolicy) bool {
	first := c.SentByFirstSender(msg)
	if policy == FirstSenderIsSelf {
		return first
	}
	return !first
}
