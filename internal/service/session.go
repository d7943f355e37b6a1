package service

import (
	"log/slog"
	"time"

	"github.com/mkeller/chatvault/internal/blob"
	"github.com/mkeller/chatvault/internal/media"
	"github.com/mkeller/chatvault/internal/metrics"
	"github.com/mkeller/chatvault/internal/models"
)

// Session holds the conversation collection, the active conversation, and
// the blob store backing media locators. It replaces the ambient globals
// of earlier viewers: all mutation goes through its methods, from a single
// caller goroutine.
type Session struct {
	log     *slog.Logger
	blobs   *blob.Store
	linker  *media.Linker
	metrics *metrics.Collector

	nameLimit int
	now       func() time.Time

	convs    []*models.Conversation
	activeID int64 // 0 when no conversation is open
}

// Options configures a Session.
type Options struct {
	// Logger for operation reporting. Defaults to slog.Default().
	Logger *slog.Logger
	// LinkStrategy for media linking. Defaults to media.FirstMatch.
	LinkStrategy media.Strategy
	// NameLimit caps derived display names. Defaults to 50.
	NameLimit int
	// Now overrides the clock (tests). Defaults to time.Now.
	Now func() time.Time
}

// NewSession creates an empty session.
func NewSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.NameLimit <= 0 {
		opts.NameLimit = 50
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Session{
		log:       opts.Logger,
		blobs:     blob.NewStore(),
		linker:    media.NewLinker(opts.LinkStrategy),
		metrics:   metrics.NewCollector(),
		nameLimit: opts.NameLimit,
		now:       opts.Now,
	}
}

// Conversations returns the collection in insertion order.
func (s *Session) Conversations() []*models.Conversation {
	return s.convs
}

// Active returns the currently open conversation, or nil.
func (s *Session) Active() *models.Conversation {
	if s.activeID == 0 {
		return nil
	}
	return s.find(s.activeID)
}

// Open marks a conversation as the active one.
func (s *Session) Open(id int64) error {
	if s.find(id) == nil {
		return ErrConversationNotFound
	}
	s.activeID = id
	return nil
}

// Remove destroys one conversation, releasing its media content. An open
// view of it is invalidated.
func (s *Session) Remove(id int64) error {
	for i, c := range s.convs {
		if c.ID != id {
			continue
		}
		s.releaseConversation(c)
		s.convs = append(s.convs[:i], s.convs[i+1:]...)
		if s.activeID == id {
			s.activeID = 0
		}
		s.log.Info("conversation removed", "id", id)
		return nil
	}
	return ErrConversationNotFound
}

// Clear destroys every conversation and releases all media content.
func (s *Session) Clear() {
	for _, c := range s.convs {
		s.releaseConversation(c)
	}
	s.convs = nil
	s.activeID = 0
	s.log.Info("collection cleared")
}

// MediaContent resolves a media entry's bytes. The second return is false
// for dead locators (restored media awaiting relink).
func (s *Session) MediaContent(m *models.Media) ([]byte, bool) {
	if m == nil {
		return nil, false
	}
	return s.blobs.Get(m.Locator)
}

// Metrics returns a snapshot of pipeline timings.
func (s *Session) Metrics() metrics.Snapshot {
	return s.metrics.Snapshot()
}

func (s *Session) find(id int64) *models.Conversation {
	for _, c := range s.convs {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// releaseConversation frees every locator a conversation holds: the media
// map plus any per-message attachments (distinct objects after a restore).
func (s *Session) releaseConversation(c *models.Conversation) {
	for _, m := range c.MediaFiles {
		s.blobs.Release(m.Locator)
	}
	for i := range c.Messages {
		if m := c.Messages[i].Media; m != nil {
			s.blobs.Release(m.Locator)
		}
	}
}
