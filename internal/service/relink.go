package service

import (
	"github.com/mkeller/chatvault/internal/archive"
	"github.com/mkeller/chatvault/internal/models"
)

// Relink re-attaches content to restored, locator-dead media from a fresh
// batch of files. Matching is exact base-filename equality against every
// conversation's media map and every message's attachment; only the
// content locator is replaced; message order, text, and linkage topology
// stay as restored. Returns the number of media entries brought back to
// life.
func (s *Session) Relink(files []archive.File) (int, error) {
	relinked := 0

	for _, f := range files {
		var content []byte

		// Lazily read each file once, and only when something wants it.
		load := func() ([]byte, bool) {
			if content != nil {
				return content, true
			}
			raw, err := f.ReadAll()
			if err != nil {
				s.log.Warn("relink file unreadable", "file", f.Name, "error", err)
				return nil, false
			}
			content = raw
			return content, true
		}

		for _, c := range s.convs {
			relinked += s.relinkConversation(c, f.Name, load)
		}
	}

	for _, c := range s.convs {
		c.NeedsRelink = anyDeadMedia(c)
	}

	s.log.Info("relink finished", "files", len(files), "relinked", relinked)
	return relinked, nil
}

func (s *Session) relinkConversation(c *models.Conversation, name string, load func() ([]byte, bool)) int {
	relinked := 0

	// After an ingest the map entry and the message attachment are the
	// same object; after a restore they decode separately. Track pointers
	// so a shared object is only replaced once.
	seen := make(map[*models.Media]bool)

	replace := func(m *models.Media) {
		if seen[m] {
			return
		}
		content, ok := load()
		if !ok {
			return
		}
		seen[m] = true
		s.blobs.Release(m.Locator)
		m.Locator = s.blobs.Put(content)
		relinked++
	}

	if m, ok := c.MediaFiles[name]; ok {
		replace(m)
	}
	for i := range c.Messages {
		if m := c.Messages[i].Media; m != nil && m.Name == name {
			replace(m)
		}
	}

	return relinked
}

func anyDeadMedia(c *models.Conversation) bool {
	for _, m := range c.MediaFiles {
		if !m.Alive() {
			return true
		}
	}
	for i := range c.Messages {
		if m := c.Messages[i].Media; m != nil && !m.Alive() {
			return true
		}
	}
	return false
}
