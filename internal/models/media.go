package models

import "github.com/mkeller/chatvault/internal/blob"

// Kind classifies an attachment by its content type.
type Kind string

const (
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
	KindAudio   Kind = "audio"
	KindUnknown Kind = "unknown"
)

// Media is one attachment extracted from an archive. Name is the base
// filename (no directory prefix) and is the unique lookup key within a
// conversation. Locator points at the in-memory bytes; it is transient
// and excluded from backups, so a restored Media is dead until relinked.
type Media struct {
	Name    string       `json:"name"`
	Kind    Kind         `json:"type"`
	Locator blob.Locator `json:"-"`
}

// Alive reports whether the media still carries a content locator.
// A restored backup yields dead media until a relink.
func (m *Media) Alive() bool {
	return m != nil && !m.Locator.IsZero()
}
