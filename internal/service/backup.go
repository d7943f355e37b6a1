package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mkeller/chatvault/internal/metrics"
	"github.com/mkeller/chatvault/internal/models"
)

// Backup writes the versioned structural snapshot of the collection.
// Media serialize as metadata only; content locators are process-local
// and die with the session, which is why a restore needs a relink.
func (s *Session) Backup(w io.Writer) error {
	start := time.Now()
	defer func() {
		s.metrics.RecordTiming(metrics.OpBackupEncode, time.Since(start))
	}()

	chats := s.convs
	if chats == nil {
		// Keep "chats" an array, not null; our own Restore insists.
		chats = []*models.Conversation{}
	}
	envelope := models.Backup{
		Version:   models.BackupVersion,
		Timestamp: s.now().UnixMilli(),
		Chats:     chats,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(envelope); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}

	s.log.Info("backup written", "conversations", len(s.convs))
	return nil
}

// BackupToFile writes the snapshot to a file.
func (s *Session) BackupToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer f.Close()

	if err := s.Backup(f); err != nil {
		return err
	}
	return f.Close()
}

// restoreEnvelope validates shape before anything mutates: the payload
// must be an object whose "chats" field is a JSON array.
type restoreEnvelope struct {
	Version   string          `json:"version"`
	Timestamp int64           `json:"timestamp"`
	Chats     json.RawMessage `json:"chats"`
}

// Restore replaces the whole collection from a snapshot. Any payload
// without the expected envelope shape fails with ErrBadBackupFormat and
// leaves the current collection untouched. Restored media carry dead
// locators and every conversation is marked as needing a relink.
func (s *Session) Restore(r io.Reader) error {
	start := time.Now()
	defer func() {
		s.metrics.RecordTiming(metrics.OpBackupDecode, time.Since(start))
	}()

	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	var envelope restoreEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrBadBackupFormat, err)
	}
	chats := bytes.TrimSpace(envelope.Chats)
	if len(chats) == 0 {
		return fmt.Errorf("%w: missing chats list", ErrBadBackupFormat)
	}
	if chats[0] != '[' {
		return fmt.Errorf("%w: chats is not an array", ErrBadBackupFormat)
	}

	var convs []*models.Conversation
	if err := json.Unmarshal(chats, &convs); err != nil {
		return fmt.Errorf("%w: %v", ErrBadBackupFormat, err)
	}

	// Shape is valid; supersede the old collection.
	for _, c := range s.convs {
		s.releaseConversation(c)
	}

	for _, c := range convs {
		c.NeedsRelink = true
		if c.MediaFiles == nil {
			c.MediaFiles = make(map[string]*models.Media)
		}
	}
	s.convs = convs
	s.activeID = 0

	s.log.Info("backup restored",
		"version", envelope.Version, "conversations", len(convs))
	return nil
}

// RestoreFromFile replaces the collection from a snapshot file.
func (s *Session) RestoreFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	return s.Restore(f)
}
