package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkeller/chatvault/internal/archive"
	"github.com/mkeller/chatvault/internal/blob"
	"github.com/mkeller/chatvault/internal/media"
	"github.com/mkeller/chatvault/internal/metrics"
	"github.com/mkeller/chatvault/internal/models"
	"github.com/mkeller/chatvault/internal/parser"
)

// IngestResult summarizes one ingest batch.
type IngestResult struct {
	BatchID  string
	Ingested []*models.Conversation

	MessagesParsed     int
	MediaExtracted     int
	MediaLinked        int
	TimestampFallbacks int

	// Errors holds one entry per failed archive. A failed archive never
	// discards conversations already appended from earlier files.
	Errors []string
}

// IngestArchives processes a batch of selected archive files. Each archive
// is ingested in isolation: a corrupt or transcript-less file is reported
// and skipped while the rest of the batch proceeds.
func (s *Session) IngestArchives(files []archive.File) IngestResult {
	result := IngestResult{BatchID: uuid.NewString()}

	log := s.log.With("batch", result.BatchID)
	log.Info("ingest started", "files", len(files))

	for _, f := range files {
		conv, stats, err := s.ingestArchive(f)
		if err != nil {
			log.Error("archive ingest failed", "file", f.Name, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", f.Name, err))
			continue
		}

		result.Ingested = append(result.Ingested, conv)
		result.MessagesParsed += stats.messages
		result.MediaExtracted += stats.mediaExtracted
		result.MediaLinked += stats.mediaLinked
		result.TimestampFallbacks += stats.timestampFallbacks

		log.Info("archive ingested",
			"file", f.Name,
			"conversation", conv.Name,
			"messages", stats.messages,
			"media", stats.mediaExtracted,
			"linked", stats.mediaLinked)
		if stats.timestampFallbacks > 0 {
			log.Warn("malformed timestamps degraded to ingest time",
				"file", f.Name, "count", stats.timestampFallbacks)
		}
	}

	log.Info("ingest finished",
		"conversations", len(result.Ingested), "errors", len(result.Errors))
	return result
}

type ingestStats struct {
	messages           int
	mediaExtracted     int
	mediaLinked        int
	timestampFallbacks int
}

// ingestArchive builds one conversation from one archive. The conversation
// is assembled locally and appended to the collection only on full
// success; on any failure the blob content staged for it is released.
func (s *Session) ingestArchive(f archive.File) (*models.Conversation, ingestStats, error) {
	var stats ingestStats

	raw, err := f.ReadAll()
	if err != nil {
		return nil, stats, err
	}

	start := time.Now()
	a, err := archive.Open(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, stats, err
	}

	transcript, err := a.FindTranscript()
	if err != nil {
		return nil, stats, err
	}
	text, err := a.ReadText(transcript)
	if err != nil {
		return nil, stats, err
	}
	s.metrics.RecordTiming(metrics.OpArchiveExtract, time.Since(start))

	start = time.Now()
	msgs, parseStats := parser.Parse(text, s.now)
	s.metrics.RecordTiming(metrics.OpTranscriptParse, time.Since(start))
	stats.messages = parseStats.Messages
	stats.timestampFallbacks = parseStats.TimestampFallbacks

	mediaFiles, locators, err := s.extractMedia(a, transcript)
	if err != nil {
		for _, loc := range locators {
			s.blobs.Release(loc)
		}
		return nil, stats, err
	}
	stats.mediaExtracted = len(mediaFiles)

	start = time.Now()
	stats.mediaLinked = s.linker.Attach(msgs, mediaFiles)
	s.metrics.RecordTiming(metrics.OpMediaLink, time.Since(start))

	conv := s.assemble(msgs, mediaFiles)
	s.convs = append(s.convs, conv)
	return conv, stats, nil
}

// extractMedia decodes every recognized attachment entry into the blob
// store, keyed by base filename. An unreadable entry fails the archive.
func (s *Session) extractMedia(a *archive.Archive, transcript string) (map[string]*models.Media, []blob.Locator, error) {
	mediaFiles := make(map[string]*models.Media)
	var locators []blob.Locator

	for _, entry := range a.Entries() {
		if entry == transcript {
			continue
		}
		base := archive.BaseName(entry)
		if !media.IsMediaFile(base) {
			continue
		}

		content, err := a.ReadBytes(entry)
		if err != nil {
			return nil, locators, err
		}

		loc := s.blobs.Put(content)
		locators = append(locators, loc)
		mediaFiles[base] = &models.Media{
			Name:    base,
			Kind:    media.Classify(base),
			Locator: loc,
		}
	}

	return mediaFiles, locators, nil
}
