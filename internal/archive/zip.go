// Package archive is the extraction boundary for exported chat archives.
// The rest of the pipeline consumes entry names, per-entry text, and
// per-entry bytes; how the bytes arrived (zip, picker, directory) stays
// opaque behind this package.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
)

// Sentinel errors for archive consumption.
var (
	// ErrNoTranscript indicates the archive contains no transcript file.
	ErrNoTranscript = errors.New("no chat transcript file found in archive")

	// ErrEntryNotFound indicates a read of an entry the archive lacks.
	ErrEntryNotFound = errors.New("archive entry not found")
)

// Archive is an opened chat export. Directory entries are hidden; all
// lookups use the full internal path as listed by Entries.
type Archive struct {
	byName map[string]*zip.File
	names  []string
}

// Open reads a zip archive from r.
func Open(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	a := &Archive{byName: make(map[string]*zip.File)}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		a.byName[f.Name] = f
		a.names = append(a.names, f.Name)
	}
	sort.Strings(a.names)
	return a, nil
}

// OpenFile opens a zip archive from disk. The returned cleanup closes the
// underlying file and must be called once reads are done.
func OpenFile(name string) (*Archive, func() error, error) {
	zr, err := zip.OpenReader(name)
	if err != nil {
		return nil, nil, fmt.Errorf("open zip %s: %w", name, err)
	}

	a := &Archive{byName: make(map[string]*zip.File)}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		a.byName[f.Name] = f
		a.names = append(a.names, f.Name)
	}
	sort.Strings(a.names)
	return a, zr.Close, nil
}

// Entries lists the archive's file entries in sorted order.
func (a *Archive) Entries() []string {
	return a.names
}

// ReadBytes reads one entry fully into memory.
func (a *Archive) ReadBytes(name string) ([]byte, error) {
	f, ok := a.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry %s: %w", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", name, err)
	}
	return content, nil
}

// ReadText reads one entry as decoded text.
func (a *Archive) ReadText(name string) (string, error) {
	content, err := a.ReadBytes(name)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// FindTranscript locates the transcript entry: a "*_chat.txt" file if
// present, otherwise any ".txt" file. Returns ErrNoTranscript when the
// archive has neither.
func (a *Archive) FindTranscript() (string, error) {
	for _, name := range a.names {
		if strings.HasSuffix(name, "_chat.txt") {
			return name, nil
		}
	}
	for _, name := range a.names {
		if strings.HasSuffix(name, ".txt") {
			return name, nil
		}
	}
	return "", ErrNoTranscript
}

// BaseName strips any directory prefix from an entry name.
func BaseName(name string) string {
	return path.Base(name)
}
