package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File is one selected input file: a name plus a lazy byte-stream
// accessor. Ingest batches and relink batches both arrive as flat File
// lists; the pipeline does not care how the files were picked.
type File struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// ReadAll reads the file's full content.
func (f File) ReadAll() ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return content, nil
}

// FileFromPath wraps a filesystem path as a File. The name is the base
// name, matching how attachment filenames are keyed.
func FileFromPath(path string) File {
	return File{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// FilesFromDir lists a directory's regular files as a relink batch.
// Subdirectories are not descended.
func FilesFromDir(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, FileFromPath(filepath.Join(dir, entry.Name())))
	}
	return files, nil
}
