package archive

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReadAll(t *testing.T) {
	f := File{
		Name: "a.bin",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader([]byte("payload"))), nil
		},
	}

	content, err := f.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), content)
}

func TestFileFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "IMG-1.jpg")
	require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xD8}, 0644))

	f := FileFromPath(path)
	assert.Equal(t, "IMG-1.jpg", f.Name)

	content, err := f.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, content)
}

func TestFilesFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.mp4"), []byte("b"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	files, err := FilesFromDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	names := []string{files[0].Name, files[1].Name}
	assert.ElementsMatch(t, []string{"a.jpg", "b.mp4"}, names)
}
