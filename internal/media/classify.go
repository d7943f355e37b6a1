// Package media classifies attachment files and links in-message media
// mentions to extracted attachments.
package media

import (
	"sort"
	"strings"
	"sync"

	"github.com/mkeller/chatvault/internal/models"
)

// kindByExt is the fixed extension table. Callers extend it via
// RegisterExtension rather than branching on extensions themselves.
var (
	extMu     sync.RWMutex
	kindByExt = map[string]models.Kind{
		"jpg":  models.KindImage,
		"jpeg": models.KindImage,
		"png":  models.KindImage,
		"gif":  models.KindImage,
		"mp4":  models.KindVideo,
		"mov":  models.KindVideo,
		"avi":  models.KindVideo,
		"mp3":  models.KindAudio,
		"ogg":  models.KindAudio,
		"wav":  models.KindAudio,
		"opus": models.KindAudio,
	}
)

// Classify maps a filename to its media kind via the extension table.
// The extension is the substring after the final dot, case-insensitive.
// Unrecognized or missing extensions classify as unknown.
func Classify(name string) models.Kind {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot == len(name)-1 {
		return models.KindUnknown
	}
	ext := strings.ToLower(name[dot+1:])

	extMu.RLock()
	defer extMu.RUnlock()

	if kind, ok := kindByExt[ext]; ok {
		return kind
	}
	return models.KindUnknown
}

// IsMediaFile reports whether the filename carries a recognized media
// extension.
func IsMediaFile(name string) bool {
	return Classify(name) != models.KindUnknown
}

// RegisterExtension adds or overrides an extension mapping. The extension
// is given without the leading dot.
func RegisterExtension(ext string, kind models.Kind) {
	extMu.Lock()
	defer extMu.Unlock()

	kindByExt[strings.ToLower(strings.TrimPrefix(ext, "."))] = kind
}

// Extensions returns the recognized extensions, longest first so regexp
// alternations prefer ".jpeg" over ".jpg".
func Extensions() []string {
	extMu.RLock()
	defer extMu.RUnlock()

	exts := make([]string, 0, len(kindByExt))
	for ext := range kindByExt {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if len(exts[i]) != len(exts[j]) {
			return len(exts[i]) > len(exts[j])
		}
		return exts[i] < exts[j]
	})
	return exts
}
