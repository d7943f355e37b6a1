package media

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mkeller/chatvault/internal/models"
)

// Placeholder is the literal token exports emit in place of an omitted
// attachment.
const Placeholder = "<Media omitted>"

// Strategy selects how many matches a link scan may attach.
type Strategy int

const (
	// FirstMatch stops at the first media matching any token, attaching
	// at most one media per message. This mirrors the export viewers this
	// tool replaces and is the default; bodies referencing several files
	// still link only the first.
	FirstMatch Strategy = iota

	// AllMatches collects one media per token, deduplicated. Not the
	// default; exists so alternate policies stay testable.
	AllMatches
)

// Linker scans message bodies for media mentions and resolves them
// against a conversation's extracted files.
type Linker struct {
	strategy Strategy
	pattern  *regexp.Regexp
}

// NewLinker builds a linker using the current extension table. Tokens
// recognized: camera/voice/video filename prefixes (IMG-, VID-, AUD-,
// PTT-) followed by a name and extension, the omitted-media placeholder,
// and any bare recognized dot-extension.
func NewLinker(strategy Strategy) *Linker {
	alternation := strings.Join(Extensions(), "|")
	return &Linker{
		strategy: strategy,
		pattern: regexp.MustCompile(
			`(?i)(?:IMG-|VID-|AUD-|PTT-)[\w-]+\.\w+|` +
				regexp.QuoteMeta(Placeholder) +
				`|\.(?:` + alternation + `)`),
	}
}

// Link resolves the body's media tokens against files. Matching is a
// deliberately loose bidirectional substring test: the filename may
// contain the token or the token the filename, since transcript mentions
// and extracted names often differ by suffixes or truncation. A miss is
// normal and returns nil.
func (l *Linker) Link(body string, files map[string]*models.Media) []*models.Media {
	if len(files) == 0 {
		return nil
	}

	tokens := l.pattern.FindAllString(body, -1)
	if len(tokens) == 0 {
		return nil
	}

	// Sorted names keep match choice deterministic across runs.
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		matched []*models.Media
		seen    map[string]bool
	)
	for _, token := range tokens {
		// The placeholder names no file; the empty token matches any.
		token = strings.ReplaceAll(token, Placeholder, "")

		for _, name := range names {
			if !strings.Contains(name, token) && !strings.Contains(token, name) {
				continue
			}
			if l.strategy == FirstMatch {
				return []*models.Media{files[name]}
			}
			if seen == nil {
				seen = make(map[string]bool)
			}
			if !seen[name] {
				seen[name] = true
				matched = append(matched, files[name])
			}
			break
		}
	}

	return matched
}

// Attach links each message's body against files and records at most one
// media per message under the FirstMatch strategy (the first element of
// the match set otherwise). Messages without a match keep a nil Media.
func (l *Linker) Attach(msgs []models.Message, files map[string]*models.Media) int {
	linked := 0
	for i := range msgs {
		if matches := l.Link(msgs[i].Text, files); len(matches) > 0 {
			msgs[i].Media = matches[0]
			linked++
		}
	}
	return linked
}
