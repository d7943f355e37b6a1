package media

import (
	"testing"

	"github.com/mkeller/chatvault/internal/models"
)

func mediaMap(names ...string) map[string]*models.Media {
	files := make(map[string]*models.Media, len(names))
	for _, name := range names {
		files[name] = &models.Media{Name: name, Kind: Classify(name)}
	}
	return files
}

func TestLink_OmittedPlaceholder(t *testing.T) {
	files := mediaMap("IMG-20230101-WA0001.jpg")

	matches := NewLinker(FirstMatch).Link("<Media omitted>", files)

	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Name != "IMG-20230101-WA0001.jpg" {
		t.Errorf("matched %q", matches[0].Name)
	}
}

func TestLink_NoToken(t *testing.T) {
	files := mediaMap("IMG-20230101-WA0001.jpg")

	if matches := NewLinker(FirstMatch).Link("just a plain text message", files); matches != nil {
		t.Errorf("got %d matches, want none", len(matches))
	}
}

func TestLink_PrefixToken(t *testing.T) {
	files := mediaMap("IMG-20230101-WA0001.jpg", "VID-20230202-WA0007.mp4")

	matches := NewLinker(FirstMatch).Link("VID-20230202-WA0007.mp4 (file attached)", files)

	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Name != "VID-20230202-WA0007.mp4" {
		t.Errorf("matched %q, want the video", matches[0].Name)
	}
}

func TestLink_BareExtensionToken(t *testing.T) {
	files := mediaMap("holiday-photo.jpg")

	matches := NewLinker(FirstMatch).Link("check holiday-photo.jpg out", files)

	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
}

func TestLink_SubstringBothDirections(t *testing.T) {
	// Mention text and extracted names often differ by suffixes or
	// truncation; matching is substring in either direction.
	tests := []struct {
		name      string
		body      string
		mediaName string
	}{
		{"media name contains token", "PTT-20240115-WA0000.opus", "PTT-20240115-WA0000.opus.renamed.opus"},
		{"token contains media name", "sent you IMG-20230101-WA0001.jpg earlier", "WA0001.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := mediaMap(tt.mediaName)
			matches := NewLinker(FirstMatch).Link(tt.body, files)
			if len(matches) != 1 {
				t.Fatalf("got %d matches, want 1", len(matches))
			}
		})
	}
}

func TestLink_FirstMatchStops(t *testing.T) {
	files := mediaMap("IMG-20230101-WA0001.jpg", "IMG-20230101-WA0002.jpg")
	body := "IMG-20230101-WA0001.jpg and IMG-20230101-WA0002.jpg"

	matches := NewLinker(FirstMatch).Link(body, files)

	// One attachment per message even when the body references several.
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Name != "IMG-20230101-WA0001.jpg" {
		t.Errorf("matched %q, want the first file", matches[0].Name)
	}
}

func TestLink_AllMatchesStrategy(t *testing.T) {
	files := mediaMap("IMG-20230101-WA0001.jpg", "IMG-20230101-WA0002.jpg")
	body := "IMG-20230101-WA0001.jpg and IMG-20230101-WA0002.jpg"

	matches := NewLinker(AllMatches).Link(body, files)

	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
}

func TestLink_EmptyMediaMap(t *testing.T) {
	if matches := NewLinker(FirstMatch).Link("<Media omitted>", nil); matches != nil {
		t.Errorf("got matches from empty map")
	}
}

func TestAttach(t *testing.T) {
	files := mediaMap("IMG-20230101-WA0001.jpg")
	msgs := []models.Message{
		{Text: "IMG-20230101-WA0001.jpg (file attached)"},
		{Text: "no media here"},
	}

	linked := NewLinker(FirstMatch).Attach(msgs, files)

	if linked != 1 {
		t.Fatalf("linked = %d, want 1", linked)
	}
	if msgs[0].Media == nil || msgs[0].Media.Name != "IMG-20230101-WA0001.jpg" {
		t.Errorf("msgs[0].Media = %+v", msgs[0].Media)
	}
	if msgs[1].Media != nil {
		t.Errorf("msgs[1].Media = %+v, want nil", msgs[1].Media)
	}
}
