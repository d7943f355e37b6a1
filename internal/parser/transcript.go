// Package parser turns raw chat-export transcripts into ordered message
// records.
package parser

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mkeller/chatvault/internal/models"
)

// The two line-start formats emitted by chat exports. The separator after
// the timestamp may be an ASCII hyphen, en-dash, or em-dash depending on
// export locale.
var linePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}),?\s+(\d{1,2}:\d{2}(?::\d{2})?(?:\s*[APap][Mm])?)\s*[-–—]\s*([^:]+):\s*(.*)$`),
	regexp.MustCompile(`^\[(\d{1,2}/\d{1,2}/\d{2,4}),?\s+(\d{1,2}:\d{2}(?::\d{2})?(?:\s*[APap][Mm])?)\]\s*([^:]+):\s*(.*)$`),
}

// Stats summarizes one transcript parse.
type Stats struct {
	Lines              int
	Messages           int
	ContinuationLines  int
	DroppedLines       int // continuation lines before the first message
	TimestampFallbacks int // malformed timestamps degraded to now()
}

// Parse splits a raw transcript into messages. Lines matching a known
// format start a new message; blank lines are skipped; anything else is a
// continuation of the preceding message, joined with a line break. The
// result is stable-sorted ascending by timestamp, so messages sharing a
// minute keep their transcript order.
func Parse(text string, now func() time.Time) ([]models.Message, Stats) {
	if now == nil {
		now = time.Now
	}

	var (
		msgs    []models.Message
		current *models.Message
		stats   Stats
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.TrimSpace(current.Text)
		msgs = append(msgs, *current)
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		stats.Lines++

		if strings.TrimSpace(line) == "" {
			continue
		}

		if date, clock, sender, body, ok := matchLine(line); ok {
			flush()

			ts, tsOK := ParseTimestamp(date, clock, now)
			if !tsOK {
				stats.TimestampFallbacks++
			}
			current = &models.Message{
				Date:      date,
				Time:      clock,
				Sender:    strings.TrimSpace(sender),
				Text:      strings.TrimSpace(body),
				Timestamp: ts,
			}
			continue
		}

		if current == nil {
			// Continuation with nothing to continue.
			stats.DroppedLines++
			continue
		}
		current.Text += "\n" + line
		stats.ContinuationLines++
	}
	flush()

	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp < msgs[j].Timestamp
	})

	stats.Messages = len(msgs)
	return msgs, stats
}

func matchLine(line string) (date, clock, sender, body string, ok bool) {
	for _, re := range linePatterns {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1], m[2], m[3], m[4], true
		}
	}
	return "", "", "", "", false
}
