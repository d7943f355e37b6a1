package parser

import (
	"strings"
	"testing"
	"time"
)

func TestParse_SingleMessage(t *testing.T) {
	msgs, stats := Parse("15/4/2023, 14:30 - Alice: Hello", fixedNow)

	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	m := msgs[0]
	if m.Sender != "Alice" {
		t.Errorf("Sender = %q, want Alice", m.Sender)
	}
	if m.Text != "Hello" {
		t.Errorf("Text = %q, want Hello", m.Text)
	}
	if m.Date != "15/4/2023" || m.Time != "14:30" {
		t.Errorf("original tokens = %q %q", m.Date, m.Time)
	}
	if want := localMillis(2023, time.April, 15, 14, 30); m.Timestamp != want {
		t.Errorf("Timestamp = %d, want %d", m.Timestamp, want)
	}
	if stats.Messages != 1 {
		t.Errorf("stats.Messages = %d, want 1", stats.Messages)
	}
}

func TestParse_LineFormats(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"ascii hyphen", "15/4/2023, 14:30 - Alice: Hello"},
		{"en dash", "15/4/2023, 14:30 – Alice: Hello"},
		{"em dash", "15/4/2023, 14:30 — Alice: Hello"},
		{"no comma after date", "15/4/2023 14:30 - Alice: Hello"},
		{"seconds and meridiem", "15/4/2023, 2:30:15 pm - Alice: Hello"},
		{"bracketed", "[15/4/2023, 14:30] Alice: Hello"},
		{"bracketed with seconds", "[15/4/2023, 14:30:22] Alice: Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, _ := Parse(tt.line, fixedNow)
			if len(msgs) != 1 {
				t.Fatalf("got %d messages, want 1", len(msgs))
			}
			if msgs[0].Sender != "Alice" || msgs[0].Text != "Hello" {
				t.Errorf("parsed %q / %q", msgs[0].Sender, msgs[0].Text)
			}
		})
	}
}

func TestParse_ContinuationLines(t *testing.T) {
	text := strings.Join([]string{
		"15/4/2023, 14:30 - Alice: first line",
		"second line",
		"third line",
	}, "\n")

	msgs, stats := Parse(text, fixedNow)

	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	want := "first line\nsecond line\nthird line"
	if msgs[0].Text != want {
		t.Errorf("Text = %q, want %q", msgs[0].Text, want)
	}
	if stats.ContinuationLines != 2 {
		t.Errorf("stats.ContinuationLines = %d, want 2", stats.ContinuationLines)
	}
}

func TestParse_BlankLinesSkipped(t *testing.T) {
	text := strings.Join([]string{
		"15/4/2023, 14:30 - Alice: first",
		"",
		"   ",
		"15/4/2023, 14:31 - Bob: second",
	}, "\n")

	msgs, _ := Parse(text, fixedNow)

	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	// Blank lines are neither continuations nor terminators.
	if msgs[0].Text != "first" {
		t.Errorf("Text = %q, want %q", msgs[0].Text, "first")
	}
}

func TestParse_LeadingContinuationDropped(t *testing.T) {
	text := strings.Join([]string{
		"orphan line before any message",
		"15/4/2023, 14:30 - Alice: Hello",
	}, "\n")

	msgs, stats := Parse(text, fixedNow)

	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].Text != "Hello" {
		t.Errorf("Text = %q, want Hello", msgs[0].Text)
	}
	if stats.DroppedLines != 1 {
		t.Errorf("stats.DroppedLines = %d, want 1", stats.DroppedLines)
	}
}

func TestParse_SortsByTimestamp(t *testing.T) {
	text := strings.Join([]string{
		"16/4/2023, 10:00 - Alice: later",
		"15/4/2023, 10:00 - Bob: earlier",
	}, "\n")

	msgs, _ := Parse(text, fixedNow)

	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Text != "earlier" || msgs[1].Text != "later" {
		t.Errorf("order = %q, %q", msgs[0].Text, msgs[1].Text)
	}
}

func TestParse_StableSortPreservesTies(t *testing.T) {
	// Minute resolution: all three share one timestamp and must keep
	// transcript order.
	text := strings.Join([]string{
		"15/4/2023, 14:30 - Alice: one",
		"15/4/2023, 14:30 - Bob: two",
		"15/4/2023, 14:30 - Alice: three",
	}, "\n")

	msgs, _ := Parse(text, fixedNow)

	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	for i, want := range []string{"one", "two", "three"} {
		if msgs[i].Text != want {
			t.Errorf("msgs[%d].Text = %q, want %q", i, msgs[i].Text, want)
		}
	}
}

func TestParse_TrimsSenderAndBody(t *testing.T) {
	msgs, _ := Parse("15/4/2023, 14:30 -   Alice  :   spaced out  ", fixedNow)

	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].Sender != "Alice" {
		t.Errorf("Sender = %q, want Alice", msgs[0].Sender)
	}
	if msgs[0].Text != "spaced out" {
		t.Errorf("Text = %q, want %q", msgs[0].Text, "spaced out")
	}
}

func TestParse_EmptyInput(t *testing.T) {
	msgs, stats := Parse("", fixedNow)
	if len(msgs) != 0 {
		t.Errorf("got %d messages, want 0", len(msgs))
	}
	if stats.Messages != 0 {
		t.Errorf("stats.Messages = %d, want 0", stats.Messages)
	}
}
