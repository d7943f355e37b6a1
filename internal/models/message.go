package models

// Message is one parsed transcript message. Date and Time keep the original
// transcript tokens; Timestamp is the normalized instant in epoch
// milliseconds. Text may span multiple lines when the transcript carried
// continuation lines. Media is nil unless the linker attached a match.
type Message struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
	Media     *Media `json:"media"`
}
