package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Event is a single narrative occurrence on a story timeline.
//
// Only Title is required. StartDate and EndDate are expected to be
// ISO-ish ("1842", "1842-05" or "1842-05-17") but are stored as entered;
// consumers that need a calendar date parse them and tolerate failure.
// DateText is a freeform label like "Spring 1842" shown alongside.
type Event struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	DateText   string     `json:"date_text"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	Era        string     `json:"era"`
	Story      string     `json:"story"`
	Characters StringList `json:"characters"`
	Categories StringList `json:"categories"`
	Notes      string     `json:"notes"`
	SortIndex  int        `json:"sort_index"`
}

// Template returns an event with every field at its default value.
func Template() Event {
	return Event{
		Characters: StringList{},
		Categories: StringList{},
	}
}

// Canonical trims the freeform string fields and re-normalizes the list
// fields. The store applies this to events accepted through Add/Update;
// bulk-loaded records are kept verbatim.
func (e Event) Canonical() Event {
	e.Title = strings.TrimSpace(e.Title)
	e.DateText = strings.TrimSpace(e.DateText)
	e.StartDate = strings.TrimSpace(e.StartDate)
	e.EndDate = strings.TrimSpace(e.EndDate)
	e.Era = strings.TrimSpace(e.Era)
	e.Story = strings.TrimSpace(e.Story)
	e.Notes = strings.TrimSpace(e.Notes)
	e.Characters = Dedup(e.Characters)
	e.Categories = Dedup(e.Categories)
	return e
}

// StringList is an ordered list of distinct strings (characters, tags).
// It decodes from either a JSON array or a single comma-separated string,
// matching the saved formats found in the wild.
type StringList []string

// MarshalJSON always emits a JSON array, never null.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// UnmarshalJSON accepts an array of strings, an array of arbitrary
// values (stringified), a comma-separated string, or null.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		*l = ss
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Split(s)
		return nil
	}

	var anys []any
	if err := json.Unmarshal(data, &anys); err == nil {
		out := make([]string, 0, len(anys))
		for _, v := range anys {
			out = append(out, fmt.Sprint(v))
		}
		*l = out
		return nil
	}

	if string(data) == "null" {
		*l = nil
		return nil
	}

	return fmt.Errorf("string list: cannot decode %s", data)
}
