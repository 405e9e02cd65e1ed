// Package store holds the in-memory working timeline and its
// serialized forms.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arajah/artimeline/internal/domain"
	"github.com/google/uuid"
)

// ErrTitleRequired rejects events saved without a title, the only
// field validated at the store boundary.
var ErrTitleRequired = errors.New("title is required")

// Store owns the event collection for one session. Collection order
// carries no meaning; display order comes from the query package.
type Store struct {
	events []domain.Event
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Len reports the number of events.
func (s *Store) Len() int {
	return len(s.events)
}

// Events returns a fresh copy of the collection. Callers may reorder or
// filter it freely without touching the store.
func (s *Store) Events() []domain.Event {
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Get looks up an event by id.
func (s *Store) Get(id string) (domain.Event, bool) {
	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Event{}, false
}

// Add fills template defaults, assigns a fresh id and appends the
// event. The given event's ID field is ignored.
func (s *Store) Add(ev domain.Event) (domain.Event, error) {
	ev = ev.Canonical()
	if ev.Title == "" {
		return domain.Event{}, ErrTitleRequired
	}
	ev.ID = uuid.New().String()
	if ev.Characters == nil {
		ev.Characters = domain.StringList{}
	}
	if ev.Categories == nil {
		ev.Categories = domain.StringList{}
	}
	s.events = append(s.events, ev)
	return ev, nil
}

// Update replaces every field of the event with the given id, keeping
// the id itself. A missing id is a no-op reported through the boolean;
// whether that is surfaced to the user is the caller's call.
func (s *Store) Update(id string, ev domain.Event) (bool, error) {
	ev = ev.Canonical()
	if ev.Title == "" {
		return false, ErrTitleRequired
	}
	for i := range s.events {
		if s.events[i].ID == id {
			ev.ID = id
			if ev.Characters == nil {
				ev.Characters = domain.StringList{}
			}
			if ev.Categories == nil {
				ev.Categories = domain.StringList{}
			}
			s.events[i] = ev
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the event with the given id. Absence is tolerated.
func (s *Store) Delete(id string) bool {
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceAll discards the collection and installs events verbatim.
// Bulk-loaded records are not validated; consumers treat missing
// fields as their zero values.
func (s *Store) ReplaceAll(events []domain.Event) {
	s.events = make([]domain.Event, len(events))
	copy(s.events, events)
}

// Serialize renders the full collection as a 2-space-indented JSON
// array, the portable save format.
func (s *Store) Serialize() ([]byte, error) {
	if s.events == nil {
		return []byte("[]"), nil
	}
	data, err := json.MarshalIndent(s.events, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize timeline: %w", err)
	}
	return data, nil
}

// Deserialize replaces the collection with the decoded payload. The
// payload must be a JSON array of event-shaped objects; anything else
// is rejected and the store is left untouched.
func (s *Store) Deserialize(data []byte) error {
	var events []domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("invalid timeline data: expected a JSON array of events: %w", err)
	}
	// json.Unmarshal accepts "null" without touching the slice; a null
	// payload is not a list and gets rejected like any other shape.
	if events == nil {
		return errors.New("invalid timeline data: expected a JSON array of events")
	}
	s.events = events
	return nil
}

// LoadFile reads the working timeline from disk. A missing file means
// an empty timeline, not an error.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.events = nil
			return nil
		}
		return fmt.Errorf("read timeline: %w", err)
	}
	return s.Deserialize(data)
}

// SaveFile writes the working timeline to disk, creating the parent
// directory if needed.
func (s *Store) SaveFile(path string) error {
	data, err := s.Serialize()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write timeline: %w", err)
	}
	return nil
}
