// Package query filters and orders event collections for display.
package query

import (
	"sort"
	"strings"

	"github.com/arajah/artimeline/internal/dates"
	"github.com/arajah/artimeline/internal/domain"
)

// Criteria is a conjunction of optional predicates; an empty field
// means "don't filter on this".
type Criteria struct {
	Story     string // exact match, trimmed
	Era       string // exact match, trimmed
	Character string // case-insensitive membership
	Category  string // case-insensitive membership
	Keyword   string // case-insensitive substring across all text fields
}

// IsZero reports whether no predicate is set.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Filter returns the events matching every set predicate, in input order.
func Filter(events []domain.Event, c Criteria) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if matches(e, c) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e domain.Event, c Criteria) bool {
	if c.Story != "" && strings.TrimSpace(e.Story) != c.Story {
		return false
	}
	if c.Era != "" && strings.TrimSpace(e.Era) != c.Era {
		return false
	}
	if c.Character != "" && !containsFold(e.Characters, c.Character) {
		return false
	}
	if c.Category != "" && !containsFold(e.Categories, c.Category) {
		return false
	}
	if c.Keyword != "" {
		blob := strings.ToLower(strings.Join([]string{
			e.Title, e.DateText, e.Story, e.Era,
			domain.Join(e.Characters), domain.Join(e.Categories),
			e.Notes,
		}, " "))
		if !strings.Contains(blob, strings.ToLower(c.Keyword)) {
			return false
		}
	}
	return true
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// Sort returns a copy ordered by parsed start date (undated events
// last), then sort index, then case-insensitive title. Stable for
// full-key ties.
func Sort(events []domain.Event) []domain.Event {
	out := make([]domain.Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := dates.OrSentinel(out[i].StartDate), dates.OrSentinel(out[j].StartDate)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if out[i].SortIndex != out[j].SortIndex {
			return out[i].SortIndex < out[j].SortIndex
		}
		return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
	})
	return out
}

// Distinct holds the filterable value sets of a collection, each
// sorted and deduplicated. These drive the filter pickers.
type Distinct struct {
	Stories    []string `json:"stories"`
	Eras       []string `json:"eras"`
	Characters []string `json:"characters"`
	Categories []string `json:"categories"`
}

// DistinctValues collects the non-empty stories, eras, characters and
// categories present in the events.
func DistinctValues(events []domain.Event) Distinct {
	stories := map[string]bool{}
	eras := map[string]bool{}
	chars := map[string]bool{}
	cats := map[string]bool{}
	for _, e := range events {
		if s := strings.TrimSpace(e.Story); s != "" {
			stories[s] = true
		}
		if s := strings.TrimSpace(e.Era); s != "" {
			eras[s] = true
		}
		for _, c := range e.Characters {
			chars[c] = true
		}
		for _, c := range e.Categories {
			cats[c] = true
		}
	}
	return Distinct{
		Stories:    sortedKeys(stories),
		Eras:       sortedKeys(eras),
		Characters: sortedKeys(chars),
		Categories: sortedKeys(cats),
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
