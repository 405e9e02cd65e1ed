// Package chart projects events onto a time axis for Gantt-style views.
package chart

import (
	"time"

	"github.com/arajah/artimeline/internal/dates"
	"github.com/arajah/artimeline/internal/domain"
)

// Uncategorized labels rows whose event carries no categories.
const Uncategorized = "Uncategorized"

// Row is one bar on the timeline chart. Story is the grouping lane,
// Era is hover metadata.
type Row struct {
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Story    string    `json:"story"`
	Era      string    `json:"era"`
	Category string    `json:"category"`
}

// Project maps events to chart rows. Events without a parseable start
// date cannot be placed on the axis and are dropped; a missing or
// unparseable end date collapses the bar to its start.
func Project(events []domain.Event) []Row {
	rows := make([]Row, 0, len(events))
	for _, e := range events {
		start, ok := dates.Parse(e.StartDate)
		if !ok {
			continue
		}
		end, ok := dates.Parse(e.EndDate)
		if !ok {
			end = start
		}
		category := domain.Join(e.Categories)
		if category == "" {
			category = Uncategorized
		}
		rows = append(rows, Row{
			Title:    e.Title,
			Start:    start,
			End:      end,
			Story:    e.Story,
			Era:      e.Era,
			Category: category,
		})
	}
	return rows
}
