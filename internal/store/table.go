package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/arajah/artimeline/internal/domain"
)

// Columns is the header of the flattened table view, in saved-format
// field order.
var Columns = []string{
	"id", "title", "date_text", "start_date", "end_date",
	"era", "story", "characters", "categories", "notes", "sort_index",
}

// Table flattens the collection for tabular export: list fields become
// comma-joined strings. One-way; CSV output is not re-importable.
func (s *Store) Table() [][]string {
	rows := make([][]string, 0, len(s.events))
	for _, e := range s.events {
		rows = append(rows, []string{
			e.ID,
			e.Title,
			e.DateText,
			e.StartDate,
			e.EndDate,
			e.Era,
			e.Story,
			domain.Join(e.Characters),
			domain.Join(e.Categories),
			e.Notes,
			strconv.Itoa(e.SortIndex),
		})
	}
	return rows
}

// WriteCSV writes the flattened table with a header row.
func (s *Store) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range s.Table() {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
