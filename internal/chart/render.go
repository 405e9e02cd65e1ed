package chart

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 48

// Render draws the rows as a text Gantt chart, one lane per story in
// first-seen order. Bars are scaled to the full span of the rows.
func Render(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No chartable events: start dates must be YYYY, YYYY-MM or YYYY-MM-DD.")
		return err
	}

	min, max := rows[0].Start, rows[0].End
	for _, r := range rows {
		if r.Start.Before(min) {
			min = r.Start
		}
		if r.End.After(max) {
			max = r.End
		}
	}
	span := max.Sub(min)

	// Lanes keyed by story, first appearance first.
	var stories []string
	byStory := map[string][]Row{}
	for _, r := range rows {
		if _, ok := byStory[r.Story]; !ok {
			stories = append(stories, r.Story)
		}
		byStory[r.Story] = append(byStory[r.Story], r)
	}

	for _, story := range stories {
		label := story
		if label == "" {
			label = "(no story)"
		}
		if _, err := fmt.Fprintf(w, "%s\n", label); err != nil {
			return err
		}
		for _, r := range byStory[story] {
			from, to := 0, barWidth-1
			if span > 0 {
				from = int(float64(r.Start.Sub(min)) / float64(span) * float64(barWidth-1))
				to = int(float64(r.End.Sub(min)) / float64(span) * float64(barWidth-1))
			}
			if to < from {
				to = from
			}
			bar := strings.Repeat(" ", from) + strings.Repeat("#", to-from+1)
			dates := r.Start.Format("2006-01-02")
			if !r.End.Equal(r.Start) {
				dates += ".." + r.End.Format("2006-01-02")
			}
			if _, err := fmt.Fprintf(w, "  %-*s %s  %s [%s]\n", barWidth, bar, dates, r.Title, r.Category); err != nil {
				return err
			}
		}
	}
	return nil
}
