package main

import (
	"fmt"
	"strings"

	"github.com/arajah/artimeline/internal/domain"
	"github.com/arajah/artimeline/internal/query"
	"github.com/spf13/cobra"
)

// eventFlags binds the add/edit form fields.
type eventFlags struct {
	story      string
	era        string
	start      string
	end        string
	dateText   string
	characters string
	categories string
	notes      string
	sortIndex  int
}

func (f *eventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.story, "story", "", "story the event belongs to (e.g., Overmorrow)")
	cmd.Flags().StringVar(&f.era, "era", "", "era label")
	cmd.Flags().StringVar(&f.start, "start", "", "start date (YYYY or YYYY-MM or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "end date (optional, same format)")
	cmd.Flags().StringVar(&f.dateText, "date-text", "", "freeform date label (e.g., 'Spring 1842')")
	cmd.Flags().StringVar(&f.characters, "characters", "", "comma-separated character names")
	cmd.Flags().StringVar(&f.categories, "categories", "", "comma-separated categories/tags")
	cmd.Flags().StringVar(&f.notes, "notes", "", "plot summary / notes")
	cmd.Flags().IntVar(&f.sortIndex, "sort-index", 0, "tie-breaker for events sharing a date")
}

// apply copies the flags the user actually set onto the event.
func (f *eventFlags) apply(cmd *cobra.Command, ev *domain.Event) {
	if cmd.Flags().Changed("story") {
		ev.Story = f.story
	}
	if cmd.Flags().Changed("era") {
		ev.Era = f.era
	}
	if cmd.Flags().Changed("start") {
		ev.StartDate = f.start
	}
	if cmd.Flags().Changed("end") {
		ev.EndDate = f.end
	}
	if cmd.Flags().Changed("date-text") {
		ev.DateText = f.dateText
	}
	if cmd.Flags().Changed("characters") {
		ev.Characters = domain.Split(f.characters)
	}
	if cmd.Flags().Changed("categories") {
		ev.Categories = domain.Split(f.categories)
	}
	if cmd.Flags().Changed("notes") {
		ev.Notes = f.notes
	}
	if cmd.Flags().Changed("sort-index") {
		ev.SortIndex = f.sortIndex
	}
}

func addCmd() *cobra.Command {
	var flags eventFlags

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new event",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := loadStore(cfg)
			if err != nil {
				return err
			}

			ev := domain.Template()
			ev.Title = strings.Join(args, " ")
			flags.apply(cmd, &ev)

			created, err := s.Add(ev)
			if err != nil {
				return err
			}
			if err := s.SaveFile(cfg.Data); err != nil {
				return err
			}

			fmt.Printf("Added event: %s\n", shortID(created.ID))
			fmt.Printf("Title: %s\n", truncate(created.Title, 80))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// criteriaFlags binds the filter dropdowns plus keyword search.
func criteriaFlags(cmd *cobra.Command, crit *query.Criteria) {
	cmd.Flags().StringVar(&crit.Story, "story", "", "filter by exact story")
	cmd.Flags().StringVar(&crit.Era, "era", "", "filter by exact era")
	cmd.Flags().StringVar(&crit.Character, "character", "", "filter by character (case-insensitive)")
	cmd.Flags().StringVar(&crit.Category, "category", "", "filter by category (case-insensitive)")
	cmd.Flags().StringVarP(&crit.Keyword, "search", "k", "", "keyword search across all text fields")
}

func listCmd() *cobra.Command {
	var crit query.Criteria

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, filtered and in timeline order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := loadStore(cfg)
			if err != nil {
				return err
			}

			events := query.Sort(query.Filter(s.Events(), crit))
			if len(events) == 0 {
				if crit.IsZero() {
					fmt.Println("No events yet. Use 'artimeline add' to create one.")
				} else {
					fmt.Println("No events match your filters.")
				}
				return nil
			}

			for _, e := range events {
				fmt.Printf("%s  %-20s  %s\n", shortID(e.ID), truncate(dateLabel(e), 20), truncate(e.Title, 50))
			}
			return nil
		},
	}

	criteriaFlags(cmd, &crit)
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show event details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := loadStore(cfg)
			if err != nil {
				return err
			}

			id, ok := resolveID(s, args[0])
			if !ok {
				return fmt.Errorf("event not found: %s", args[0])
			}
			e, _ := s.Get(id)

			fmt.Printf("ID:         %s\n", e.ID)
			fmt.Printf("Title:      %s\n", e.Title)
			fmt.Printf("Story:      %s\n", orDash(e.Story))
			fmt.Printf("Era:        %s\n", orDash(e.Era))
			fmt.Printf("Start:      %s\n", orDash(e.StartDate))
			fmt.Printf("End:        %s\n", orDash(e.EndDate))
			fmt.Printf("Date Label: %s\n", orDash(e.DateText))
			fmt.Printf("Characters: %s\n", orDash(domain.Join(e.Characters)))
			fmt.Printf("Categories: %s\n", orDash(domain.Join(e.Categories)))
			fmt.Printf("Sort Index: %d\n", e.SortIndex)
			if strings.TrimSpace(e.Notes) != "" {
				fmt.Printf("Notes:\n%s\n", e.Notes)
			}
			return nil
		},
	}
}

func editCmd() *cobra.Command {
	var flags eventFlags
	var title string

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit an event (unset flags keep their current values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := loadStore(cfg)
			if err != nil {
				return err
			}

			id, ok := resolveID(s, args[0])
			if !ok {
				if cfg.Strict {
					return fmt.Errorf("event not found: %s", args[0])
				}
				return nil
			}

			ev, _ := s.Get(id)
			if cmd.Flags().Changed("title") {
				ev.Title = title
			}
			flags.apply(cmd, &ev)

			if _, err := s.Update(id, ev); err != nil {
				return err
			}
			if err := s.SaveFile(cfg.Data); err != nil {
				return err
			}

			fmt.Printf("Updated event: %s\n", shortID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "event title")
	flags.register(cmd)
	return cmd
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := loadStore(cfg)
			if err != nil {
				return err
			}

			id, ok := resolveID(s, args[0])
			if !ok {
				if cfg.Strict {
					return fmt.Errorf("event not found: %s", args[0])
				}
				return nil
			}

			s.Delete(id)
			if err := s.SaveFile(cfg.Data); err != nil {
				return err
			}

			fmt.Printf("Deleted event: %s\n", shortID(id))
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
