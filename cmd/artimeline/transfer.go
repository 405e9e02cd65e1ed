package main

import (
	"fmt"
	"os"

	"github.com/arajah/artimeline/internal/chart"
	"github.com/arajah/artimeline/internal/fetch"
	"github.com/arajah/artimeline/internal/query"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [path-or-url]",
		Short: "Replace the timeline with a JSON export",
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

			var data []byte
			if fetch.IsURL(args[0]) {
				data, err = fetch.Fetch(args[0])
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			// Rejecting a bad payload leaves the current timeline alone.
			if err := s.Deserialize(data); err != nil {
				return err
			}
			if err := s.SaveFile(cfg.Data); err != nil {
				return err
			}

			fmt.Printf("Loaded %d events.\n", s.Len())
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:       "export [json|csv]",
		Short:     "Export the timeline as JSON (lossless) or CSV (flat)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"json", "csv"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := loadStore(cfg)
			if err != nil {
				return err
			}

			switch args[0] {
			case "json":
				if out == "" {
					out = cfg.ExportBase + ".json"
				}
				data, err := s.Serialize()
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, data, 0644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
			case "csv":
				if out == "" {
					out = cfg.ExportBase + ".csv"
				}
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				defer f.Close()
				if err := s.WriteCSV(f); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown export format: %s", args[0])
			}

			fmt.Printf("Exported %d events to %s\n", s.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file path")
	return cmd
}

func chartCmd() *cobra.Command {
	var crit query.Criteria

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Draw the filtered timeline as a text Gantt chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := loadStore(cfg)
			if err != nil {
				return err
			}

			rows := chart.Project(query.Sort(query.Filter(s.Events(), crit)))
			return chart.Render(os.Stdout, rows)
		},
	}

	criteriaFlags(cmd, &crit)
	return cmd
}

func metaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meta",
		Short: "List the stories, eras, characters and categories in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := loadStore(cfg)
			if err != nil {
				return err
			}

			d := query.DistinctValues(s.Events())
			printSection := func(name string, values []string) {
				fmt.Printf("%s:\n", name)
				if len(values) == 0 {
					fmt.Println("  (none)")
					return
				}
				for _, v := range values {
					fmt.Printf("  - %s\n", v)
				}
			}

			printSection("Stories", d.Stories)
			printSection("Eras", d.Eras)
			printSection("Characters", d.Characters)
			printSection("Categories", d.Categories)
			return nil
		},
	}
}
