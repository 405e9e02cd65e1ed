package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arajah/artimeline/internal/archive"
	"github.com/arajah/artimeline/internal/config"
	"github.com/arajah/artimeline/internal/domain"
	"github.com/arajah/artimeline/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	dataPath string
)

func main() {
	// Default config location
	home, _ := os.UserHomeDir()
	defaultCfg := filepath.Join(home, ".artimeline", "config.yaml")

	rootCmd := &cobra.Command{
		Use:   "artimeline",
		Short: "Record and browse narrative timelines for fictional stories",
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "config file path")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "timeline data file (overrides config)")

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(rmCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(chartCmd())
	rootCmd.AddCommand(metaCmd())
	rootCmd.AddCommand(snapshotCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if dataPath != "" {
		cfg.Data = dataPath
	}
	return cfg, nil
}

// loadStore reads the working timeline into memory. A missing data
// file is an empty timeline.
func loadStore(cfg *config.Config) (*store.Store, error) {
	s := store.New()
	if err := s.LoadFile(cfg.Data); err != nil {
		return nil, err
	}
	return s, nil
}

func getArchive(cfg *config.Config) (*archive.Archive, error) {
	dir := filepath.Dir(cfg.Archive)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return archive.Open(cfg.Archive)
}

// resolveID matches an exact event id or a unique-enough prefix.
func resolveID(s *store.Store, ref string) (string, bool) {
	if _, ok := s.Get(ref); ok {
		return ref, true
	}
	for _, e := range s.Events() {
		if strings.HasPrefix(e.ID, ref) {
			return e.ID, true
		}
	}
	return "", false
}

// shortID abbreviates an id for display. Bulk-loaded records may carry
// short or empty ids, so this cannot assume a uuid.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "(no id)"
	}
	return id
}

// dateLabel picks what the card list shows next to the title.
func dateLabel(e domain.Event) string {
	if e.DateText != "" {
		return e.DateText
	}
	if e.StartDate != "" {
		return e.StartDate
	}
	return "No date"
}

func truncate(s string, max int) string {
	// Replace newlines with spaces for display
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
