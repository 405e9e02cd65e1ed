package main

import (
	"fmt"
	"strings"

	"github.com/arajah/artimeline/internal/api"
	"github.com/spf13/cobra"
)

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save and restore named copies of the timeline",
	}

	cmd.AddCommand(snapshotSaveCmd())
	cmd.AddCommand(snapshotListCmd())
	cmd.AddCommand(snapshotRestoreCmd())
	cmd.AddCommand(snapshotRmCmd())
	return cmd
}

func snapshotSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [name]",
		Short: "Save the current timeline as a snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := loadStore(cfg)
			if err != nil {
				return err
			}

			payload, err := s.Serialize()
			if err != nil {
				return err
			}

			a, err := getArchive(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			snap, err := a.Save(name, payload, s.Len())
			if err != nil {
				return err
			}

			fmt.Printf("Saved snapshot %s (%q, %d events)\n", snap.ID[:8], snap.Name, snap.EventCount)
			return nil
		},
	}
}

func snapshotListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			a, err := getArchive(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			snaps, err := a.List()
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Println("No snapshots yet. Use 'artimeline snapshot save' to create one.")
				return nil
			}

			for _, s := range snaps {
				fmt.Printf("%s  %s  %4d events  %s\n",
					s.ID[:8], s.CreatedAt.Format("2006-01-02 15:04"), s.EventCount, s.Name)
			}
			return nil
		},
	}
}

func snapshotRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [name-or-id]",
		Short: "Replace the working timeline with a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			a, err := getArchive(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			payload, snap, err := a.Load(args[0])
			if err != nil {
				return err
			}

			s, err := loadStore(cfg)
			if err != nil {
				return err
			}
			// Same validation path as import.
			if err := s.Deserialize(payload); err != nil {
				return err
			}
			if err := s.SaveFile(cfg.Data); err != nil {
				return err
			}

			fmt.Printf("Restored snapshot %q (%d events)\n", snap.Name, s.Len())
			return nil
		},
	}
}

func snapshotRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [name-or-id]",
		Short: "Delete snapshots by name or id prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			a, err := getArchive(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.Delete(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d snapshot(s)\n", n)
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := loadStore(cfg)
			if err != nil {
				return err
			}

			listen := cfg.Listen
			if strings.TrimSpace(addr) != "" {
				listen = addr
			}

			server := api.New(s, cfg.Data, cfg.ExportBase, listen)
			return server.Run()
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "server address (overrides config)")
	return cmd
}
