// Command relata inspects host snapshot files produced by the snapshot
// package.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/comalice/relata/snapshot"
)

const version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:           "relata",
		Short:         "Inspect relata host snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(inspectCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func inspectCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect <snapshot-file>",
		Short: "Print the relations recorded in a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				out, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal snapshot: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "host %s (frozen=%v, captured %s)\n",
				snap.HostID, snap.Frozen, snap.Timestamp.Format("2006-01-02 15:04:05"))
			names := make([]string, 0, len(snap.Relations))
			for name := range snap.Relations {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-32s %v\n", name, snap.Relations[name])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the relata version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func readSnapshot(path string) (snapshot.HostSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return snapshot.HostSnapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	var snap snapshot.HostSnapshot
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return snapshot.HostSnapshot{}, fmt.Errorf("yaml unmarshal %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &snap); err != nil {
			return snapshot.HostSnapshot{}, fmt.Errorf("json unmarshal %s: %w", path, err)
		}
	}
	return snap, nil
}
