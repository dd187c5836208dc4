// Package main is the entry point for the scriptmesh CLI.
package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/scriptmesh/core"
	"github.com/spf13/cobra"
)

// Set by release ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scriptmesh",
		Short:         "Role-based script writing pipeline with per-role session memory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "Path to configuration file")
	root.AddCommand(versionCmd(), serveCmd(), chatCmd(), rolesCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scriptmesh %s (commit: %s)\n", version, commit)
		},
	}
}

func rolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List pipeline roles and where their context comes from",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			graph, err := buildGraph(cfg, newLogger(cfg))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, role := range core.Roles() {
				up := graph.UpstreamOf(role)
				if len(up) == 0 {
					fmt.Fprintf(out, "%s\n", role)
					continue
				}
				fmt.Fprintf(out, "%s <- %s\n", role, joinRoles(up))
			}
			return nil
		},
	}
}
