package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <role> <message...>",
		Short: "Run a single turn for a role and print the generated text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cfg).WithRole(args[0])
			mesh, err := buildMesh(cfg, logger, nil)
			if err != nil {
				return err
			}
			done := logger.StartTimer("chat")
			defer done()
			out, err := mesh.Run(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
