package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/retouch/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetInfo())
			return nil
		},
	}
}
