package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/retouch/internal/color"
)

func newColorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color <hex|name>...",
		Short: "Print the retouched hex of each color",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				c, err := parseColor(arg)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", arg, color.Retouch(c).Hex())
			}
			return nil
		},
	}
}

func parseColor(s string) (color.Color, error) {
	if strings.HasPrefix(s, "#") {
		return color.ParseHex(s)
	}
	return color.Named(s)
}
