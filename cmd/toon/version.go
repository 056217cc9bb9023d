package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.toonfmt.dev/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "toon %s (%s, %s/%s, revision %s)\n",
				nonEmpty(version.Version, "dev"), version.GoVersion, version.GoOS, version.GoArch, version.Revision)

			return err
		},
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}
