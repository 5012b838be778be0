// Package cmd holds the nebula command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nebula/app"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nebula",
		Short:   "A terminal chat client",
		Long:    `Nebula is a keyboard-driven terminal chat client with configurable key bindings.`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.Bootstrap()
			if err != nil {
				return fmt.Errorf("starting nebula: %w", err)
			}
			return application.Run()
		},
	}

	cmd.AddCommand(newKeysCmd())
	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
