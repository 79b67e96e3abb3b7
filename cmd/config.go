package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/quadview/pkg/config"
	"github.com/spf13/cobra"
)

// DefaultConfigFile is used by "config init" without a path
const DefaultConfigFile = "quadview.toml"

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the editor configuration",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}

			if err := config.Default().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	var format string
	showCmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print the effective configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := root.configPath
			if len(args) == 1 {
				path = args[0]
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			f := format
			if f == "" {
				f = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
				if f == "yml" {
					f = "yaml"
				}
				if f != "yaml" {
					f = "toml"
				}
			}
			return cfg.Encode(cmd.OutOrStdout(), f)
		},
	}
	showCmd.Flags().StringVar(&format, "format", "", "output format: toml or yaml (default: from path)")

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
