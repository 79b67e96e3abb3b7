// Package cmd holds the quadview command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/quadview/pkg/config"
	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/philipparndt/quadview/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "quadview",
		Short: "Four-pane viewport interaction toolkit",
		Long: `quadview drives the camera, projection, gizmo and snapping core of a
four-pane 3D editor (perspective, top, front, side) from the command line.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts.logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (.toml, .yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newProjectCmd(opts),
		newSnapCmd(opts),
		newHitCmd(opts),
		newInfoCmd(),
		newConfigCmd(opts),
	)
	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("config loaded", "file", o.configPath, "grid_size", cfg.GridSize)
	return cfg, nil
}

// parseVector parses "x,y,z"
func parseVector(s string) (geometry.Vector3, error) {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	if len(parts) != 3 {
		return geometry.Vector3{}, fmt.Errorf("invalid vector %q: expected x,y,z", s)
	}

	var xyz [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid vector %q: %w", s, err)
		}
		xyz[i] = v
	}
	return geometry.NewVector3(xyz[0], xyz[1], xyz[2]), nil
}
