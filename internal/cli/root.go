// Package cli provides the sigtool command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mahdiidarabi/chainsig/internal/config"
)

// BuildInfo is set at build time via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	ConfigFile string
	Output     string
	Verbose    bool
	Quiet      bool
}

// app carries state shared by the subcommands once PersistentPreRunE has run.
type app struct {
	flags     GlobalFlags
	info      BuildInfo
	v         *viper.Viper
	cfg       *config.Config
	logger    zerolog.Logger
	logOutput io.Writer
}

func newApp(info BuildInfo) *app {
	return &app{
		info:      info,
		v:         config.New(),
		logger:    zerolog.Nop(),
		logOutput: os.Stderr,
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sigtool",
		Short: "Sign and verify with secp256k1 ECDSA and Ed25519",
		Long: `sigtool hashes, signs and verifies data with the chainsig primitives:
secp256k1 ECDSA (RFC 6979, low-S, recoverable) and Ed25519/Ed25519ph.

Public keys use the tagged text form "<curve>:<base58>"; secrets, signatures
and digests are hex.`,
		Version: formatVersion(a.info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.flags.ConfigFile, "config", "", "config file (default $HOME/"+config.DefaultFileName+")")
	flags.StringVarP(&a.flags.Output, "output", "o", config.OutputText, "output format (text|json)")
	flags.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&a.flags.Quiet, "quiet", "q", false, "log warnings and errors only")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	addHashCommand(cmd, a)
	addDeriveCommand(cmd, a)
	addSignCommand(cmd, a)
	addVerifyCommand(cmd, a)
	addBatchCommand(cmd, a)
	addVersionCommand(cmd, a)

	return cmd
}

// init binds flags, loads configuration and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	if err := a.v.BindPFlag("output", cmd.Root().PersistentFlags().Lookup("output")); err != nil {
		return errors.Wrap(err, "failed to bind flags")
	}
	cfg, err := config.Load(a.v, a.flags.ConfigFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(a.logOutput, cfg.Log.Level, a.flags.Verbose, a.flags.Quiet)
	a.logger.Debug().Str("output", cfg.Output).Str("command", cmd.Name()).Msg("configuration loaded")
	return nil
}

func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command.
func Execute(ctx context.Context, info BuildInfo) error {
	return newRootCmd(newApp(info)).ExecuteContext(ctx)
}
