// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the scratchrobin-tool command tree.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scratchrobin/scratchrobin/cmd/scratchrobin-tool/cli"
	"github.com/scratchrobin/scratchrobin/lib/config"
)

// Env is the process context commands run in.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer

	// WorkingDir and Executable locate the repository when no
	// configuration file is given.
	WorkingDir string
	Executable string
}

// Root builds the complete command tree.
func Root(env Env) *cli.Command {
	return &cli.Command{
		Name: "scratchrobin-tool",
		Description: `scratchrobin-tool: ScratchRobin release and packaging checks.

Evaluates release gates against the blocker register, validates package
profile manifests and packaged artifacts, inspects project containers,
and loads specset packages.`,
		HelpOutput: env.Stderr,
		Subcommands: []*cli.Command{
			releaseCommand(env),
			packageCommand(env),
			projectCommand(env),
			specsetCommand(env),
			versionCommand(env),
		},
	}
}

// Run translates legacy flag forms, executes the tree, and returns the
// process exit status.
func Run(env Env, args []string) int {
	err := Root(env).Execute(TranslateLegacyArgs(args))
	if err == nil {
		return cli.ExitOK
	}
	// Commands that already printed their own output return an
	// ExitError with the desired code.
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	fmt.Fprintf(env.Stderr, "error: %v\n", err)
	return cli.ExitFailure
}

// configParams is embedded by every command that reads configuration.
type configParams struct {
	ConfigPath string `json:"config"    flag:"config"    desc:"configuration file (default: $SCRATCHROBIN_CONFIG, then repository defaults)"`
	LogLevel   string `json:"log_level" flag:"log-level" desc:"override logging.level (debug, info, warn, error)"`
}

// load resolves the configuration: --config, then SCRATCHROBIN_CONFIG,
// then defaults rooted at the discovered repository.
func (p *configParams) load(env Env) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case p.ConfigPath != "":
		loaded, err := config.LoadFile(p.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case os.Getenv(config.EnvConfigPath) != "":
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		cfg = config.ForRepo(config.FindRepoRoot(env.WorkingDir, env.Executable))
	}
	if p.LogLevel != "" {
		cfg.Logging.Level = p.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup loads configuration and builds the command logger.
func (p *configParams) setup(env Env, command string) (*config.Config, *slog.Logger, error) {
	cfg, err := p.load(env)
	if err != nil {
		return nil, nil, err
	}
	logger, err := cli.NewCommandLogger(env.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.With("command", command), nil
}

// fail prints "<context> failed: <err>" and returns the exit error
// main turns into status 2.
func fail(env Env, context string, err error) error {
	fmt.Fprintf(env.Stderr, "%s failed: %v\n", context, err)
	return &cli.ExitError{Code: cli.ExitFailure}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func exactArgs(args []string, count int, usage string) error {
	if len(args) != count {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}
