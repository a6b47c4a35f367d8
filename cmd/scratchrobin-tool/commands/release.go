// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/scratchrobin/scratchrobin/cmd/scratchrobin-tool/cli"
	"github.com/scratchrobin/scratchrobin/lib/gatehistory"
	"github.com/scratchrobin/scratchrobin/lib/release"
)

func releaseCommand(env Env) *cli.Command {
	return &cli.Command{
		Name:    "release",
		Summary: "Evaluate release gates and review past checks",
		Subcommands: []*cli.Command{
			gateCheckCommand(env),
			historyCommand(env),
		},
	}
}

type gateCheckParams struct {
	configParams
	cli.JSONOutput
	BlockerRegister string `json:"blocker_register" flag:"blocker-register" desc:"blocker register CSV (default: paths.blocker_register)"`
	HistoryDB       string `json:"history_db"       flag:"history-db"       desc:"record the verdict in this database (default: paths.history_db)"`
	AuditLog        string `json:"audit_log"        flag:"audit-log"        desc:"append an audit line per check; a failed append fails the check"`
}

func gateCheckCommand(env Env) *cli.Command {
	var params gateCheckParams

	return &cli.Command{
		Name:    "gate-check",
		Summary: "Decide whether the current build is promotable",
		Description: `Load the blocker register, validate every row, and evaluate the phase
acceptance and RC entry gates.

Exit status is 0 when both gates pass, 3 when either gate is blocked,
and 2 when the register cannot be read or fails validation. With --json
the verdict is printed as a single line of JSON.`,
		Usage: "scratchrobin-tool release gate-check [flags]",
		Examples: []cli.Example{
			{
				Description: "Check the default register",
				Command:     "scratchrobin-tool release gate-check",
			},
			{
				Description: "Machine-readable verdict for a CI job",
				Command:     "scratchrobin-tool release gate-check --json --blocker-register=BLOCKER_REGISTER.csv",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("gate-check", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			cfg, logger, err := params.setup(env, "release/gate-check")
			if err != nil {
				return fail(env, "release gate check", err)
			}
			register := firstNonEmpty(params.BlockerRegister, cfg.Paths.BlockerRegister)

			service := release.NewService(release.ServiceConfig{
				AuditLog: params.AuditLog,
				Logger:   logger,
			})
			verdict, err := service.CheckRegister(register)
			if err != nil {
				return fail(env, "release gate check", err)
			}

			cfg.Paths.HistoryDB = firstNonEmpty(params.HistoryDB, cfg.Paths.HistoryDB)
			if cfg.Paths.HistoryDB != "" {
				if err := cfg.EnsureHistoryDir(); err != nil {
					return fail(env, "release gate check", err)
				}
				entry, err := recordGateCheck(cfg.Paths.HistoryDB, register, verdict)
				if err != nil {
					return fail(env, "release gate check", err)
				}
				logger.Debug("gate check recorded", "history_db", cfg.Paths.HistoryDB, "entry", entry.ID)
			}

			if params.OutputJSON {
				line, err := release.ExportPromotabilityJSON(verdict)
				if err != nil {
					return fail(env, "release gate check", err)
				}
				fmt.Fprintln(env.Stdout, line)
			} else {
				fmt.Fprint(env.Stdout, renderVerdict(env.Stdout, register, verdict))
			}

			if !verdict.Promotable {
				return &cli.ExitError{Code: cli.ExitNotPromotable}
			}
			return nil
		},
	}
}

func recordGateCheck(path, register string, verdict release.Promotability) (gatehistory.Entry, error) {
	store, err := gatehistory.Open(gatehistory.Config{Path: path})
	if err != nil {
		return gatehistory.Entry{}, err
	}
	entry, recordErr := store.Record(context.Background(), register, verdict)
	return entry, errors.Join(recordErr, store.Close())
}

type historyParams struct {
	configParams
	cli.JSONOutput
	HistoryDB string `json:"history_db" flag:"history-db" desc:"gate history database (default: paths.history_db)"`
	Limit     int    `json:"limit"      flag:"limit"      default:"20" desc:"maximum entries to show (0 for all)"`
}

func historyCommand(env Env) *cli.Command {
	var params historyParams

	return &cli.Command{
		Name:    "history",
		Summary: "List recorded gate checks, newest first",
		Usage:   "scratchrobin-tool release history [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("history", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			cfg, logger, err := params.setup(env, "release/history")
			if err != nil {
				return fail(env, "release history", err)
			}
			path := firstNonEmpty(params.HistoryDB, cfg.Paths.HistoryDB)
			if path == "" {
				return fail(env, "release history",
					errors.New("no history database configured (set paths.history_db or --history-db)"))
			}

			store, err := gatehistory.Open(gatehistory.Config{Path: path, Logger: logger})
			if err != nil {
				return fail(env, "release history", err)
			}
			defer store.Close()

			entries, err := store.List(context.Background(), params.Limit)
			if err != nil {
				return fail(env, "release history", err)
			}
			if done, err := params.EmitJSON(env.Stdout, entries); done {
				return err
			}
			return renderHistory(env.Stdout, entries)
		},
	}
}
