// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/scratchrobin/scratchrobin/cmd/scratchrobin-tool/cli"
	"github.com/scratchrobin/scratchrobin/lib/packaging"
)

func specsetCommand(env Env) *cli.Command {
	return &cli.Command{
		Name:    "specset",
		Summary: "Discover and load specification set packages",
		Subcommands: []*cli.Command{
			specsetDiscoverCommand(env),
			specsetLoadCommand(env),
			specsetCheckPayloadCommand(env),
		},
	}
}

type discoverParams struct {
	configParams
	cli.JSONOutput
	SpecRoot string `json:"spec_root" flag:"spec-root" desc:"directory holding resources/specset_packages (default: paths.spec_root)"`
}

func specsetDiscoverCommand(env Env) *cli.Command {
	var params discoverParams

	return &cli.Command{
		Name:    "discover",
		Summary: "List the manifests of the three specification sets",
		Usage:   "scratchrobin-tool specset discover [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("discover", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			cfg, logger, err := params.setup(env, "specset/discover")
			if err != nil {
				return fail(env, "specset discovery", err)
			}
			manifests, err := packaging.NewService(logger).DiscoverSpecsets(firstNonEmpty(params.SpecRoot, cfg.Paths.SpecRoot))
			if err != nil {
				return fail(env, "specset discovery", err)
			}
			if done, err := params.EmitJSON(env.Stdout, manifests); done {
				return err
			}
			for _, manifest := range manifests {
				fmt.Fprintln(env.Stdout, manifest)
			}
			return nil
		},
	}
}

type loadParams struct {
	configParams
	cli.JSONOutput
}

func specsetLoadCommand(env Env) *cli.Command {
	var params loadParams

	return &cli.Command{
		Name:    "load",
		Summary: "Load a specset package and hash its normative files",
		Description: `Read a specset manifest, parse the package's authoritative inventory, and
hash every file it lists. Every listed file must exist inside the
package root.`,
		Usage: "scratchrobin-tool specset load <manifest> [--json]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("load", &params)
		},
		Run: func(args []string) error {
			if err := exactArgs(args, 1, "scratchrobin-tool specset load <manifest>"); err != nil {
				return err
			}
			_, logger, err := params.setup(env, "specset/load")
			if err != nil {
				return fail(env, "specset load", err)
			}
			rows, err := packaging.NewService(logger).LoadSpecsetPackage(args[0])
			if err != nil {
				return fail(env, "specset load", err)
			}
			if done, err := params.EmitJSON(env.Stdout, rows); done {
				return err
			}
			tw := tabwriter.NewWriter(env.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SET\tPATH\tSIZE\tSHA256")
			for _, row := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", row.SetID, row.RelativePath, row.SizeBytes, row.ContentHash)
			}
			return tw.Flush()
		},
	}
}

func specsetCheckPayloadCommand(env Env) *cli.Command {
	var params configParams

	return &cli.Command{
		Name:    "check-payload",
		Summary: "Validate an exported spec workspace payload",
		Usage:   "scratchrobin-tool specset check-payload <payload.json>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("check-payload", &params)
		},
		Run: func(args []string) error {
			if err := exactArgs(args, 1, "scratchrobin-tool specset check-payload <payload.json>"); err != nil {
				return err
			}
			_, logger, err := params.setup(env, "specset/check-payload")
			if err != nil {
				return fail(env, "specset payload validation", err)
			}
			if err := packaging.NewService(logger).ValidateSpecsetPayloadFile(args[0]); err != nil {
				return fail(env, "specset payload validation", err)
			}
			fmt.Fprintln(env.Stdout, `{"ok":true}`)
			return nil
		},
	}
}
