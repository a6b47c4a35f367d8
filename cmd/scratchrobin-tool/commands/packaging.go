// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/scratchrobin/scratchrobin/cmd/scratchrobin-tool/cli"
	"github.com/scratchrobin/scratchrobin/lib/packaging"
)

func packageCommand(env Env) *cli.Command {
	return &cli.Command{
		Name:    "package",
		Summary: "Validate package manifests and packaged artifacts",
		Subcommands: []*cli.Command{
			validateManifestCommand(env),
			checkArtifactsCommand(env),
			buildHashCommand(env),
		},
	}
}

type validateManifestParams struct {
	configParams
	SurfaceRegistry string `json:"surface_registry" flag:"surface-registry" desc:"surface id registry JSON (default: paths.surface_registry)"`
	ManifestSchema  string `json:"manifest_schema"  flag:"manifest-schema"  desc:"profile manifest schema JSON (default: paths.manifest_schema)"`
}

func validateManifestCommand(env Env) *cli.Command {
	var params validateManifestParams

	return &cli.Command{
		Name:    "validate-manifest",
		Summary: "Validate a package profile manifest",
		Description: `Validate a package profile manifest against the surface id registry and
the backend enumeration of the manifest schema.

On success prints {"ok":true,"profile_id":"<profile>"} and exits 0.
On failure prints the reject to stderr and exits 2.`,
		Usage: "scratchrobin-tool package validate-manifest <manifest> [flags]",
		Examples: []cli.Example{
			{
				Description: "Validate the GA profile manifest",
				Command:     "scratchrobin-tool package validate-manifest resources/packaging/ga.manifest.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("validate-manifest", &params)
		},
		Run: func(args []string) error {
			if err := exactArgs(args, 1, "scratchrobin-tool package validate-manifest <manifest>"); err != nil {
				return err
			}
			cfg, logger, err := params.setup(env, "package/validate-manifest")
			if err != nil {
				return fail(env, "manifest validation", err)
			}

			service := packaging.NewService(logger)
			result, err := service.ValidateManifestFile(args[0],
				firstNonEmpty(params.SurfaceRegistry, cfg.Paths.SurfaceRegistry),
				firstNonEmpty(params.ManifestSchema, cfg.Paths.ManifestSchema))
			if err != nil {
				return fail(env, "manifest validation", err)
			}
			data, err := json.Marshal(result)
			if err != nil {
				return fail(env, "manifest validation", err)
			}
			fmt.Fprintln(env.Stdout, string(data))
			return nil
		},
	}
}

type checkArtifactsParams struct {
	configParams
	PackageRoot string `json:"package_root" flag:"package-root" desc:"tree holding the packaged files (default: paths.package_root)"`
}

func checkArtifactsCommand(env Env) *cli.Command {
	var params checkArtifactsParams

	return &cli.Command{
		Name:    "check-artifacts",
		Summary: "Check that every artifact a manifest names is packaged",
		Description: `Check that the five artifacts named by the manifest and the mandatory
license and documentation files exist under the package root.

On success prints {"ok":true} and exits 0. On failure prints the first
missing path to stderr and exits 2.`,
		Usage: "scratchrobin-tool package check-artifacts <manifest> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("check-artifacts", &params)
		},
		Run: func(args []string) error {
			if err := exactArgs(args, 1, "scratchrobin-tool package check-artifacts <manifest>"); err != nil {
				return err
			}
			cfg, logger, err := params.setup(env, "package/check-artifacts")
			if err != nil {
				return fail(env, "artifact validation", err)
			}

			service := packaging.NewService(logger)
			if err := service.CheckPackageArtifacts(args[0], firstNonEmpty(params.PackageRoot, cfg.Paths.PackageRoot)); err != nil {
				return fail(env, "artifact validation", err)
			}
			fmt.Fprintln(env.Stdout, `{"ok":true}`)
			return nil
		},
	}
}

func buildHashCommand(env Env) *cli.Command {
	return &cli.Command{
		Name:    "build-hash",
		Summary: "Print the canonical build hash of a commit id",
		Description: `Normalize a 40- or 64-character hex commit id (trimmed, lowercased) and
print the SHA-256 of the normalized id. This is the value a profile
manifest carries as build_hash.`,
		Usage: "scratchrobin-tool package build-hash <commit>",
		Examples: []cli.Example{
			{
				Description: "Hash the checked-out commit",
				Command:     "scratchrobin-tool package build-hash $(git rev-parse HEAD)",
			},
		},
		Run: func(args []string) error {
			if err := exactArgs(args, 1, "scratchrobin-tool package build-hash <commit>"); err != nil {
				return err
			}
			hash, err := packaging.NewService(nil).CanonicalBuildHash(args[0])
			if err != nil {
				return fail(env, "build hash", err)
			}
			fmt.Fprintln(env.Stdout, hash)
			return nil
		},
	}
}
