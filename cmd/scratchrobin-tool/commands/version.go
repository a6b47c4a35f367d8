// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/scratchrobin/scratchrobin/cmd/scratchrobin-tool/cli"
	"github.com/scratchrobin/scratchrobin/lib/version"
)

type versionParams struct {
	cli.JSONOutput
	Digest bool `json:"digest" flag:"digest" desc:"also print the SHA-256 of the running binary"`
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	Binary    string `json:"binary,omitempty"`
	Digest    string `json:"digest,omitempty"`
}

func versionCommand(env Env) *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(args []string) error {
			info := versionInfo{
				Version:   version.Short(),
				Commit:    version.Commit(),
				BuildTime: version.BuildTime,
			}
			if params.Digest {
				digest, path, err := version.SelfDigest()
				if err != nil {
					return err
				}
				info.Binary, info.Digest = path, digest
			}
			if done, err := params.EmitJSON(env.Stdout, info); done {
				return err
			}
			fmt.Fprintf(env.Stdout, "scratchrobin-tool %s\n", version.Full())
			if info.Digest != "" {
				fmt.Fprintf(env.Stdout, "  Binary: %s\n  SHA-256: %s\n", info.Binary, info.Digest)
			}
			return nil
		},
	}
}
