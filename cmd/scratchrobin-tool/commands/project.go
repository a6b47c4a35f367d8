// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/scratchrobin/scratchrobin/cmd/scratchrobin-tool/cli"
	"github.com/scratchrobin/scratchrobin/lib/clock"
	"github.com/scratchrobin/scratchrobin/lib/codec"
	"github.com/scratchrobin/scratchrobin/lib/project"
	"github.com/scratchrobin/scratchrobin/lib/projectbin"
)

func projectCommand(env Env) *cli.Command {
	return &cli.Command{
		Name:    "project",
		Summary: "Create and check SRPJ project containers",
		Subcommands: []*cli.Command{
			projectInspectCommand(env),
			projectVerifyCommand(env),
			projectNewCommand(env),
		},
	}
}

// containerSummary is the inspect output.
type containerSummary struct {
	Path        string         `json:"path"`
	SizeBytes   int            `json:"size_bytes"`
	Version     string         `json:"version"`
	Fingerprint string         `json:"fingerprint"`
	Chunks      []chunkSummary `json:"chunks"`
	ProjectID   string         `json:"project_id"`
	Name        string         `json:"name"`
	Objects     int            `json:"objects"`
	Assets      []string       `json:"assets"`

	// Payloads holds CBOR diagnostic notation for PROJ and OBJS when
	// --diagnose is given.
	Payloads map[string]string `json:"payloads,omitempty"`
}

type chunkSummary struct {
	ID      string `json:"id"`
	Ordinal uint32 `json:"ordinal"`
	Offset  uint64 `json:"offset"`
	Length  uint64 `json:"length"`
	CRC     string `json:"crc32"`
}

type inspectParams struct {
	cli.JSONOutput
	Diagnose bool `json:"diagnose" flag:"diagnose" desc:"include the PROJ and OBJS payloads in CBOR diagnostic notation"`
}

func projectInspectCommand(env Env) *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show the header, chunks, and identity of a project file",
		Usage:   "scratchrobin-tool project inspect <file> [--diagnose] [--json]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("inspect", &params)
		},
		Run: func(args []string) error {
			if err := exactArgs(args, 1, "scratchrobin-tool project inspect <file>"); err != nil {
				return err
			}
			summary, err := inspectContainer(args[0], params.Diagnose)
			if err != nil {
				return fail(env, "project inspect", err)
			}
			if done, err := params.EmitJSON(env.Stdout, summary); done {
				return err
			}
			return renderContainer(env.Stdout, summary)
		},
	}
}

func inspectContainer(path string, diagnose bool) (containerSummary, error) {
	service := project.NewService(nil)
	loaded, err := service.LoadFile(path)
	if err != nil {
		return containerSummary{}, err
	}
	opened, err := service.Open(path)
	if err != nil {
		return containerSummary{}, err
	}

	summary := containerSummary{
		Path:        path,
		SizeBytes:   loaded.Size(),
		Version:     fmt.Sprintf("%d.%d", loaded.Header.Major, loaded.Header.Minor),
		Fingerprint: loaded.Fingerprint(),
		ProjectID:   opened.Document.ProjectID,
		Name:        opened.Document.Name,
		Objects:     len(opened.Catalog.Objects),
		Assets:      make([]string, 0, len(opened.Assets)),
	}
	for _, entry := range loaded.TOC {
		summary.Chunks = append(summary.Chunks, chunkSummary{
			ID:      entry.ID,
			Ordinal: entry.Ordinal,
			Offset:  entry.Offset,
			Length:  entry.Length,
			CRC:     fmt.Sprintf("%08x", entry.CRC),
		})
	}
	for id := range opened.Assets {
		summary.Assets = append(summary.Assets, id)
	}
	slices.Sort(summary.Assets)

	if diagnose {
		summary.Payloads = make(map[string]string)
		for _, id := range []string{projectbin.ChunkProject, projectbin.ChunkObjects} {
			payload, _ := loaded.Chunk(id)
			notation, err := codec.Diagnose(payload)
			if err != nil {
				return containerSummary{}, fmt.Errorf("diagnosing %s: %w", id, err)
			}
			summary.Payloads[id] = notation
		}
	}
	return summary, nil
}

func renderContainer(w io.Writer, summary containerSummary) error {
	fmt.Fprintf(w, "%s\n", summary.Path)
	fmt.Fprintf(w, "  project:     %s (%s)\n", summary.Name, summary.ProjectID)
	fmt.Fprintf(w, "  format:      SRPJ %s, %d bytes\n", summary.Version, summary.SizeBytes)
	fmt.Fprintf(w, "  fingerprint: %s\n", summary.Fingerprint)
	fmt.Fprintf(w, "  objects:     %d\n", summary.Objects)
	fmt.Fprintf(w, "\n")

	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  CHUNK\tORDINAL\tOFFSET\tLENGTH\tCRC32")
	for _, chunk := range summary.Chunks {
		fmt.Fprintf(tw, "  %s\t%d\t%d\t%d\t%s\n", chunk.ID, chunk.Ordinal, chunk.Offset, chunk.Length, chunk.CRC)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, id := range []string{projectbin.ChunkProject, projectbin.ChunkObjects} {
		if notation, ok := summary.Payloads[id]; ok {
			fmt.Fprintf(w, "\n%s:\n  %s\n", id, notation)
		}
	}
	return nil
}

func projectVerifyCommand(env Env) *cli.Command {
	return &cli.Command{
		Name:    "verify",
		Summary: "Verify a project file's structure and payloads",
		Description: `Load a project container, verify the header and every chunk checksum,
and decode and validate the project and object catalog payloads.

Prints "ok <fingerprint>" and exits 0 when the file is sound; prints the
reject and exits 2 otherwise.`,
		Usage: "scratchrobin-tool project verify <file>",
		Run: func(args []string) error {
			if err := exactArgs(args, 1, "scratchrobin-tool project verify <file>"); err != nil {
				return err
			}
			summary, err := inspectContainer(args[0], false)
			if err != nil {
				return fail(env, "project verify", err)
			}
			fmt.Fprintf(env.Stdout, "ok %s\n", summary.Fingerprint)
			return nil
		},
	}
}

type projectNewParams struct {
	configParams
	cli.JSONOutput
	Name        string `json:"name"        flag:"name"        desc:"project name (required)"`
	Owner       string `json:"owner"       flag:"owner"       desc:"governance owner (required)"`
	Compression string `json:"compression" flag:"compression" default:"zstd" desc:"asset compression: none, lz4, or zstd"`
	Notes       string `json:"notes"       flag:"notes"       desc:"file stored as the optional NOTE asset chunk"`
}

func projectNewCommand(env Env) *cli.Command {
	var params projectNewParams

	return &cli.Command{
		Name:    "new",
		Summary: "Create an empty project file",
		Description: `Write a new project container with a fresh project id, an empty object
catalog, and default configuration, then reload it to verify the write.`,
		Usage: "scratchrobin-tool project new <file> --name NAME --owner OWNER [flags]",
		Examples: []cli.Example{
			{
				Description: "Create a project with an attached notes file",
				Command:     "scratchrobin-tool project new inventory.srpj --name inventory --owner dba --notes NOTES.md",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("new", &params)
		},
		Run: func(args []string) error {
			if err := exactArgs(args, 1, "scratchrobin-tool project new <file> --name NAME --owner OWNER"); err != nil {
				return err
			}
			if params.Name == "" || params.Owner == "" {
				return fmt.Errorf("--name and --owner are required")
			}
			compression, err := project.ParseCompression(params.Compression)
			if err != nil {
				return err
			}
			_, logger, err := params.setup(env, "project/new")
			if err != nil {
				return fail(env, "project new", err)
			}

			created := project.Project{
				Document: project.NewDocument(params.Name, params.Owner, clock.Real()),
				Assets:   map[string][]byte{},
			}
			if params.Notes != "" {
				notes, err := os.ReadFile(params.Notes)
				if err != nil {
					return fail(env, "project new", err)
				}
				created.Assets[noteChunk] = notes
			}

			result, err := project.NewService(logger).Save(args[0], created, compression)
			if err != nil {
				return fail(env, "project new", err)
			}
			if done, err := params.EmitJSON(env.Stdout, result); done {
				return err
			}
			fmt.Fprintf(env.Stdout, "created %s (%s)\n  chunks: %v\n  fingerprint: %s\n",
				args[0], created.Document.ProjectID, result.LoadedChunks, result.Fingerprint)
			return nil
		},
	}
}

// noteChunk holds free-form project notes.
const noteChunk = "NOTE"
