// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the variable Load reads.
const EnvConfigPath = "SCRATCHROBIN_CONFIG"

// Environment selects which override section applies.
type Environment string

const (
	Development Environment = "development"
	CI          Environment = "ci"
	Release     Environment = "release"
)

// Config is the scratchrobin-tool configuration.
type Config struct {
	Environment Environment `yaml:"environment"`

	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`

	Development *Overrides `yaml:"development,omitempty"`
	CI          *Overrides `yaml:"ci,omitempty"`
	Release     *Overrides `yaml:"release,omitempty"`
}

// Overrides replace base values for one environment. Empty fields
// leave the base value alone.
type Overrides struct {
	Paths   *PathsConfig   `yaml:"paths,omitempty"`
	Logging *LoggingConfig `yaml:"logging,omitempty"`
}

// PathsConfig locates the tool's inputs and outputs.
type PathsConfig struct {
	// RepoRoot is the ScratchRobin checkout or unpacked package.
	RepoRoot string `yaml:"repo_root"`

	// SurfaceRegistry is the package surface id registry JSON.
	SurfaceRegistry string `yaml:"surface_registry"`

	// ManifestSchema is the package profile manifest JSON schema.
	ManifestSchema string `yaml:"manifest_schema"`

	// BlockerRegister is the release blocker register CSV. It lives
	// outside the repository, in the sibling local_work tree.
	BlockerRegister string `yaml:"blocker_register"`

	// PackageRoot is the tree checked for packaged artifacts.
	PackageRoot string `yaml:"package_root"`

	// SpecRoot holds resources/specset_packages.
	SpecRoot string `yaml:"spec_root"`

	// HistoryDB is the gate history database. Empty disables
	// recording.
	HistoryDB string `yaml:"history_db"`
}

// LoggingConfig configures the command logger.
type LoggingConfig struct {
	// Level is debug, info, warn, or error.
	Level string `yaml:"level"`

	// Format is auto (text on a terminal, JSON otherwise), text, or
	// json.
	Format string `yaml:"format"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"auto", "text", "json"}
)

// Default returns the unexpanded defaults. Paths are relative to
// ${SCRATCHROBIN_REPO}.
func Default() *Config {
	return &Config{
		Environment: Development,
		Paths: PathsConfig{
			SurfaceRegistry: "${SCRATCHROBIN_REPO}/resources/schemas/package_surface_id_registry.json",
			ManifestSchema:  "${SCRATCHROBIN_REPO}/resources/schemas/package_profile_manifest.schema.json",
			BlockerRegister: "${SCRATCHROBIN_REPO}/../local_work/docs/specifications_beta1b/" +
				"10_Execution_Tracks_and_Conformance/BLOCKER_REGISTER.csv",
			PackageRoot: "${SCRATCHROBIN_REPO}",
			SpecRoot:    "${SCRATCHROBIN_REPO}",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// ForRepo returns the defaults rooted at repoRoot, expanded.
func ForRepo(repoRoot string) *Config {
	cfg := Default()
	cfg.Paths.RepoRoot = repoRoot
	cfg.expandVariables()
	return cfg
}

// Load loads the file named by SCRATCHROBIN_CONFIG.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a scratchrobin.yaml file, or use --config", EnvConfigPath)
	}
	return LoadFile(path)
}

// LoadFile loads the configuration at path over the defaults. When the
// file does not set paths.repo_root, the directory containing the file
// is used.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyEnvironmentOverrides()
	if cfg.Paths.RepoRoot == "" {
		cfg.Paths.RepoRoot = filepath.Dir(path)
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case CI:
		overrides = c.CI
	case Release:
		overrides = c.Release
		if overrides == nil {
			overrides = &Overrides{Logging: &LoggingConfig{Format: "json"}}
		}
	}
	if overrides == nil {
		return
	}

	if paths := overrides.Paths; paths != nil {
		for _, field := range []struct{ target, value *string }{
			{&c.Paths.RepoRoot, &paths.RepoRoot},
			{&c.Paths.SurfaceRegistry, &paths.SurfaceRegistry},
			{&c.Paths.ManifestSchema, &paths.ManifestSchema},
			{&c.Paths.BlockerRegister, &paths.BlockerRegister},
			{&c.Paths.PackageRoot, &paths.PackageRoot},
			{&c.Paths.SpecRoot, &paths.SpecRoot},
			{&c.Paths.HistoryDB, &paths.HistoryDB},
		} {
			if *field.value != "" {
				*field.target = *field.value
			}
		}
	}
	if logging := overrides.Logging; logging != nil {
		if logging.Level != "" {
			c.Logging.Level = logging.Level
		}
		if logging.Format != "" {
			c.Logging.Format = logging.Format
		}
	}
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Paths.RepoRoot = expandPath(c.Paths.RepoRoot, vars)
	vars["SCRATCHROBIN_REPO"] = c.Paths.RepoRoot

	for _, path := range []*string{
		&c.Paths.SurfaceRegistry,
		&c.Paths.ManifestSchema,
		&c.Paths.BlockerRegister,
		&c.Paths.PackageRoot,
		&c.Paths.SpecRoot,
		&c.Paths.HistoryDB,
	} {
		*path = expandPath(*path, vars)
	}
}

func expandPath(path string, vars map[string]string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(expandVars(path, vars))
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars replaces ${VAR} and ${VAR:-default}, preferring vars over
// the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, fallback := parts[1], parts[2]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return fallback
	})
}

// Validate checks enumerations and required paths.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains([]Environment{Development, CI, Release}, c.Environment) {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}
	for name, value := range map[string]string{
		"paths.repo_root":        c.Paths.RepoRoot,
		"paths.surface_registry": c.Paths.SurfaceRegistry,
		"paths.manifest_schema":  c.Paths.ManifestSchema,
		"paths.blocker_register": c.Paths.BlockerRegister,
		"paths.package_root":     c.Paths.PackageRoot,
		"paths.spec_root":        c.Paths.SpecRoot,
	} {
		if value == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of: %v", logLevels))
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be one of: %v", logFormats))
	}
	return errors.Join(errs...)
}

// EnsureHistoryDir creates the directory that will hold HistoryDB.
func (c *Config) EnsureHistoryDir() error {
	if c.Paths.HistoryDB == "" {
		return nil
	}
	dir := filepath.Dir(c.Paths.HistoryDB)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}
