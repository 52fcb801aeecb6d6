// Package config loads optional per-project approval settings from an
// .approvals.yml file. The file is found by walking up from a starting
// directory, so one file at the repository root covers every package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/approvalkit/approvalkit/pkg/namer"
	"github.com/approvalkit/approvalkit/pkg/regexcache"
	"github.com/approvalkit/approvalkit/pkg/reporter"
	"github.com/approvalkit/approvalkit/pkg/scrub"
)

// FileName is the project configuration file searched for by Find.
const FileName = ".approvals.yml"

// ErrNotFound is returned by Find when no configuration file exists between
// the starting directory and the filesystem root.
var ErrNotFound = errors.New("no " + FileName + " found")

// PatternScrubber is one regex substitution applied before comparison.
type PatternScrubber struct {
	// Pattern is the regular expression to replace.
	Pattern string `yaml:"pattern"`
	// Replacement substitutes every match; capture references are allowed.
	Replacement string `yaml:"replacement"`
}

// Config mirrors the .approvals.yml schema.
type Config struct {
	// Subdirectory relocates approved/received files relative to each test
	// source directory.
	Subdirectory string `yaml:"subdirectory,omitempty"`
	// Reporters are tried in order on mismatch; names as understood by
	// reporter.ByName.
	Reporters []string `yaml:"reporters,omitempty"`
	// Scrubbers run in order on both sides of every comparison.
	Scrubbers []PatternScrubber `yaml:"scrubbers,omitempty"`
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Compile(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Find walks from startDir toward the filesystem root and loads the first
// configuration file it encounters.
func Find(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("%w (searched up from %s)", ErrNotFound, startDir)
		}
		dir = parent
	}
}

// Compile validates every scrubber pattern. Broken patterns are a
// configuration error and fail here, not mid-verification.
func (c *Config) Compile() error {
	for _, s := range c.Scrubbers {
		if _, err := regexcache.Get(s.Pattern); err != nil {
			return fmt.Errorf("invalid scrubber pattern %q: %w", s.Pattern, err)
		}
	}
	return nil
}

// Scrubber composes the configured substitutions into one scrubber.
// Returns nil when none are configured.
func (c *Config) Scrubber() scrub.Scrubber {
	if len(c.Scrubbers) == 0 {
		return nil
	}
	scrubbers := make([]scrub.Scrubber, 0, len(c.Scrubbers))
	for _, s := range c.Scrubbers {
		scrubbers = append(scrubbers, scrub.MustRegex(s.Pattern, s.Replacement))
	}
	return scrub.All(scrubbers...)
}

// Reporter builds a first-working chain from the configured reporter names.
// Returns nil when none are configured.
func (c *Config) Reporter() reporter.Reporter {
	if len(c.Reporters) == 0 {
		return nil
	}
	members := make([]reporter.Reporter, 0, len(c.Reporters))
	for _, name := range c.Reporters {
		members = append(members, reporter.ByName(name))
	}
	return reporter.FirstWorking(members...)
}

// Apply installs the configured subdirectory and reporter chain as
// process-wide defaults and returns one restore function for both.
func (c *Config) Apply() (restore func()) {
	var restores []func()
	if c.Subdirectory != "" {
		restores = append(restores, namer.UseSubdirectory(c.Subdirectory))
	}
	if r := c.Reporter(); r != nil {
		restores = append(restores, reporter.UseDefault(r))
	}
	return func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}
}
