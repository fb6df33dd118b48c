// Package config loads the optional gsrjit.yml settings file shared by the
// command-line tools. A missing or unreadable file yields the defaults; the
// tools must keep working without any configuration present.
package config

import (
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Filename is the settings file looked up in the working directory when no
// explicit path is given.
const Filename = "gsrjit.yml"

const (
	defaultDebounceMS = 200
	defaultIterations = 1000

	// maxFileSize caps the config read so a stray large file cannot stall
	// startup.
	maxFileSize = 1 << 20
)

// Config holds the tool settings.
type Config struct {
	// DebounceMS is the quiet period after a file event before the watch
	// loop recompiles.
	DebounceMS int `yaml:"debounce_ms"`

	// ClearScreen toggles clearing the console before each watch-loop
	// frame. Pointer to distinguish unset from false.
	ClearScreen *bool `yaml:"clear_screen"`

	// Dump enables the executable-region hex dump after every load.
	Dump bool `yaml:"dump"`

	// BenchIterations is the sample count used by the benchmark tool.
	BenchIterations int `yaml:"bench_iterations"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		DebounceMS:      defaultDebounceMS,
		BenchIterations: defaultIterations,
	}
}

func (c *Config) normalize() {
	if c.DebounceMS <= 0 {
		c.DebounceMS = defaultDebounceMS
	}
	if c.BenchIterations <= 0 {
		c.BenchIterations = defaultIterations
	}
}

// Debounce is the watch-loop quiet period as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// ClearEnabled reports whether the watch loop should clear the console.
// Unset means yes.
func (c Config) ClearEnabled() bool {
	return c.ClearScreen == nil || *c.ClearScreen
}

// Load reads the settings from path, or from Filename in the working
// directory when path is empty. Any failure is logged and answered with the
// defaults; configuration problems never stop the tools.
func Load(path string) Config {
	explicit := path != ""
	if !explicit {
		path = Filename
	}

	info, err := os.Stat(path)
	if err != nil {
		if explicit || !os.IsNotExist(err) {
			slog.Warn("config file not readable, using defaults", "path", path, "error", err)
		}
		return Default()
	}
	if info.Size() > maxFileSize {
		slog.Warn("config file too large, using defaults", "path", path, "size", info.Size())
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read config file, using defaults", "path", path, "error", err)
		return Default()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		slog.Warn("failed to parse config file, using defaults", "path", path, "error", err)
		return Default()
	}
	cfg.normalize()
	return cfg
}
