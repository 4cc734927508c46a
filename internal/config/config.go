// Package config reads a11ylens.toml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"a11ylens/internal/dom"
	"a11ylens/internal/finding"
	"a11ylens/internal/inspect"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "a11ylens.toml"

// ErrNotFound is returned by Find when no configuration file exists in the
// start directory or any parent.
var ErrNotFound = errors.New("no " + FileName + " found")

type Config struct {
	Overlay  OverlayConfig  `toml:"overlay"`
	Viewport ViewportConfig `toml:"viewport"`
	Rules    RulesConfig    `toml:"rules"`
	Output   OutputConfig   `toml:"output"`

	// Path is the file the configuration came from, "" for defaults.
	Path string `toml:"-"`
}

type OverlayConfig struct {
	Interval string  `toml:"interval"`
	FontSize float64 `toml:"font_size"`
	OriginX  float64 `toml:"origin_x"`
	OriginY  float64 `toml:"origin_y"`
}

// ViewportConfig sizes HTML snapshots, which carry no viewport of their own.
type ViewportConfig struct {
	Width  int64 `toml:"width"`
	Height int64 `toml:"height"`
}

type RulesConfig struct {
	EmptyAlt string   `toml:"empty_alt"` // off|orange|yellow
	Skip     []string `toml:"skip"`
}

type OutputConfig struct {
	Format string `toml:"format"`  // pretty|short|json
	FailOn string `toml:"fail_on"` // none|info|warning|error
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Overlay:  OverlayConfig{Interval: "500ms", FontSize: 12, OriginX: 5, OriginY: 5},
		Viewport: ViewportConfig{Width: 1280, Height: 800},
		Rules:    RulesConfig{EmptyAlt: "orange", Skip: []string{}},
		Output:   OutputConfig{Format: "pretty", FailOn: "none"},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load decodes path over the defaults and validates the result.
// Unknown keys are an error, so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest configuration file, or the defaults when there
// is none.
func Discover(startDir string) (Config, error) {
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

// Validate checks every value that later conversions would reject.
func (c Config) Validate() error {
	if _, err := c.IntervalDuration(); err != nil {
		return err
	}
	if _, err := c.ViewportSize(); err != nil {
		return err
	}
	if _, err := c.InspectOptions(); err != nil {
		return err
	}
	if _, _, err := c.FailOn(); err != nil {
		return err
	}
	switch strings.ToLower(c.Output.Format) {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("[output].format: unsupported %q (must be pretty, short or json)", c.Output.Format)
	}
	if c.Overlay.FontSize <= 0 {
		return fmt.Errorf("[overlay].font_size must be positive, got %v", c.Overlay.FontSize)
	}
	return nil
}

// IntervalDuration parses [overlay].interval.
func (c Config) IntervalDuration() (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(c.Overlay.Interval))
	if err != nil {
		return 0, fmt.Errorf("[overlay].interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("[overlay].interval must be positive, got %s", d)
	}
	return d, nil
}

// ViewportSize converts [viewport] to a dom.Viewport.
func (c Config) ViewportSize() (dom.Viewport, error) {
	w, err := safecast.Conv[int](c.Viewport.Width)
	if err != nil {
		return dom.Viewport{}, fmt.Errorf("[viewport].width: %w", err)
	}
	h, err := safecast.Conv[int](c.Viewport.Height)
	if err != nil {
		return dom.Viewport{}, fmt.Errorf("[viewport].height: %w", err)
	}
	if w <= 0 || h <= 0 {
		return dom.Viewport{}, fmt.Errorf("[viewport] must be positive, got %dx%d", w, h)
	}
	return dom.Viewport{Width: w, Height: h}, nil
}

// InspectOptions builds the rule options from [rules] and [overlay].
func (c Config) InspectOptions() (inspect.Options, error) {
	opts := inspect.DefaultOptions()
	opts.Origin = inspect.Point{X: c.Overlay.OriginX, Y: c.Overlay.OriginY}

	tier, ok := finding.ParseColor(strings.ToLower(strings.TrimSpace(c.Rules.EmptyAlt)))
	if !ok || (tier != finding.NoColor && tier != finding.Orange && tier != finding.Yellow) {
		return opts, fmt.Errorf("[rules].empty_alt: unsupported %q (must be off, orange or yellow)", c.Rules.EmptyAlt)
	}
	opts.EmptyAlt = tier

	opts, err := opts.SkipRules(c.Rules.Skip...)
	if err != nil {
		return opts, fmt.Errorf("[rules].skip: %w", err)
	}
	return opts, nil
}

// FailOn parses [output].fail_on. enabled is false for "none".
func (c Config) FailOn() (sev finding.Severity, enabled bool, err error) {
	v := strings.ToLower(strings.TrimSpace(c.Output.FailOn))
	if v == "" || v == "none" {
		return finding.SevInfo, false, nil
	}
	sev, ok := finding.ParseSeverity(v)
	if !ok {
		return finding.SevInfo, false, fmt.Errorf("[output].fail_on: unsupported %q (must be none, info, warning or error)", c.Output.FailOn)
	}
	return sev, true, nil
}

// Write encodes c as TOML.
func Write(w io.Writer, c Config) error {
	return toml.NewEncoder(w).Encode(c)
}
