package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"a11ylens/internal/config"
	"a11ylens/internal/dom"
	"a11ylens/internal/finding"
	"a11ylens/internal/inspect"
)

// settings is the configuration file with command-line overrides applied.
type settings struct {
	cfg      config.Config
	opts     inspect.Options
	viewport dom.Viewport
	failOn   finding.Severity
	failOnOK bool
	color    bool
	quiet    bool
	timings  bool
}

// loadSettings reads --config (or the nearest a11ylens.toml) and applies the
// rule flags shared by scan and watch when they were given explicitly.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	root := cmd.Root().PersistentFlags()
	path, err := root.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		var wd string
		wd, err = os.Getwd()
		if err == nil {
			cfg, err = config.Discover(wd)
		}
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Lookup("empty-alt") != nil && flags.Changed("empty-alt") {
		cfg.Rules.EmptyAlt, _ = flags.GetString("empty-alt")
	}
	if flags.Lookup("skip") != nil && flags.Changed("skip") {
		skip, _ := flags.GetStringSlice("skip")
		cfg.Rules.Skip = append(cfg.Rules.Skip, skip...)
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Lookup("fail-on") != nil && flags.Changed("fail-on") {
		cfg.Output.FailOn, _ = flags.GetString("fail-on")
	}
	if flags.Lookup("interval") != nil && flags.Changed("interval") {
		d, _ := flags.GetDuration("interval")
		cfg.Overlay.Interval = d.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg}
	if s.opts, err = cfg.InspectOptions(); err != nil {
		return nil, err
	}
	if s.viewport, err = cfg.ViewportSize(); err != nil {
		return nil, err
	}
	if s.failOn, s.failOnOK, err = cfg.FailOn(); err != nil {
		return nil, err
	}

	colorFlag, err := root.GetString("color")
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto":
		s.color = isTerminal(os.Stdout)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return nil, err
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return nil, err
	}
	return s, nil
}

// addRuleFlags registers the rule overrides shared by scan and watch.
func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().String("empty-alt", "orange", "tag for images with alt=\"\" (off|orange|yellow)")
	cmd.Flags().StringSlice("skip", nil, "rules to skip (alt,labels,taborder,accesskey)")
}
