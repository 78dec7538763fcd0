package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/fluvis_go/internal/parser"

	"gopkg.in/yaml.v3"
)

// DefaultInput is where the simulator writes its output.
const DefaultInput = "FluTransmission/flu_simulation.txt"

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Input         string         `yaml:"input"`
	InfectedState int            `yaml:"infected_state"`
	UniformRows   bool           `yaml:"uniform_rows"`
	StateLabels   map[int]string `yaml:"state_labels"`
	Report        ReportConfig   `yaml:"report"`
}

type ReportConfig struct {
	Title string `yaml:"title"`
	PDF   string `yaml:"pdf"`
	CSV   string `yaml:"csv"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Input:         DefaultInput,
		InfectedState: parser.StateSick,
		StateLabels: map[int]string{
			parser.StateHealthy: "Healthy",
			parser.StateSick:    "Sick",
		},
		Report: ReportConfig{
			Title: "Flu Transmission Census",
			PDF:   "flu_report.pdf",
			CSV:   "flu_census.csv",
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	c := Default()
	// Labels from the file replace the default set rather than merging into it.
	c.StateLabels = nil
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if c.StateLabels == nil {
		c.StateLabels = Default().StateLabels
	}
	// Relative inputs are resolved against the config file when that file exists.
	if c.Input != "" && !filepath.IsAbs(c.Input) {
		cand := filepath.Join(filepath.Dir(path), c.Input)
		if _, err := os.Stat(cand); err == nil {
			c.Input = cand
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Input == "" {
		return errors.New("input is required")
	}
	for state, label := range c.StateLabels {
		if label == "" {
			return fmt.Errorf("state_labels[%d] is empty", state)
		}
	}
	if c.Report.PDF != "" && c.Report.PDF == c.Report.CSV {
		return fmt.Errorf("report.pdf and report.csv must differ (both %q)", c.Report.PDF)
	}
	return nil
}

// Label returns the display name for a cell state.
// Unlabeled states fall back to "State N".
func (c *Config) Label(state int) string {
	if c != nil {
		if label, ok := c.StateLabels[state]; ok {
			return label
		}
	}
	return fmt.Sprintf("State %d", state)
}

// ParseOptions translates the config into parser options.
func (c *Config) ParseOptions() []parser.Option {
	var opts []parser.Option
	if c.UniformRows {
		opts = append(opts, parser.WithUniformRows())
	}
	return opts
}
