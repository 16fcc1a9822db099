package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	MaxRetries int           `yaml:"max_retries"` // retry attempts (e.g. 3)
	Backoff    time.Duration `yaml:"backoff"`     // initial backoff (e.g. 500ms)
	MaxBackoff time.Duration `yaml:"max_backoff"` // cap (e.g. 5s)
}

// Selectors maps fields of an HTML listing page onto CSS selectors,
// relative to the row selector.
type Selectors struct {
	Rows       string `yaml:"rows"`
	Name       string `yaml:"name"`
	StartDate  string `yaml:"start_date"`
	EndDate    string `yaml:"end_date"`
	Location   string `yaml:"location"`
	Link       string `yaml:"link"`        // optional, reads href; falls back to the page URL
	DateLayout string `yaml:"date_layout"` // Go time layout, default "02.01.2006"
}

type SourceConfig struct {
	Name     string    `yaml:"name"`
	Type     string    `yaml:"type"` // "ics" | "html"
	URL      string    `yaml:"url"`
	Variants []string  `yaml:"variants"` // first entry is the fallback variant
	HTTP     HTTP      `yaml:"http"`
	HTML     Selectors `yaml:"html"` // html sources only
}

type OutputConfig struct {
	Path string `yaml:"path"` // tab-separated table
}

type MetricsConfig struct {
	Enable       bool   `yaml:"enable"`
	TextfilePath string `yaml:"textfile_path"` // .prom file for the node_exporter textfile collector
}

type LinkCheckConfig struct {
	Files   []string      `yaml:"files"` // YAML data files with an items list
	Timeout time.Duration `yaml:"timeout"`
}

type Config struct {
	Sources   []SourceConfig  `yaml:"sources"`
	Output    OutputConfig    `yaml:"output"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	LinkCheck LinkCheckConfig `yaml:"link_check"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	// Defaults
	if c.Output.Path == "" {
		c.Output.Path = "_data/tournaments.tsv"
	}
	if c.LinkCheck.Timeout == 0 {
		c.LinkCheck.Timeout = 10 * time.Second
	}
	for i := range c.Sources {
		s := &c.Sources[i]
		if s.Name == "" {
			s.Name = s.Type
		}
		if s.URL == "" {
			return Config{}, fmt.Errorf("source %q: url is required", s.Name)
		}
		switch s.Type {
		case "ics":
		case "html":
			if s.HTML.Rows == "" {
				return Config{}, fmt.Errorf("source %q: html.rows selector is required", s.Name)
			}
			if s.HTML.DateLayout == "" {
				s.HTML.DateLayout = "02.01.2006"
			}
		default:
			return Config{}, fmt.Errorf("source %q: unknown type %q", s.Name, s.Type)
		}
		if len(s.Variants) == 0 {
			return Config{}, fmt.Errorf("source %q: at least one variant is required", s.Name)
		}
		if s.HTTP.Timeout == 0 {
			s.HTTP.Timeout = 15 * time.Second
		}
		if s.HTTP.MaxRetries == 0 {
			s.HTTP.MaxRetries = 3
		}
		if s.HTTP.Backoff == 0 {
			s.HTTP.Backoff = 500 * time.Millisecond
		}
		if s.HTTP.MaxBackoff == 0 {
			s.HTTP.MaxBackoff = 5 * time.Second
		}
	}
	return c, nil
}
