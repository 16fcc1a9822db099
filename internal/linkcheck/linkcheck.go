package linkcheck

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chess-variants/tournament-calendar/internal/httpx"
)

// Item is one entry of a site data file (_data/*.yml).
type Item struct {
	Title  string `yaml:"title"`
	Link   string `yaml:"link"`
	GitHub string `yaml:"github"` // owner/repo shorthand
}

type dataFile struct {
	Items []Item `yaml:"items"`
}

// Link is one URL extracted from a data file.
type Link struct {
	File  string
	Title string
	Field string
	URL   string
}

// Failure is a link that did not resolve.
type Failure struct {
	Link
	Reason string
}

// ExtractFile pulls every checkable URL out of one YAML data file.
func ExtractFile(path string) ([]Link, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var df dataFile
	if err := yaml.Unmarshal(b, &df); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var links []Link
	for _, it := range df.Items {
		title := it.Title
		if title == "" {
			title = "unknown"
		}
		if it.Link != "" {
			links = append(links, Link{File: path, Title: title, Field: "link", URL: it.Link})
		}
		if it.GitHub != "" {
			links = append(links, Link{File: path, Title: title, Field: "github", URL: "https://github.com/" + it.GitHub})
		}
	}
	return links, nil
}

type Checker struct {
	client *http.Client
}

func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Checker{client: httpx.NewClient(timeout)}
}

// Check probes a URL with HEAD, falling back to GET for servers that
// reject HEAD.
func (c *Checker) Check(ctx context.Context, url string) error {
	status, err := c.do(ctx, http.MethodHead, url)
	if err == nil && status < 400 {
		return nil
	}
	status, err = c.do(ctx, http.MethodGet, url)
	if err != nil {
		return err
	}
	if status >= 400 {
		return fmt.Errorf("HTTP %d", status)
	}
	return nil
}

func (c *Checker) do(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
	return resp.StatusCode, nil
}

// Run checks every link in the given files and returns the dead ones.
// An unreadable data file aborts the run.
func (c *Checker) Run(ctx context.Context, files []string) ([]Failure, error) {
	var failures []Failure
	for _, f := range files {
		links, err := ExtractFile(f)
		if err != nil {
			return nil, err
		}
		log.Printf("checking %s: %d link(s)", f, len(links))
		for _, l := range links {
			if err := c.Check(ctx, l.URL); err != nil {
				log.Printf("  %s (%s): %s: %v", l.Title, l.Field, l.URL, err)
				failures = append(failures, Failure{Link: l, Reason: err.Error()})
			}
		}
	}
	return failures, nil
}
