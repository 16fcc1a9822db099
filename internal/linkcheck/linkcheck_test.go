package linkcheck_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chess-variants/tournament-calendar/internal/linkcheck"
)

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guis.yml")
	body := `
items:
  - title: Some GUI
    link: https://example.org/gui
    github: example/gui
  - title: No Links Here
  - link: https://example.org/anon
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	links, err := linkcheck.ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if len(links) != 3 {
		t.Fatalf("got %d links, want 3: %+v", len(links), links)
	}
	if links[1].URL != "https://github.com/example/gui" || links[1].Field != "github" {
		t.Errorf("github link = %+v", links[1])
	}
	if links[2].Title != "unknown" {
		t.Errorf("untitled item should report as unknown, got %q", links[2].Title)
	}
}

func TestCheckHeadThenGetFallback(t *testing.T) {
	var headSeen, getSeen bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			headSeen = true
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			getSeen = true
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := linkcheck.New(2 * time.Second)
	if err := c.Check(context.Background(), srv.URL); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !headSeen || !getSeen {
		t.Errorf("head=%v get=%v, want both probed", headSeen, getSeen)
	}
}

func TestRunReportsDeadLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dead" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "resources.yml")
	body := "items:\n" +
		"  - title: Alive\n    link: " + srv.URL + "/ok\n" +
		"  - title: Dead\n    link: " + srv.URL + "/dead\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	failures, err := linkcheck.New(2*time.Second).Run(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(failures) != 1 {
		t.Fatalf("got %d failures, want 1: %+v", len(failures), failures)
	}
	if failures[0].Title != "Dead" || failures[0].Reason != "HTTP 404" {
		t.Errorf("failure = %+v", failures[0])
	}
}

func TestRunUnreadableFileIsFatal(t *testing.T) {
	_, err := linkcheck.New(time.Second).Run(context.Background(), []string{filepath.Join(t.TempDir(), "nope.yml")})
	if err == nil {
		t.Fatal("want error for missing data file")
	}
}
