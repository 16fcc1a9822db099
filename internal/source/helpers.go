package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/chess-variants/tournament-calendar/internal/config"
	"github.com/chess-variants/tournament-calendar/internal/httpx"
)

// variantFromTitle picks the chess variant for an event. If exactly one of
// the source's configured variants appears as a word in the title, that one
// wins; otherwise the source's first configured variant is assumed.
func variantFromTitle(title string, variants []string) string {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(title)) {
		words[w] = true
	}
	var found []string
	for _, v := range variants {
		if words[strings.ToLower(v)] {
			found = append(found, v)
		}
	}
	if len(found) == 1 {
		return capitalize(found[0])
	}
	return capitalize(variants[0])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// get fetches a URL with the source's retry policy and returns the body.
func get(ctx context.Context, client *http.Client, h config.HTTP, url string) ([]byte, error) {
	var body []byte
	err := httpx.Retry(ctx, max(1, h.MaxRetries), defaultDur(h.Backoff, 500*time.Millisecond), defaultDur(h.MaxBackoff, 5*time.Second), func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		if h.UserAgent != "" {
			req.Header.Set("User-Agent", h.UserAgent)
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode/100 != 2 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return fmt.Errorf("%s: status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(b)))
		}
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	return body, err
}

func defaultDur(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}
