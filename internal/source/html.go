package source

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/chess-variants/tournament-calendar/internal/config"
	"github.com/chess-variants/tournament-calendar/internal/httpx"
	"github.com/chess-variants/tournament-calendar/internal/metrics"
	"github.com/chess-variants/tournament-calendar/internal/model"
)

type htmlSource struct {
	cfg    config.SourceConfig
	client *http.Client
}

func NewHTML(cfg config.SourceConfig) *htmlSource {
	return &htmlSource{cfg: cfg, client: httpx.NewClient(cfg.HTTP.Timeout)}
}

func (s *htmlSource) Name() string { return s.cfg.Name }

// Fetch scrapes a listing page using the configured CSS selectors.
// Rows without a parseable start date or a name are skipped.
func (s *htmlSource) Fetch(ctx context.Context) ([]model.Record, error) {
	body, err := get(ctx, s.client, s.cfg.HTTP, s.cfg.URL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	sel := s.cfg.HTML
	rows := doc.Find(sel.Rows)
	if rows.Length() == 0 {
		// The page layout changed under us; treat like an unreachable source.
		return nil, fmt.Errorf("no calendar rows matched %q at %s", sel.Rows, s.cfg.URL)
	}
	var recs []model.Record
	rows.Each(func(_ int, row *goquery.Selection) {
		start := text(row, sel.StartDate)
		if start == "" {
			// decorative row (header, separator), not a record
			return
		}
		startDate, err := time.Parse(sel.DateLayout, start)
		if err != nil {
			metrics.ParseErrors.WithLabelValues(s.Name()).Inc()
			log.Printf("%s: skipping row: bad start date %q", s.Name(), start)
			return
		}
		name := text(row, sel.Name)
		if name == "" {
			metrics.ParseErrors.WithLabelValues(s.Name()).Inc()
			log.Printf("%s: skipping row: missing name", s.Name())
			return
		}
		endISO := startDate.Format(isoDate)
		if end := text(row, sel.EndDate); end != "" {
			if t, err := time.Parse(sel.DateLayout, end); err == nil {
				endISO = t.Format(isoDate)
			}
			// an unparseable end date means a single-day event
		}
		link := s.cfg.URL
		if sel.Link != "" {
			if href, ok := row.Find(sel.Link).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
				link = strings.TrimSpace(href)
			}
		}
		recs = append(recs, model.Record{
			Name:      name,
			StartDate: startDate.Format(isoDate),
			EndDate:   endISO,
			Location:  text(row, sel.Location),
			Variant:   variantFromTitle(name, s.cfg.Variants),
			Link:      link,
			Source:    s.Name(),
		})
	})
	return recs, nil
}

func text(row *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(row.Find(selector).First().Text())
}
