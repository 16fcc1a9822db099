package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	ics "github.com/arran4/golang-ical"

	"github.com/chess-variants/tournament-calendar/internal/config"
	"github.com/chess-variants/tournament-calendar/internal/httpx"
	"github.com/chess-variants/tournament-calendar/internal/metrics"
	"github.com/chess-variants/tournament-calendar/internal/model"
)

const isoDate = "2006-01-02"

type icsSource struct {
	cfg    config.SourceConfig
	client *http.Client
}

func NewICS(cfg config.SourceConfig) *icsSource {
	return &icsSource{cfg: cfg, client: httpx.NewClient(cfg.HTTP.Timeout)}
}

func (s *icsSource) Name() string { return s.cfg.Name }

// Fetch downloads the iCalendar feed and maps every VEVENT onto a Record.
// Events missing required fields are skipped, not fatal.
func (s *icsSource) Fetch(ctx context.Context) ([]model.Record, error) {
	body, err := get(ctx, s.client, s.cfg.HTTP, s.cfg.URL)
	if err != nil {
		return nil, err
	}
	cal, err := ics.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}
	var recs []model.Record
	for _, ev := range cal.Events() {
		rec, err := s.record(ev)
		if err != nil {
			metrics.ParseErrors.WithLabelValues(s.Name()).Inc()
			log.Printf("%s: skipping event: %v", s.Name(), err)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *icsSource) record(ev *ics.VEvent) (model.Record, error) {
	summary := propValue(ev, ics.ComponentPropertySummary)
	if summary == "" {
		return model.Record{}, errors.New("missing summary")
	}
	start, err := ev.GetStartAt()
	if err != nil {
		start, err = ev.GetAllDayStartAt()
	}
	if err != nil {
		return model.Record{}, fmt.Errorf("%q: missing dtstart: %w", summary, err)
	}
	end, err := ev.GetEndAt()
	if err != nil {
		end, err = ev.GetAllDayEndAt()
	}
	if err != nil {
		// single-day event
		end = start
	}
	link := propValue(ev, ics.ComponentPropertyUrl)
	if link == "" {
		link = s.cfg.URL
	}
	return model.Record{
		Name:      summary,
		StartDate: start.Format(isoDate),
		EndDate:   end.Format(isoDate),
		Location:  propValue(ev, ics.ComponentPropertyLocation),
		Variant:   variantFromTitle(summary, s.cfg.Variants),
		Link:      link,
		Source:    s.Name(),
	}, nil
}

func propValue(ev *ics.VEvent, p ics.ComponentProperty) string {
	if prop := ev.GetProperty(p); prop != nil {
		return strings.TrimSpace(prop.Value)
	}
	return ""
}
