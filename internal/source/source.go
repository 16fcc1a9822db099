package source

import (
	"context"
	"fmt"

	"github.com/chess-variants/tournament-calendar/internal/config"
	"github.com/chess-variants/tournament-calendar/internal/model"
)

type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Record, error)
}

func NewFromConfig(c config.SourceConfig) (Source, error) {
	switch c.Type {
	case "ics":
		return NewICS(c), nil
	case "html":
		return NewHTML(c), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", c.Type)
	}
}
