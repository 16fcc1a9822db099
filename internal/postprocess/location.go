package postprocess

import (
	"regexp"
	"strings"

	"github.com/chess-variants/tournament-calendar/internal/model"
)

// Calendar feeds embed full venue addresses; the published table only wants
// "city, country". These rules strip the noise.
var (
	streetRe   = regexp.MustCompile(`[^, ][^,]* \d+`) // "Hauptstrasse 12"
	zipRe      = regexp.MustCompile(`\d{4,6}|\d+-\d+`)
	overlongRe = regexp.MustCompile(`[^,]{30,}`) // venue names, directions
)

// Apply cleans the location of every record in place and returns the slice.
func Apply(recs []model.Record) []model.Record {
	for i := range recs {
		recs[i].Location = cleanLocation(recs[i].Location)
	}
	return recs
}

func cleanLocation(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	s = streetRe.ReplaceAllString(s, "")
	s = zipRe.ReplaceAllString(s, "")
	s = overlongRe.ReplaceAllString(s, "")

	// collapse duplicate comma-separated parts, preserving first occurrence
	seen := make(map[string]bool)
	var parts []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
