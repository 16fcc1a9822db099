package postprocess_test

import (
	"testing"

	"github.com/chess-variants/tournament-calendar/internal/model"
	"github.com/chess-variants/tournament-calendar/internal/postprocess"
)

func TestApplyCleansLocations(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		// street name and zip code stripped, city and country survive
		{"Hauptstrasse 12, 10115 Berlin, Germany", "Berlin, Germany"},
		// duplicate parts collapse, first occurrence wins
		{"Paris, Paris, France", "Paris, France"},
		// over-long fragments (venue descriptions) are dropped
		{"Community center behind the old railway station hall, Lyon", "Lyon"},
		{"online", "online"},
		// nothing left after cleanup
		{"", "-"},
		{"12345", "-"},
	}
	for _, tc := range cases {
		recs := postprocess.Apply([]model.Record{{Location: tc.in}})
		if got := recs[0].Location; got != tc.want {
			t.Errorf("clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestApplyTouchesOnlyLocation(t *testing.T) {
	in := model.Record{
		Name:      "Spring Open 2024",
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
		Location:  "Berlin",
		Variant:   "Xiangqi",
		Link:      "https://example.org/spring?id=12345",
	}
	out := postprocess.Apply([]model.Record{in})[0]
	in.Location = "Berlin"
	if out != in {
		t.Errorf("Apply changed more than the location: %+v", out)
	}
}
