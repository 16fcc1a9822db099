package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chess-variants/tournament-calendar/internal/model"
)

// Header names the columns of the tab-separated tournament table, in order.
var Header = []string{"tournament", "start-date", "end-date", "location", "variant", "link"}

// Read loads the stored table. A missing file is an empty table, not an error.
func Read(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	recs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Parse reads a TSV table with the documented header.
func Parse(r io.Reader) ([]model.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var recs []model.Record
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if lineNo == 1 {
			if line != strings.Join(Header, "\t") {
				return nil, fmt.Errorf("line 1: unexpected header %q", line)
			}
			continue
		}
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != len(Header) {
			return nil, fmt.Errorf("line %d: got %d columns, want %d", lineNo, len(fields), len(Header))
		}
		recs = append(recs, model.Record{
			Name:      fields[0],
			StartDate: fields[1],
			EndDate:   fields[2],
			Location:  fields[3],
			Variant:   fields[4],
			Link:      fields[5],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// Merge combines batches of records into one deduplicated, sorted table.
// Later batches win on identity collisions, so fetched records replace
// stored rows for the same event. Records missing required fields are
// dropped.
func Merge(batches ...[]model.Record) []model.Record {
	m := make(map[string]model.Record)
	for _, batch := range batches {
		for _, r := range batch {
			if !r.Valid() {
				continue
			}
			if r.EndDate == "" {
				r.EndDate = r.StartDate
			}
			m[r.Key()] = r
		}
	}
	out := make([]model.Record, 0, len(m))
	for _, r := range m {
		out = append(out, r)
	}
	Sort(out)
	return out
}

// FilterPast drops events that ended before today. Dates are ISO strings,
// so lexicographic comparison is chronological.
func FilterPast(recs []model.Record, today string) []model.Record {
	out := make([]model.Record, 0, len(recs))
	for _, r := range recs {
		end := r.EndDate
		if end == "" {
			end = r.StartDate
		}
		if end >= today {
			out = append(out, r)
		}
	}
	return out
}

// Sort orders records by start date, then name, with the remaining fields as
// tie-breakers. The order is total, which keeps repeated runs byte-identical.
func Sort(recs []model.Record) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.StartDate != b.StartDate {
			return a.StartDate < b.StartDate
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.EndDate != b.EndDate {
			return a.EndDate < b.EndDate
		}
		if a.Variant != b.Variant {
			return a.Variant < b.Variant
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.Link < b.Link
	})
}

// Render writes the table as UTF-8 TSV with the documented header.
func Render(w io.Writer, recs []model.Record) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(Header, "\t") + "\n"); err != nil {
		return err
	}
	for _, r := range recs {
		row := strings.Join([]string{
			sanitize(r.Name),
			sanitize(r.StartDate),
			sanitize(r.EndDate),
			sanitize(r.Location),
			sanitize(r.Variant),
			sanitize(r.Link),
		}, "\t")
		if _, err := bw.WriteString(row + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Write persists the table atomically: temp file in the target directory,
// fsync, rename. An interrupted run never leaves a torn file behind.
func Write(path string, recs []model.Record) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := Render(tmp, recs); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// sanitize keeps fields TSV-safe: tabs and newlines collapse to one space.
func sanitize(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\t", " ")), " ")
}
