package model

import "strings"

// Record is the normalized representation for all calendar sources.
type Record struct {
	Name      string // tournament title
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD, equals StartDate for one-day events
	Location  string // city/country or "online"
	Variant   string // e.g. "Shogi", "Xiangqi"
	Link      string // canonical event page
	Source    string // which source produced the record
}

// Key is the record identity used for de-dup across refresh runs.
// Two rows with the same key describe the same event.
func (r Record) Key() string {
	return r.Name + "\x1f" + r.StartDate + "\x1f" + r.Link
}

// Valid reports whether the record carries all required fields.
func (r Record) Valid() bool {
	return strings.TrimSpace(r.Name) != "" &&
		strings.TrimSpace(r.StartDate) != "" &&
		strings.TrimSpace(r.Link) != ""
}
