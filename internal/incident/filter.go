package incident

import (
	"strings"
	"time"
)

// Filter selects records by offense category and time window. An empty
// Offenses list keeps every category; a zero From or To leaves that side of
// the window open. Both bounds are inclusive.
type Filter struct {
	Offenses []string
	From     time.Time
	To       time.Time
}

// Empty reports whether the filter keeps everything.
func (f Filter) Empty() bool {
	return len(f.Offenses) == 0 && f.From.IsZero() && f.To.IsZero()
}

// Apply returns the records that pass the filter, in input order. records is
// not modified. Records without a timestamp fail any bounded window.
func (f Filter) Apply(records []Record) []Record {
	if f.Empty() {
		return records
	}

	allowed := make(map[string]bool, len(f.Offenses))
	for _, o := range f.Offenses {
		allowed[strings.ToUpper(strings.TrimSpace(o))] = true
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if len(allowed) > 0 && !allowed[strings.ToUpper(r.Category())] {
			continue
		}
		if !f.inWindow(r.OccurredAt) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (f Filter) inWindow(t time.Time) bool {
	if f.From.IsZero() && f.To.IsZero() {
		return true
	}
	if t.IsZero() {
		return false
	}
	if !f.From.IsZero() && t.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.After(f.To) {
		return false
	}
	return true
}
