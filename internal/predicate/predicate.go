// Package predicate builds the find predicates and sort comparators the
// command layer installs on model views.
package predicate

import (
	"cmp"
	"strings"

	"github.com/sahilm/fuzzy"

	"propertybook/internal/view"
	"propertybook/pkg/domain"
)

// Fields extracts the searchable text of a record.
type Fields[E any] func(E) []string

// ContainsKeywords matches records where some field contains one of the
// keywords as a whole word, ignoring case. Blank keywords are ignored; with
// none left nothing matches.
func ContainsKeywords[E any](fields Fields[E], keywords []string) view.Predicate[E] {
	wanted := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		for _, w := range strings.Fields(strings.ToLower(k)) {
			wanted[w] = struct{}{}
		}
	}
	return func(e E) bool {
		if len(wanted) == 0 {
			return false
		}
		for _, f := range fields(e) {
			for _, w := range strings.Fields(strings.ToLower(f)) {
				if _, ok := wanted[w]; ok {
					return true
				}
			}
		}
		return false
	}
}

// Fuzzy matches records where some field contains the query's characters in
// order, the way interactive pickers do.
func Fuzzy[E any](fields Fields[E], query string) view.Predicate[E] {
	pattern := strings.ToLower(strings.TrimSpace(query))
	return func(e E) bool {
		if pattern == "" {
			return false
		}
		values := fields(e)
		lowered := make([]string, len(values))
		for i, v := range values {
			lowered[i] = strings.ToLower(v)
		}
		return len(fuzzy.Find(pattern, lowered)) > 0
	}
}

// Rank orders records by their best fuzzy score against query, best first.
// Records that do not match are dropped.
func Rank[E any](records []E, fields Fields[E], query string) []E {
	pattern := strings.ToLower(strings.TrimSpace(query))
	if pattern == "" {
		return nil
	}
	src := newSource(records, fields)
	matches := fuzzy.FindFrom(pattern, src)
	seen := make(map[int]bool, len(matches))
	out := make([]E, 0, len(matches))
	for _, m := range matches {
		i := src.owner(m.Index)
		if seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, records[i])
	}
	return out
}

// source flattens every field of every record into one fuzzy.Source.
type source struct {
	flat   []string
	owners []int
}

func newSource[E any](records []E, fields Fields[E]) source {
	var s source
	for i, r := range records {
		for _, f := range fields(r) {
			s.flat = append(s.flat, strings.ToLower(f))
			s.owners = append(s.owners, i)
		}
	}
	return s
}

func (s source) String(i int) string { return s.flat[i] }
func (s source) Len() int            { return len(s.flat) }
func (s source) owner(i int) int     { return s.owners[i] }

// Name orders records by a display name, case-insensitively.
func Name[E any](name func(E) string) view.Comparator[E] {
	return func(a, b E) int {
		if c := cmp.Compare(strings.ToLower(name(a)), strings.ToLower(name(b))); c != 0 {
			return c
		}
		return cmp.Compare(name(a), name(b))
	}
}

// AskingPrice orders properties from cheapest.
func AskingPrice(a, b domain.Property) int { return cmp.Compare(a.AskingPrice, b.AskingPrice) }

// BidAmount orders bids from lowest.
func BidAmount(a, b domain.Bid) int { return cmp.Compare(a.Amount, b.Amount) }

// MeetingTime orders meetings by date, then start time.
func MeetingTime(a, b domain.Meeting) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.Start, b.Start)
}
