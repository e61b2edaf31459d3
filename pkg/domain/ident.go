package domain

import (
	"strconv"
	"strings"
)

// Identifier prefixes per allocating entity kind.
const (
	PrefixBidder   = "B"
	PrefixSeller   = "S"
	PrefixProperty = "P"
)

// ID is a prefixed identifier such as "B1" or "P12".
type ID string

// NewID formats prefix and number as an identifier.
func NewID(prefix string, n int) ID {
	return ID(prefix + strconv.Itoa(n))
}

// Split separates the alphabetic prefix from the numeric suffix. Leading
// zeros in the suffix are accepted so "P01" and "P1" share a number.
func (id ID) Split() (prefix string, n int, ok bool) {
	s := string(id)
	i := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if i <= 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return s[:i], n, true
}

// HasPrefix reports whether id is well formed and carries prefix.
func (id ID) HasPrefix(prefix string) bool {
	p, _, ok := id.Split()
	return ok && p == prefix
}

// Matches compares identifiers by prefix and number, so "P01" matches "P1".
func (id ID) Matches(other ID) bool {
	if id == other {
		return true
	}
	p1, n1, ok1 := id.Split()
	p2, n2, ok2 := other.Split()
	return ok1 && ok2 && p1 == p2 && n1 == n2
}

func (id ID) String() string { return string(id) }
