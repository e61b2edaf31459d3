// Package ident allocates prefixed identifiers from the identifiers already
// present in a collection.
package ident

import "propertybook/pkg/domain"

// Next returns prefix followed by one more than the largest numeric suffix
// among existing identifiers with that prefix, or prefix+"1" when there are
// none. Identifiers with another prefix or a malformed suffix are ignored.
func Next(prefix string, existing []domain.ID) domain.ID {
	highest := 0
	for _, id := range existing {
		p, n, ok := id.Split()
		if !ok || p != prefix {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return domain.NewID(prefix, highest+1)
}

// Stamper builds a function that assigns the next identifier to e based on
// the records currently held. get and set read and write the identifier
// field of E.
func Stamper[E any](prefix string, get func(E) domain.ID, set func(E, domain.ID) E) func(E, []E) E {
	return func(e E, current []E) E {
		ids := make([]domain.ID, 0, len(current))
		for _, c := range current {
			ids = append(ids, get(c))
		}
		return set(e, Next(prefix, ids))
	}
}
