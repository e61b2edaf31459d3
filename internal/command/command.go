// Package command implements the self-contained requests that change or
// reshape the model. Commands only use the model's public verbs; index
// targets are resolved against the visible view before any mutation.
package command

import (
	"context"
	"fmt"
	"strings"

	"propertybook/internal/core"
	"propertybook/internal/predicate"
	"propertybook/pkg/domain"
)

// Result is the outcome shown to the user.
type Result struct {
	Feedback string   `json:"feedback"`
	Warnings []string `json:"warnings,omitempty"`
}

// Command is one executable request.
type Command interface {
	Execute(ctx context.Context, m *core.Model) (Result, error)
}

func withWarnings(feedback string, res domain.Result) Result {
	return Result{Feedback: feedback, Warnings: res.Warnings()}
}

// Add stores a new record.
type Add[E any] struct {
	Kind   Kind[E]
	Record E
}

func (c Add[E]) Execute(ctx context.Context, m *core.Model) (Result, error) {
	created, res, err := c.Kind.Book(m).Add(ctx, c.Record)
	if err != nil {
		return Result{}, err
	}
	return withWarnings(fmt.Sprintf("New %s added: %s", c.Kind.Entity, c.Kind.Describe(created)), res), nil
}

// Delete removes the record shown at Index in the visible view.
type Delete[E any] struct {
	Kind  Kind[E]
	Index int
}

func (c Delete[E]) Execute(ctx context.Context, m *core.Model) (Result, error) {
	book := c.Kind.Book(m)
	target, err := book.Resolve(c.Index)
	if err != nil {
		return Result{}, err
	}
	res, err := book.Delete(ctx, target)
	if err != nil {
		return Result{}, err
	}
	return withWarnings(fmt.Sprintf("Deleted %s: %s", c.Kind.Entity, c.Kind.Describe(target)), res), nil
}

// Edit replaces the record shown at Index with Record.
type Edit[E any] struct {
	Kind   Kind[E]
	Index  int
	Record E
}

func (c Edit[E]) Execute(ctx context.Context, m *core.Model) (Result, error) {
	book := c.Kind.Book(m)
	target, err := book.Resolve(c.Index)
	if err != nil {
		return Result{}, err
	}
	saved, res, err := book.Set(ctx, target, c.Record)
	if err != nil {
		return Result{}, err
	}
	return withWarnings(fmt.Sprintf("Edited %s: %s", c.Kind.Entity, c.Kind.Describe(saved)), res), nil
}

// List clears the filter so every record is visible again.
type List[E any] struct {
	Kind Kind[E]
}

func (c List[E]) Execute(_ context.Context, m *core.Model) (Result, error) {
	c.Kind.Book(m).UpdateFilter(nil)
	return Result{Feedback: c.Kind.listMessage()}, nil
}

// Find filters the view to records matching Keywords, either as whole
// words or, with Fuzzy set, as an approximate match of the joined query.
type Find[E any] struct {
	Kind     Kind[E]
	Keywords []string
	Fuzzy    bool
}

func (c Find[E]) Execute(_ context.Context, m *core.Model) (Result, error) {
	book := c.Kind.Book(m)
	if c.Fuzzy {
		query := strings.Join(c.Keywords, " ")
		book.UpdateFilter(predicate.Fuzzy(c.Kind.Fields, query))
		feedback := fmt.Sprintf("%d %s listed!", book.Filtered().Len(), c.Kind.Plural)
		if ranked := predicate.Rank(book.Filtered().Items(), c.Kind.Fields, query); len(ranked) > 0 {
			feedback += " Closest match: " + c.Kind.Describe(ranked[0])
		}
		return Result{Feedback: feedback}, nil
	}
	book.UpdateFilter(predicate.ContainsKeywords(c.Kind.Fields, c.Keywords))
	return Result{Feedback: fmt.Sprintf("%d %s listed!", book.Filtered().Len(), c.Kind.Plural)}, nil
}

// Sort orders the view by Key. An empty key uses the kind's default.
type Sort[E any] struct {
	Kind      Kind[E]
	Key       string
	Ascending bool
}

func (c Sort[E]) Execute(_ context.Context, m *core.Model) (Result, error) {
	key := c.Key
	if key == "" {
		key = c.Kind.DefaultSort
	}
	cmp, ok := c.Kind.Sorts[key]
	if !ok {
		return Result{}, domain.InvalidArgumentError{Field: "sort_key", Reason: fmt.Sprintf("%s cannot be sorted by %q", c.Kind.Plural, key)}
	}
	c.Kind.Book(m).UpdateSort(cmp, c.Ascending)
	order := "ascending"
	if !c.Ascending {
		order = "descending"
	}
	return Result{Feedback: fmt.Sprintf("Sorted %s by %s (%s)", c.Kind.Plural, key, order)}, nil
}
