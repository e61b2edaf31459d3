package command

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"propertybook/pkg/domain"
)

// Op names a command operation.
type Op string

const (
	OpAdd    Op = "add"
	OpDelete Op = "delete"
	OpEdit   Op = "edit"
	OpList   Op = "list"
	OpFind   Op = "find"
	OpSort   Op = "sort"
)

// Request is the decoded form of a command. Index is the one-based position
// in the displayed list, as users see it.
type Request struct {
	Kind     domain.EntityType `json:"kind"`
	Op       Op                `json:"op"`
	Index    int               `json:"index,omitempty"`
	Record   json.RawMessage   `json:"record,omitempty"`
	Keywords []string          `json:"keywords,omitempty"`
	Fuzzy    bool              `json:"fuzzy,omitempty"`
	SortKey  string            `json:"sort_key,omitempty"`
	Order    string            `json:"order,omitempty"`
}

// DecodeRequest parses a JSON request and builds its command. Malformed
// input is rejected as an InvalidArgumentError before the model is touched.
func DecodeRequest(data []byte) (Command, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var req Request
	if err := dec.Decode(&req); err != nil {
		return nil, domain.InvalidArgumentError{Field: "request", Reason: err.Error()}
	}
	return req.Build()
}

// Build turns the request into a command for its kind.
func (r Request) Build() (Command, error) {
	switch r.Kind {
	case domain.EntityPerson:
		return build(Persons, r)
	case domain.EntityBidder:
		return build(Bidders, r)
	case domain.EntitySeller:
		return build(Sellers, r)
	case domain.EntityProperty:
		return build(Properties, r)
	case domain.EntityBid:
		return build(Bids, r)
	case domain.EntityMeeting:
		return build(Meetings, r)
	}
	return nil, domain.InvalidArgumentError{Field: "kind", Reason: fmt.Sprintf("unknown kind %q", r.Kind)}
}

func build[E any](kind Kind[E], r Request) (Command, error) {
	switch r.Op {
	case OpAdd:
		rec, err := decodeRecord(kind, r.Record)
		if err != nil {
			return nil, err
		}
		return Add[E]{Kind: kind, Record: rec}, nil
	case OpDelete:
		idx, err := viewIndex(r.Index)
		if err != nil {
			return nil, err
		}
		return Delete[E]{Kind: kind, Index: idx}, nil
	case OpEdit:
		idx, err := viewIndex(r.Index)
		if err != nil {
			return nil, err
		}
		rec, err := decodeRecord(kind, r.Record)
		if err != nil {
			return nil, err
		}
		return Edit[E]{Kind: kind, Index: idx, Record: rec}, nil
	case OpList:
		return List[E]{Kind: kind}, nil
	case OpFind:
		if len(r.Keywords) == 0 {
			return nil, domain.InvalidArgumentError{Field: "keywords", Reason: "at least one keyword is required"}
		}
		return Find[E]{Kind: kind, Keywords: r.Keywords, Fuzzy: r.Fuzzy}, nil
	case OpSort:
		asc, err := ascending(r.Order)
		if err != nil {
			return nil, err
		}
		return Sort[E]{Kind: kind, Key: r.SortKey, Ascending: asc}, nil
	}
	return nil, domain.InvalidArgumentError{Field: "op", Reason: fmt.Sprintf("unknown operation %q", r.Op)}
}

func decodeRecord[E any](kind Kind[E], raw json.RawMessage) (E, error) {
	var rec E
	if len(bytes.TrimSpace(raw)) == 0 {
		return rec, domain.InvalidArgumentError{Field: "record", Reason: "required"}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return rec, domain.InvalidArgumentError{Field: "record", Reason: err.Error()}
	}
	if kind.Validate != nil {
		if err := kind.Validate(rec); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

func viewIndex(oneBased int) (int, error) {
	if oneBased < 1 {
		return 0, domain.InvalidArgumentError{Field: "index", Reason: "must be a positive integer"}
	}
	return oneBased - 1, nil
}

func ascending(order string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "asc", "ascending":
		return true, nil
	case "desc", "descending":
		return false, nil
	}
	return false, domain.InvalidArgumentError{Field: "order", Reason: fmt.Sprintf("unknown order %q", order)}
}
