package domain

import "context"

// Snapshot is the full serializable state of a model.
type Snapshot struct {
	Persons     []Person          `json:"persons"`
	Bidders     []Bidder          `json:"bidders"`
	Sellers     []Seller          `json:"sellers"`
	Properties  []Property        `json:"properties"`
	Bids        []Bid             `json:"bids"`
	Meetings    []Meeting         `json:"meetings"`
	Preferences map[string]string `json:"preferences,omitempty"`
}

// Empty reports whether the snapshot holds no records. Preferences are not
// considered records.
func (s Snapshot) Empty() bool {
	return len(s.Persons) == 0 && len(s.Bidders) == 0 && len(s.Sellers) == 0 &&
		len(s.Properties) == 0 && len(s.Bids) == 0 && len(s.Meetings) == 0
}

// SnapshotStore loads and saves whole snapshots. Implementations replace the
// stored state on every Save.
type SnapshotStore interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
	Close() error
}
