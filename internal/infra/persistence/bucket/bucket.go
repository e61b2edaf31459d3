// Package bucket splits a snapshot into one JSON payload per collection, the
// layout shared by the SQL snapshot stores.
package bucket

import (
	"encoding/json"
	"fmt"

	"propertybook/pkg/domain"
)

// Preferences names the bucket holding user preferences.
const Preferences = "preferences"

// Names lists every bucket in write order.
var Names = []string{
	string(domain.EntityPerson),
	string(domain.EntityBidder),
	string(domain.EntitySeller),
	string(domain.EntityProperty),
	string(domain.EntityBid),
	string(domain.EntityMeeting),
	Preferences,
}

func targets(s *domain.Snapshot) map[string]any {
	return map[string]any{
		string(domain.EntityPerson):   &s.Persons,
		string(domain.EntityBidder):   &s.Bidders,
		string(domain.EntitySeller):   &s.Sellers,
		string(domain.EntityProperty): &s.Properties,
		string(domain.EntityBid):      &s.Bids,
		string(domain.EntityMeeting):  &s.Meetings,
		Preferences:                   &s.Preferences,
	}
}

// Encode returns the payload of every bucket.
func Encode(s domain.Snapshot) (map[string][]byte, error) {
	out := make(map[string][]byte, len(Names))
	for name, v := range targets(&s) {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		out[name] = data
	}
	return out, nil
}

// Decoder accumulates bucket payloads into a snapshot. Unknown buckets are
// ignored so older binaries can read newer stores.
type Decoder struct {
	snap    domain.Snapshot
	targets map[string]any
}

func NewDecoder() *Decoder {
	d := &Decoder{}
	d.targets = targets(&d.snap)
	return d
}

// Add decodes one bucket payload. Empty payloads are skipped.
func (d *Decoder) Add(name string, payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	target, ok := d.targets[name]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Snapshot returns the decoded state.
func (d *Decoder) Snapshot() domain.Snapshot { return d.snap }
