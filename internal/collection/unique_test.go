package collection

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"propertybook/internal/ident"
	"propertybook/pkg/domain"
)

func newSellers() *Unique[domain.Seller] {
	return New(Config[domain.Seller]{
		Entity: domain.EntitySeller,
		IsSame: domain.Seller.IsSame,
		Equal:  domain.Seller.Equal,
		Stamp: ident.Stamper(domain.PrefixSeller,
			func(s domain.Seller) domain.ID { return s.ID },
			func(s domain.Seller, id domain.ID) domain.Seller { s.ID = id; return s },
		),
		Clone: domain.Seller.Clone,
	})
}

func TestSellerAllocationScenario(t *testing.T) {
	list := newSellers()
	amy, err := list.Add(domain.Seller{Name: "Amy", Phone: "999"})
	if err != nil {
		t.Fatalf("add amy: %v", err)
	}
	if amy.ID != "S1" {
		t.Fatalf("expected S1, got %s", amy.ID)
	}
	if _, err := list.Add(domain.Seller{Name: "Amy", Phone: "999"}); !errors.Is(err, domain.ErrDuplicateEntity) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	if list.Len() != 1 {
		t.Fatalf("expected size 1 after duplicate, got %d", list.Len())
	}
	ben, _ := list.Add(domain.Seller{Name: "Ben", Phone: "888"})
	if ben.ID != "S2" {
		t.Fatalf("expected S2, got %s", ben.ID)
	}
	if err := list.Remove(amy); err != nil {
		t.Fatalf("remove amy: %v", err)
	}
	cat, _ := list.Add(domain.Seller{Name: "Cat"})
	if cat.ID != "S3" {
		t.Fatalf("expected S3, got %s", cat.ID)
	}
}

func TestRemoveRequiresFullEquality(t *testing.T) {
	list := newSellers()
	stored, _ := list.Add(domain.Seller{Name: "Amy", Phone: "999"})
	stale := stored
	stale.Tags = []string{"new"}
	if err := list.Remove(stale); !errors.Is(err, domain.ErrEntityNotFound) {
		t.Fatalf("expected not found for stale record, got %v", err)
	}
	if err := list.Remove(stored); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if list.Len() != 0 {
		t.Fatalf("expected empty list")
	}
}

func TestReplaceKeepsPosition(t *testing.T) {
	list := newSellers()
	a, _ := list.Add(domain.Seller{Name: "Amy", Phone: "999"})
	list.Add(domain.Seller{Name: "Ben", Phone: "888"})
	edited := a
	edited.Tags = []string{"priority"}
	if err := list.Replace(a, edited); err != nil {
		t.Fatalf("replace: %v", err)
	}
	items := list.Items()
	if len(items) != 2 || !items[0].Equal(edited) {
		t.Fatalf("expected edited record at index 0, got %+v", items)
	}
}

func TestReplaceRejectsCollisionWithOtherRecord(t *testing.T) {
	list := newSellers()
	a, _ := list.Add(domain.Seller{Name: "Amy", Phone: "999"})
	list.Add(domain.Seller{Name: "Ben", Phone: "888"})
	edited := a
	edited.Name, edited.Phone = "Ben", "888"
	if err := list.Replace(a, edited); !errors.Is(err, domain.ErrDuplicateEntity) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	if err := list.Replace(domain.Seller{Name: "Nobody"}, edited); !errors.Is(err, domain.ErrEntityNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSetAllIsAtomic(t *testing.T) {
	list := newSellers()
	list.Add(domain.Seller{Name: "Amy", Phone: "999"})
	before := list.Clone()
	err := list.SetAll([]domain.Seller{
		{ID: "S1", Name: "Ben", Phone: "1"},
		{ID: "S2", Name: "Ben", Phone: "1"},
	})
	if !errors.Is(err, domain.ErrDuplicateEntity) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	if !list.Equal(before) {
		t.Fatalf("list changed after rejected SetAll")
	}
	if err := list.SetAll([]domain.Seller{{ID: "S4", Name: "Cat", Phone: "2"}}); err != nil {
		t.Fatalf("set all: %v", err)
	}
	next, _ := list.Add(domain.Seller{Name: "Dan", Phone: "3"})
	if next.ID != "S5" {
		t.Fatalf("expected allocation after loaded max, got %s", next.ID)
	}
}

func TestItemsAreDetached(t *testing.T) {
	list := newSellers()
	list.Add(domain.Seller{Name: "Amy", Phone: "999", Tags: []string{"a"}})
	items := list.Items()
	items[0].Tags[0] = "mutated"
	if list.Items()[0].Tags[0] != "a" {
		t.Fatalf("caller mutation leaked into the list")
	}
}

func TestEqualIsOrderSensitive(t *testing.T) {
	a, b := newSellers(), newSellers()
	a.SetAll([]domain.Seller{{ID: "S1", Name: "A"}, {ID: "S2", Name: "B"}})
	b.SetAll([]domain.Seller{{ID: "S2", Name: "B"}, {ID: "S1", Name: "A"}})
	if a.Equal(b) {
		t.Fatalf("expected different order to compare unequal")
	}
	if !a.Equal(a.Clone()) {
		t.Fatalf("expected clone to compare equal")
	}
}

func TestUniquenessHoldsUnderRandomAdds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		list := newSellers()
		names := rapid.SliceOf(rapid.SampledFrom([]string{"Amy", "Ben", "Cat"})).Draw(t, "names")
		phones := rapid.SliceOfN(rapid.SampledFrom([]string{"1", "2"}), len(names), len(names)).Draw(t, "phones")
		var lastNum int
		for i, name := range names {
			candidate := domain.Seller{Name: name, Phone: phones[i]}
			before := list.Len()
			dup := list.Contains(candidate)
			stored, err := list.Add(candidate)
			if dup {
				if !errors.Is(err, domain.ErrDuplicateEntity) || list.Len() != before {
					t.Fatalf("duplicate add must fail without change")
				}
				continue
			}
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			_, n, _ := stored.ID.Split()
			if n <= lastNum {
				t.Fatalf("identifier %s not above previous %d", stored.ID, lastNum)
			}
			lastNum = n
		}
		items := list.Items()
		for i := range items {
			for j := i + 1; j < len(items); j++ {
				if items[i].IsSame(items[j]) {
					t.Fatalf("records %d and %d are the same entity", i, j)
				}
			}
		}
	})
}
