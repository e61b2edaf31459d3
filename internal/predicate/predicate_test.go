package predicate

import (
	"slices"
	"testing"

	"propertybook/pkg/domain"
)

func bidderFields(b domain.Bidder) []string { return []string{b.Name, string(b.ID)} }

func TestContainsKeywordsMatchesWholeWords(t *testing.T) {
	p := ContainsKeywords(bidderFields, []string{"alex", " "})
	cases := map[string]bool{
		"Alex Yeoh":   true,
		"ALEX":        true,
		"Alexander":   false,
		"Bernice Yu":  false,
		"yeoh alex r": true,
	}
	for name, want := range cases {
		if got := p(domain.Bidder{Name: name}); got != want {
			t.Fatalf("%q: expected %v, got %v", name, want, got)
		}
	}
}

func TestContainsKeywordsWithoutKeywordsMatchesNothing(t *testing.T) {
	p := ContainsKeywords(bidderFields, nil)
	if p(domain.Bidder{Name: "Alex"}) {
		t.Fatalf("expected no match without keywords")
	}
}

func TestFuzzyMatchesSubsequence(t *testing.T) {
	p := Fuzzy(bidderFields, "brnc")
	if !p(domain.Bidder{Name: "Bernice Yu"}) {
		t.Fatalf("expected fuzzy match")
	}
	if p(domain.Bidder{Name: "David Li"}) {
		t.Fatalf("unexpected fuzzy match")
	}
	if Fuzzy(bidderFields, "  ")(domain.Bidder{Name: "David"}) {
		t.Fatalf("blank query must not match")
	}
}

func TestRankDropsNonMatchesAndDuplicates(t *testing.T) {
	records := []domain.Bidder{
		{ID: "B1", Name: "David Li"},
		{ID: "B2", Name: "Bernice Yu"},
		{ID: "B3", Name: "Bernie"},
	}
	got := Rank(records, bidderFields, "bern")
	if len(got) != 2 {
		t.Fatalf("expected two ranked bidders, got %+v", got)
	}
	ids := []domain.ID{got[0].ID, got[1].ID}
	if !slices.Contains(ids, "B2") || !slices.Contains(ids, "B3") {
		t.Fatalf("unexpected ranking %v", ids)
	}
	if Rank(records, bidderFields, "") != nil {
		t.Fatalf("blank query ranks nothing")
	}
}

func TestComparators(t *testing.T) {
	byName := Name(func(b domain.Bidder) string { return b.Name })
	if byName(domain.Bidder{Name: "amy"}, domain.Bidder{Name: "Ben"}) >= 0 {
		t.Fatalf("name order must ignore case")
	}
	if AskingPrice(domain.Property{AskingPrice: 1}, domain.Property{AskingPrice: 2}) >= 0 {
		t.Fatalf("cheaper property first")
	}
	if BidAmount(domain.Bid{Amount: 5}, domain.Bid{Amount: 5}) != 0 {
		t.Fatalf("equal amounts compare equal")
	}
	day := domain.Date{Year: 2021, Month: 8, Day: 3}
	early := domain.Meeting{Date: day, Start: domain.NewClock(9, 0)}
	late := domain.Meeting{Date: day, Start: domain.NewClock(13, 0)}
	next := domain.Meeting{Date: domain.Date{Year: 2021, Month: 8, Day: 4}, Start: domain.NewClock(8, 0)}
	if MeetingTime(early, late) >= 0 || MeetingTime(late, next) >= 0 || MeetingTime(next, early) <= 0 {
		t.Fatalf("meetings order by date then start")
	}
}
