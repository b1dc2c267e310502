package services

import (
	"reflect"
	"testing"
)

func TestExtractTripHints(t *testing.T) {
	cases := []struct {
		text     string
		location string
		days     int
	}{
		{"Plan a 4-day trip to Chicago with kids, vegan food", "Chicago", 4},
		{"5 days in new   york for a conference", "New York", 5},
		{"Weekend getaway to san francisco and wine country.", "San Francisco", 0},
		{"A 45 day sabbatical in Lisbon", "Lisbon", MaxTripDays},
		{"0 days anywhere", "", 0},
	}
	for _, tc := range cases {
		h := ExtractTripHints(tc.text)
		gotLoc := ""
		if h.Location != nil {
			gotLoc = *h.Location
		}
		gotDays := 0
		if h.Days != nil {
			gotDays = *h.Days
		}
		if gotLoc != tc.location || gotDays != tc.days {
			t.Fatalf("%q: got (%q, %d) want (%q, %d)", tc.text, gotLoc, gotDays, tc.location, tc.days)
		}
	}
}

func TestExtractTripHintsPrefersTo(t *testing.T) {
	h := ExtractTripHints("Staying in Boston, then a day trip to Salem")
	if h.Location == nil || *h.Location != "Salem" {
		t.Fatalf("expected Salem, got %v", h.Location)
	}
}

func TestExtractKeywords(t *testing.T) {
	k := ExtractKeywords("Museums and a jazz concert, vegan please, no long hikes, wheelchair access")
	if want := []string{"museum", "outdoors", "music"}; !reflect.DeepEqual(k.Interests, want) {
		t.Fatalf("interests = %v, want %v", k.Interests, want)
	}
	if want := []string{"avoid-long-hikes", "wheelchair-only", "vegan-diet"}; !reflect.DeepEqual(k.Constraints, want) {
		t.Fatalf("constraints = %v, want %v", k.Constraints, want)
	}
	if !k.HasConstraint("vegan-diet") || k.HasConstraint("gluten-free") {
		t.Fatalf("HasConstraint mismatch: %v", k.Constraints)
	}
}

func TestExtractKeywordsEmpty(t *testing.T) {
	k := ExtractKeywords("   ")
	if k.Interests == nil || k.Constraints == nil || len(k.Interests)+len(k.Constraints) != 0 {
		t.Fatalf("expected empty non-nil signals, got %+v", k)
	}
}
