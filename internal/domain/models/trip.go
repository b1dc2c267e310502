package models

import (
	"time"

	"concierge/internal/domain"
)

// Mobility captures accessibility needs of the party.
type Mobility struct {
	Wheelchair bool     `json:"wheelchair"`
	Stroller   bool     `json:"stroller"`
	MaxWalkKm  *float64 `json:"max_walk_km,omitempty"`
}

// TripRequest is the canonical trip model every request shape is normalized into.
// It is built once per request and passed by value afterwards.
type TripRequest struct {
	Location      string           `json:"location"`
	StartDate     time.Time        `json:"-"`
	EndDate       time.Time        `json:"-"`
	PartyType     domain.PartyType `json:"party_type"`
	PartySize     *int             `json:"party_size,omitempty"`
	ChildrenAges  []int            `json:"children_ages"`
	Interests     []string         `json:"interests"`
	Mobility      Mobility         `json:"mobility"`
	Dietary       []string         `json:"dietary"`
	FreeTextQuery string           `json:"free_text_query,omitempty"`
}

// HasChildren reports whether any child ages were given.
func (t TripRequest) HasChildren() bool {
	return len(t.ChildrenAges) > 0
}

// DateRange is an inclusive, contiguous span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
	Days  []time.Time
}

// RawResult is one opaque item returned by the search provider.
type RawResult struct {
	Title     string `json:"title"`
	BodyText  string `json:"body_text"`
	URL       string `json:"url"`
	SourceTag string `json:"source_tag"`
}

// Activity is a candidate thing to do derived from events/POI results.
type Activity struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Tags               []string         `json:"tags"`
	PriceTier          domain.PriceTier `json:"price_tier"`
	WheelchairFriendly bool             `json:"wheelchair_friendly"`
	ChildFriendly      bool             `json:"child_friendly"`
	StrollerFriendly   bool             `json:"stroller_friendly"`
	SourceURL          string           `json:"source_url,omitempty"`
}

// Restaurant is a dining candidate derived from restaurant results.
type Restaurant struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Cuisine            string           `json:"cuisine,omitempty"`
	Tags               []string         `json:"tags"`
	PriceTier          domain.PriceTier `json:"price_tier"`
	WheelchairFriendly bool             `json:"wheelchair_friendly"`
	KidFriendly        bool             `json:"kid_friendly"`
	SourceURL          string           `json:"source_url,omitempty"`
}

// ItineraryBlock is one time-of-day slot of a day.
type ItineraryBlock struct {
	TimeBlock   domain.TimeBlock `json:"time_block"`
	Summary     string           `json:"summary"`
	ActivityIDs []string         `json:"activity_ids"`
}

// ItineraryDay always holds one block per TimeBlock, in order.
type ItineraryDay struct {
	Date   string           `json:"date"`
	Blocks []ItineraryBlock `json:"blocks"`
}

// PackingItem is one entry of the packing checklist.
type PackingItem struct {
	Item      string               `json:"item"`
	Reason    domain.PackingReason `json:"reason"`
	Mandatory bool                 `json:"mandatory"`
}

// ListingSummary is a lodging catalog row.
type ListingSummary struct {
	ID            int64   `json:"id"`
	Title         string  `json:"name"`
	PropertyType  string  `json:"property_type,omitempty"`
	City          string  `json:"city,omitempty"`
	State         string  `json:"state,omitempty"`
	Country       string  `json:"country,omitempty"`
	PricePerNight float64 `json:"price_per_night"`
	MaxGuests     int     `json:"max_guests,omitempty"`
}
