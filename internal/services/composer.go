package services

import (
	"fmt"
	"strings"
	"time"

	"concierge/internal/domain"
	"concierge/internal/domain/models"
	"concierge/internal/utils"

	"github.com/samber/lo"
)

const (
	maxHighlightsPerDay = 5
	noPropertyMarker    = "no property"
)

// ComposeInput is everything the pipeline produced for one request.
type ComposeInput struct {
	Trip        models.TripRequest
	Itinerary   []models.ItineraryDay
	Activities  []models.Activity
	Restaurants []models.Restaurant
	Packing     []models.PackingItem
	Lodging     []models.ListingSummary
	Debug       models.DebugTrace
}

type TripSummary struct {
	Location     string           `json:"location"`
	StartDate    string           `json:"start_date"`
	EndDate      string           `json:"end_date"`
	Days         int              `json:"days"`
	PartyType    domain.PartyType `json:"party_type"`
	PartySize    *int             `json:"party_size,omitempty"`
	ChildrenAges []int            `json:"children_ages"`
	Interests    []string         `json:"interests"`
	Mobility     models.Mobility  `json:"mobility"`
	Dietary      []string         `json:"dietary"`
}

// PlanV2 is the canonical response section.
type PlanV2 struct {
	Trip        TripSummary             `json:"trip"`
	Itinerary   []models.ItineraryDay   `json:"itinerary"`
	Activities  []models.Activity       `json:"activities"`
	Restaurants []models.Restaurant     `json:"restaurants"`
	Packing     []models.PackingItem    `json:"packing"`
	Lodging     []models.ListingSummary `json:"lodging"`
}

type LegacyDay struct {
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	Highlights []string `json:"highlights"`
}

type ActivityCard struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Duration string   `json:"duration"`
	Suits    []string `json:"suits"`
	Link     string   `json:"link"`
}

type RestaurantCard struct {
	Name    string `json:"name"`
	Cuisine string `json:"cuisine"`
	Notes   string `json:"notes"`
	Link    string `json:"link"`
}

type ChecklistItem struct {
	Item string `json:"item"`
	Why  string `json:"why"`
}

// PlanResponse carries the legacy fields at the top level for existing
// clients, the canonical plan under v2 and the diagnostics under debug.
// Properties is either a listing slice or the string "no property".
type PlanResponse struct {
	DayByDayPlan              []LegacyDay       `json:"day_by_day_plan"`
	ActivityCards             []ActivityCard    `json:"activity_cards"`
	RestaurantRecommendations []RestaurantCard  `json:"restaurant_recommendations"`
	PackingChecklist          []ChecklistItem   `json:"packing_checklist"`
	Properties                any               `json:"properties"`
	V2                        PlanV2            `json:"v2"`
	Debug                     models.DebugTrace `json:"debug"`
}

// ComposeResponse renders both response shapes. It does not change any input.
func ComposeResponse(in ComposeInput) PlanResponse {
	titles := lo.SliceToMap(in.Activities, func(a models.Activity) (string, string) { return a.ID, a.Title })

	resp := PlanResponse{
		DayByDayPlan:              legacyDays(in.Trip.Location, in.Itinerary, titles),
		ActivityCards:             lo.Map(in.Activities, func(a models.Activity, _ int) ActivityCard { return activityCard(a) }),
		RestaurantRecommendations: lo.Map(in.Restaurants, func(r models.Restaurant, _ int) RestaurantCard { return restaurantCard(r) }),
		PackingChecklist:          lo.Map(in.Packing, func(p models.PackingItem, _ int) ChecklistItem { return checklistItem(p) }),
		Properties:                noPropertyMarker,
		V2: PlanV2{
			Trip:        summarizeTrip(in.Trip),
			Itinerary:   nonNil(in.Itinerary),
			Activities:  nonNil(in.Activities),
			Restaurants: nonNil(in.Restaurants),
			Packing:     nonNil(in.Packing),
			Lodging:     nonNil(in.Lodging),
		},
		Debug: in.Debug,
	}
	if len(in.Lodging) > 0 {
		resp.Properties = in.Lodging
	}
	return resp
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func summarizeTrip(t models.TripRequest) TripSummary {
	days := 0
	if !t.StartDate.IsZero() && !t.EndDate.IsZero() {
		days = utils.DaysInclusive(t.StartDate, t.EndDate)
	}
	return TripSummary{
		Location:     t.Location,
		StartDate:    formatDay(t.StartDate),
		EndDate:      formatDay(t.EndDate),
		Days:         days,
		PartyType:    t.PartyType,
		PartySize:    t.PartySize,
		ChildrenAges: nonNil(t.ChildrenAges),
		Interests:    nonNil(t.Interests),
		Mobility:     t.Mobility,
		Dietary:      nonNil(t.Dietary),
	}
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return utils.FormatDate(t)
}

func legacyDays(location string, itinerary []models.ItineraryDay, titles map[string]string) []LegacyDay {
	out := make([]LegacyDay, 0, len(itinerary))
	for i, day := range itinerary {
		title := fmt.Sprintf("Day %d", i+1)
		if location != "" {
			title = fmt.Sprintf("Day %d in %s", i+1, location)
		}
		highlights := []string{}
		for _, block := range day.Blocks {
			for _, id := range block.ActivityIDs {
				name := titles[id]
				if name == "" {
					name = id
				}
				if len(highlights) < maxHighlightsPerDay && !lo.Contains(highlights, name) {
					highlights = append(highlights, name)
				}
			}
		}
		out = append(out, LegacyDay{Day: i + 1, Title: title, Highlights: highlights})
	}
	return out
}

func activityCard(a models.Activity) ActivityCard {
	duration := "1-2 hours"
	if lo.Contains(a.Tags, "event") {
		duration = "2-3 hours"
	}
	suits := []string{}
	if a.ChildFriendly {
		suits = append(suits, "kids")
	}
	if a.WheelchairFriendly {
		suits = append(suits, "wheelchair")
	}
	if a.StrollerFriendly {
		suits = append(suits, "strollers")
	}
	return ActivityCard{
		Name:     a.Title,
		Type:     strings.Join(a.Tags, ", "),
		Duration: duration,
		Suits:    suits,
		Link:     a.SourceURL,
	}
}

func restaurantCard(r models.Restaurant) RestaurantCard {
	notes := ""
	if r.KidFriendly {
		notes = "Kid-friendly"
	}
	return RestaurantCard{Name: r.Title, Cuisine: r.Cuisine, Notes: notes, Link: r.SourceURL}
}

func checklistItem(p models.PackingItem) ChecklistItem {
	why := ""
	switch p.Reason {
	case domain.ReasonWeather:
		why = "Forecast for your dates"
	case domain.ReasonMobility:
		why = "Mobility needs"
	default:
		why = "Walking and sightseeing"
	}
	if !p.Mandatory {
		why += " (optional)"
	}
	return ChecklistItem{Item: p.Item, Why: why}
}
