package services

import (
	"strings"

	"concierge/internal/domain"
	"concierge/internal/domain/models"
	"concierge/internal/utils"
)

type weatherRule struct {
	triggers []string
	item     string
}

var weatherRules = []weatherRule{
	{triggers: []string{"rain", "showers", "thunder"}, item: "Rain jacket or compact umbrella"},
	{triggers: []string{"sunny", "hot", "heat", "uv"}, item: "Sunscreen, hat and sunglasses"},
	{triggers: []string{"cold", "chilly", "wind", "snow"}, item: "Warm layer or light jacket"},
}

// BuildPackingList derives the checklist from weather text and party needs.
// Weather rules fire independently of each other.
func BuildPackingList(weatherText string, mobility models.Mobility, hasChildren bool) []models.PackingItem {
	items := []models.PackingItem{
		{Item: "Comfortable walking shoes", Reason: domain.ReasonActivity, Mandatory: true},
		{Item: "Reusable water bottle", Reason: domain.ReasonActivity, Mandatory: true},
	}

	lower := strings.ToLower(weatherText)
	for _, rule := range weatherRules {
		if utils.ContainsAny(lower, rule.triggers...) {
			items = append(items, models.PackingItem{Item: rule.item, Reason: domain.ReasonWeather, Mandatory: true})
		}
	}

	if mobility.Wheelchair {
		items = append(items, models.PackingItem{Item: "Portable wheelchair ramp", Reason: domain.ReasonMobility})
	}
	if hasChildren {
		items = append(items, models.PackingItem{Item: "Snacks, wipes and child essentials", Reason: domain.ReasonActivity})
	}
	return items
}
