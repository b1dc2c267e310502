package services

import (
	"strings"

	"concierge/internal/domain"
	"concierge/internal/domain/models"
	"concierge/internal/utils"

	"github.com/samber/lo"
)

var (
	cuisineWords = []string{
		"vegan", "vegetarian", "italian", "mexican", "japanese", "sushi", "chinese",
		"indian", "thai", "french", "greek", "korean", "seafood", "pizza", "bbq", "american",
	}
	dietaryWords = []string{"vegan", "vegetarian", "gluten-free", "halal", "kosher", "dairy-free"}
	kidWords     = []string{"kid", "child", "family", "families"}
)

// cleanTitle drops trailing site names such as "Millennium Park | Choose Chicago".
func cleanTitle(title string) string {
	title = utils.NormalizeSpace(title)
	for _, sep := range []string{" | ", " – ", " — "} {
		if i := strings.Index(title, sep); i > 0 {
			title = title[:i]
		}
	}
	return strings.TrimSpace(title)
}

func resultText(r models.RawResult) string {
	return strings.ToLower(r.Title + " " + r.BodyText)
}

// DerivePriceTier reads an explicit $-tier or a few price words from text.
func DerivePriceTier(text string) domain.PriceTier {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "$$$$") || utils.ContainsAny(lower, "luxury", "fine dining", "michelin"):
		return domain.PriceLuxury
	case strings.Contains(lower, "$$$") || utils.ContainsAny(lower, "upscale", "high-end"):
		return domain.PriceUpscale
	case strings.Contains(lower, "$$") || utils.ContainsAny(lower, "moderately priced", "mid-range"):
		return domain.PriceModerate
	case utils.ContainsAny(lower, "free admission", "free entry", "free to", "cheap", "budget", "inexpensive"):
		return domain.PriceBudget
	}
	return domain.PriceUnknown
}

// DeriveActivities turns event and POI results into de-duplicated activities,
// keeping the first occurrence of every id.
func DeriveActivities(groups map[domain.ContextType][]models.RawResult) []models.Activity {
	out := []models.Activity{}
	for _, ct := range []domain.ContextType{domain.ContextEvents, domain.ContextPOI} {
		kind := "attraction"
		if ct == domain.ContextEvents {
			kind = "event"
		}
		for _, r := range groups[ct] {
			title := cleanTitle(r.Title)
			id := utils.Slugify(title)
			if id == "" {
				continue
			}
			text := resultText(r)
			tags := []string{kind}
			for _, rule := range interestRules {
				if utils.ContainsAny(text, rule.triggers...) {
					tags = append(tags, rule.tag)
				}
			}
			wheelchair := utils.ContainsAny(text, "wheelchair", "accessible", "step-free")
			out = append(out, models.Activity{
				ID:                 id,
				Title:              title,
				Tags:               tags,
				PriceTier:          DerivePriceTier(text),
				WheelchairFriendly: wheelchair,
				ChildFriendly:      utils.ContainsAny(text, kidWords...),
				StrollerFriendly:   wheelchair || utils.ContainsAny(text, "stroller", "pram", "buggy"),
				SourceURL:          r.URL,
			})
		}
	}
	return lo.UniqBy(out, func(a models.Activity) string { return a.ID })
}

// DeriveRestaurants turns restaurant results into de-duplicated restaurants.
func DeriveRestaurants(results []models.RawResult, dietary []string) []models.Restaurant {
	out := []models.Restaurant{}
	for _, r := range results {
		title := cleanTitle(r.Title)
		id := utils.Slugify(title)
		if id == "" {
			continue
		}
		text := resultText(r)
		cuisine, _ := lo.Find(cuisineWords, func(w string) bool { return strings.Contains(text, w) })
		if cuisine == "" && len(dietary) > 0 && strings.Contains(text, dietary[0]) {
			cuisine = dietary[0]
		}
		tags := lo.Filter(dietaryWords, func(w string, _ int) bool { return strings.Contains(text, w) })
		out = append(out, models.Restaurant{
			ID:                 id,
			Title:              title,
			Cuisine:            utils.TitleCase(cuisine),
			Tags:               tags,
			PriceTier:          DerivePriceTier(text),
			WheelchairFriendly: utils.ContainsAny(text, "wheelchair", "accessible"),
			KidFriendly:        utils.ContainsAny(text, kidWords...),
			SourceURL:          r.URL,
		})
	}
	return lo.UniqBy(out, func(r models.Restaurant) string { return r.ID })
}

// ActivityIDs returns ids in pool order together with an id to title map.
func ActivityIDs(activities []models.Activity) ([]string, map[string]string) {
	ids := lo.Map(activities, func(a models.Activity, _ int) string { return a.ID })
	titles := lo.SliceToMap(activities, func(a models.Activity) (string, string) { return a.ID, a.Title })
	return ids, titles
}
