package domain

// PartyType describes who is travelling.
type PartyType string

const (
	PartySolo    PartyType = "solo"
	PartyCouple  PartyType = "couple"
	PartyFamily  PartyType = "family"
	PartyFriends PartyType = "friends"
	PartyUnknown PartyType = "unknown"
)

// ParsePartyType maps free input to a PartyType; anything unrecognised is unknown.
func ParsePartyType(s string) PartyType {
	switch PartyType(s) {
	case PartySolo, PartyCouple, PartyFamily, PartyFriends:
		return PartyType(s)
	}
	return PartyUnknown
}

// TimeBlock is the scheduling granularity of an itinerary day.
type TimeBlock string

const (
	Morning   TimeBlock = "morning"
	Afternoon TimeBlock = "afternoon"
	Evening   TimeBlock = "evening"
)

// TimeBlocks lists the blocks of a day in their fixed order.
var TimeBlocks = []TimeBlock{Morning, Afternoon, Evening}

// PriceTier is a coarse price indicator.
type PriceTier string

const (
	PriceBudget   PriceTier = "$"
	PriceModerate PriceTier = "$$"
	PriceUpscale  PriceTier = "$$$"
	PriceLuxury   PriceTier = "$$$$"
	PriceUnknown  PriceTier = "unknown"
)

// PackingReason explains why a packing item was suggested.
type PackingReason string

const (
	ReasonActivity PackingReason = "activity"
	ReasonWeather  PackingReason = "weather"
	ReasonMobility PackingReason = "mobility"
)

// ContextType is one independently retrieved kind of destination context.
type ContextType string

const (
	ContextWeather     ContextType = "weather"
	ContextEvents      ContextType = "events"
	ContextPOI         ContextType = "poi"
	ContextRestaurants ContextType = "restaurants"
)

// ContextTypes lists context types in retrieval/diagnostic order.
var ContextTypes = []ContextType{ContextWeather, ContextEvents, ContextPOI, ContextRestaurants}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}
