package services

import (
	"context"
	"fmt"
	"strings"

	"concierge/internal/domain"
	"concierge/internal/domain/models"
	"concierge/internal/utils"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultLodgingLimit = 5

	LodgingCatalogUnavailable = "catalog_unavailable"
)

// LodgingCatalog looks up listings for a destination. It never fails; the
// second value is a reason code when the result is empty.
type LodgingCatalog interface {
	LookupByLocation(ctx context.Context, location string, limit int) ([]models.ListingSummary, string)
}

// ContextSet is the filtered result of one retrieval round.
type ContextSet struct {
	Results map[domain.ContextType][]models.RawResult
	Queries []models.SearchQuery
	Filters []models.FilterCount
}

// ConciergeService runs the planning pipeline for one request.
type ConciergeService struct {
	Normalizer   Normalizer
	Search       SearchProvider
	Filter       RelevanceFilter
	Lodging      LodgingCatalog
	LodgingLimit int
	RequestID    string
}

// Plan normalizes raw, gathers context and composes the response. Only a
// malformed body returns an error.
func (s ConciergeService) Plan(ctx context.Context, raw []byte) (PlanResponse, error) {
	trip, trace, err := s.Normalizer.Normalize(raw)
	if err != nil {
		utils.LogEvent(s.RequestID, "concierge", "normalize_failed", err.Error())
		return PlanResponse{}, err
	}
	utils.LogEvent(s.RequestID, "concierge", "normalized", fmt.Sprintf("shape=%s location=%q start=%s end=%s date_source=%s",
		trace.Shape, trip.Location, utils.FormatDate(trip.StartDate), utils.FormatDate(trip.EndDate), trace.DateSource))

	set := s.RetrieveContext(ctx, trip)

	activities := DeriveActivities(set.Results)
	restaurants := DeriveRestaurants(set.Results[domain.ContextRestaurants], trip.Dietary)
	ids, titles := ActivityIDs(activities)
	itinerary := AssembleItinerary(ExpandDays(trip.StartDate, trip.EndDate), ids, titles)
	packing := BuildPackingList(weatherText(set.Results[domain.ContextWeather]), trip.Mobility, trip.HasChildren())
	lodging, reason := s.lookupLodging(ctx, trip.Location)

	debug := models.DebugTrace{
		RequestShape:      trace.Shape,
		InferredLocation:  trace.InferredLocation,
		InferredDays:      trace.InferredDays,
		DateSource:        string(trace.DateSource),
		UsedDefaultDates:  trace.UsedDefaultDates,
		Queries:           set.Queries,
		Filters:           set.Filters,
		LodgingReason:     reason,
		ExtractedInterest: nonNil(trace.Keywords.Interests),
		Constraints:       nonNil(trace.Keywords.Constraints),
	}

	utils.LogEvent(s.RequestID, "concierge", "composed", fmt.Sprintf("days=%d activities=%d restaurants=%d lodging=%d",
		len(itinerary), len(activities), len(restaurants), len(lodging)))
	return ComposeResponse(ComposeInput{
		Trip:        trip,
		Itinerary:   itinerary,
		Activities:  activities,
		Restaurants: restaurants,
		Packing:     packing,
		Lodging:     lodging,
		Debug:       debug,
	}), nil
}

// RetrieveContext queries every context type concurrently. Each goroutine
// owns one slot; diagnostics are merged afterwards in ContextTypes order.
func (s ConciergeService) RetrieveContext(ctx context.Context, trip models.TripRequest) ContextSet {
	raws := make([][]models.RawResult, len(domain.ContextTypes))
	errs := make([]error, len(domain.ContextTypes))
	queries := make([]string, len(domain.ContextTypes))

	var g errgroup.Group
	for i, ct := range domain.ContextTypes {
		i, ct := i, ct
		queries[i] = BuildQuery(ct, trip)
		g.Go(func() error {
			raws[i], errs[i] = s.search(ctx, queries[i], maxResultsByContext[ct])
			return nil
		})
	}
	_ = g.Wait()

	set := ContextSet{
		Results: map[domain.ContextType][]models.RawResult{},
		Queries: make([]models.SearchQuery, 0, len(domain.ContextTypes)),
		Filters: make([]models.FilterCount, 0, len(domain.ContextTypes)),
	}
	for i, ct := range domain.ContextTypes {
		q := models.SearchQuery{Context: ct, Query: queries[i]}
		if errs[i] != nil {
			q.Error = errs[i].Error()
			utils.LogEvent(s.RequestID, "concierge", "search_failed", fmt.Sprintf("context=%s err=%s", ct, errs[i]))
		}
		set.Queries = append(set.Queries, q)

		kept, stage := s.Filter.Filter(raws[i], trip.Location)
		set.Results[ct] = kept
		set.Filters = append(set.Filters, models.FilterCount{Context: ct, Before: len(raws[i]), After: len(kept), Stage: int(stage)})
	}
	return set
}

func (s ConciergeService) search(ctx context.Context, query string, maxResults int) ([]models.RawResult, error) {
	if s.Search == nil {
		return []models.RawResult{}, ErrProviderUnavailable
	}
	res, err := s.Search.Search(ctx, query, maxResults)
	if res == nil {
		res = []models.RawResult{}
	}
	return res, err
}

func (s ConciergeService) lookupLodging(ctx context.Context, location string) ([]models.ListingSummary, string) {
	if s.Lodging == nil {
		return []models.ListingSummary{}, LodgingCatalogUnavailable
	}
	limit := s.LodgingLimit
	if limit <= 0 {
		limit = DefaultLodgingLimit
	}
	listings, reason := s.Lodging.LookupByLocation(ctx, location, limit)
	if reason != "" {
		utils.LogEvent(s.RequestID, "concierge", "lodging_empty", "reason="+reason)
	}
	return listings, reason
}

func weatherText(results []models.RawResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, r.Title+" "+r.BodyText)
	}
	return strings.Join(parts, " ")
}
