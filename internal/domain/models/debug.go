package models

import "concierge/internal/domain"

// SearchQuery records one query issued to the search provider.
type SearchQuery struct {
	Context domain.ContextType `json:"context"`
	Query   string             `json:"query"`
	Error   string             `json:"error,omitempty"`
}

// FilterCount records how relevance filtering changed one context's result set.
type FilterCount struct {
	Context domain.ContextType `json:"context"`
	Before  int                `json:"before"`
	After   int                `json:"after"`
	Stage   int                `json:"stage"`
}

// DebugTrace collects per-request inference decisions. It is diagnostic only.
type DebugTrace struct {
	RequestShape      string        `json:"request_shape"`
	InferredLocation  string        `json:"inferred_location,omitempty"`
	InferredDays      int           `json:"inferred_days,omitempty"`
	DateSource        string        `json:"date_source"`
	UsedDefaultDates  bool          `json:"used_default_dates"`
	Queries           []SearchQuery `json:"queries"`
	Filters           []FilterCount `json:"filters"`
	LodgingReason     string        `json:"lodging_reason,omitempty"`
	ExtractedInterest []string      `json:"extracted_interests"`
	Constraints       []string      `json:"constraints"`
}
