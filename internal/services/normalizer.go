package services

import (
	"bytes"
	"encoding/json"
	"strings"

	"concierge/internal/domain"
	"concierge/internal/domain/models"
	"concierge/internal/utils"

	"github.com/samber/lo"
)

// Field is a canonical trip field that request shapes map onto.
type Field string

const (
	FieldLocation     Field = "location"
	FieldStartDate    Field = "start_date"
	FieldEndDate      Field = "end_date"
	FieldPartyType    Field = "party_type"
	FieldPartySize    Field = "party_size"
	FieldChildrenAges Field = "children_ages"
	FieldInterests    Field = "interests"
	FieldDietary      Field = "dietary"
	FieldWheelchair   Field = "wheelchair"
	FieldStroller     Field = "stroller"
	FieldMaxWalkKm    Field = "max_walk_km"
	FieldFreeText     Field = "free_text"
)

// FieldPath addresses a nested key of a decoded payload, e.g. booking_context.location.
type FieldPath []string

func path(keys ...string) FieldPath { return FieldPath(keys) }

// RequestShape declares how one input shape maps onto the canonical model.
// Aliases for a field are tried in order; the first non-empty value wins.
type RequestShape struct {
	Name          string
	Markers       []string
	Fields        map[Field][]FieldPath
	InferFromText bool
}

// LegacyShape is the free-form payload of the original concierge endpoint.
var LegacyShape = RequestShape{
	Name:          "legacy",
	Markers:       []string{"booking_context", "preferences", "local_context", "nlu_prompt"},
	InferFromText: true,
	Fields: map[Field][]FieldPath{
		FieldLocation: {
			path("booking_context", "location"), path("booking_context", "city"),
			path("booking_context", "destination"), path("local_context", "location"),
			path("local_context", "city"), path("preferences", "location"),
		},
		FieldStartDate: {
			path("booking_context", "start_date"), path("booking_context", "check_in_date"),
			path("booking_context", "check_in"), path("booking_context", "startDate"),
			path("preferences", "start_date"),
		},
		FieldEndDate: {
			path("booking_context", "end_date"), path("booking_context", "check_out_date"),
			path("booking_context", "check_out"), path("booking_context", "endDate"),
			path("preferences", "end_date"),
		},
		FieldPartyType:    {path("preferences", "party_type"), path("preferences", "travel_party"), path("booking_context", "party_type")},
		FieldPartySize:    {path("booking_context", "guests"), path("booking_context", "party_size"), path("preferences", "party_size")},
		FieldChildrenAges: {path("preferences", "children_ages"), path("booking_context", "children_ages")},
		FieldInterests:    {path("preferences", "interests")},
		FieldDietary:      {path("preferences", "dietary"), path("preferences", "diet")},
		FieldWheelchair:   {path("preferences", "mobility", "wheelchair"), path("preferences", "wheelchair")},
		FieldStroller:     {path("preferences", "mobility", "stroller"), path("preferences", "stroller")},
		FieldMaxWalkKm:    {path("preferences", "mobility", "max_walk_km"), path("preferences", "max_walk_km")},
		FieldFreeText:     {path("nlu_prompt"), path("local_context", "query")},
	},
}

// CanonicalShape is the structured v2 payload.
var CanonicalShape = RequestShape{
	Name:    "canonical",
	Markers: []string{"location", "start_date", "end_date", "party_type", "party", "interests", "mobility", "dietary", "free_text_query"},
	Fields: map[Field][]FieldPath{
		FieldLocation:     {path("location")},
		FieldStartDate:    {path("start_date")},
		FieldEndDate:      {path("end_date")},
		FieldPartyType:    {path("party_type"), path("party", "type")},
		FieldPartySize:    {path("party_size"), path("party", "size")},
		FieldChildrenAges: {path("children_ages"), path("party", "children_ages")},
		FieldInterests:    {path("interests")},
		FieldDietary:      {path("dietary")},
		FieldWheelchair:   {path("mobility", "wheelchair")},
		FieldStroller:     {path("mobility", "stroller")},
		FieldMaxWalkKm:    {path("mobility", "max_walk_km")},
		FieldFreeText:     {path("free_text_query"), path("query")},
	},
}

// DefaultShapes are checked in order; the last one is used when no marker matches.
var DefaultShapes = []RequestShape{LegacyShape, CanonicalShape}

// NormalizeTrace records what the normalizer inferred.
type NormalizeTrace struct {
	Shape            string
	InferredLocation string
	InferredDays     int
	DateSource       DateSource
	UsedDefaultDates bool
	Keywords         KeywordSignals
}

// Normalizer turns any supported request shape into a TripRequest.
type Normalizer struct {
	Dates  DateResolver
	Shapes []RequestShape
}

func (n Normalizer) shapes() []RequestShape {
	if len(n.Shapes) > 0 {
		return n.Shapes
	}
	return DefaultShapes
}

// Normalize decodes raw JSON. Only a malformed body is an error; every
// missing field falls back to inference or defaults.
func (n Normalizer) Normalize(raw []byte) (models.TripRequest, NormalizeTrace, error) {
	payload := map[string]any{}
	if len(bytes.TrimSpace(raw)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&payload); err != nil {
			return models.TripRequest{}, NormalizeTrace{}, domain.ValidationError{Field: "body", Msg: "payload is not a JSON object", Err: err}
		}
	}
	trip, trace := n.NormalizePayload(payload)
	return trip, trace, nil
}

// NormalizePayload maps an already decoded payload.
func (n Normalizer) NormalizePayload(payload map[string]any) (models.TripRequest, NormalizeTrace) {
	shape := n.detect(payload)
	get := func(f Field) any { return lookupField(payload, shape.Fields[f]) }

	text := stringValue(get(FieldFreeText))
	hints := ExtractTripHints(text)
	keywords := ExtractKeywords(text)
	trace := NormalizeTrace{Shape: shape.Name, Keywords: keywords}

	trip := models.TripRequest{
		Location:      utils.NormalizeSpace(stringValue(get(FieldLocation))),
		ChildrenAges:  intList(get(FieldChildrenAges)),
		Interests:     tagList(get(FieldInterests)),
		Dietary:       tagList(get(FieldDietary)),
		FreeTextQuery: text,
		Mobility: models.Mobility{
			Wheelchair: boolValue(get(FieldWheelchair)),
			Stroller:   boolValue(get(FieldStroller)),
		},
	}
	if km, ok := floatValue(get(FieldMaxWalkKm)); ok && km > 0 {
		trip.Mobility.MaxWalkKm = &km
	}
	if size, ok := intValue(get(FieldPartySize)); ok && size > 0 {
		trip.PartySize = &size
	}
	trip.PartyType = inferPartyType(stringValue(get(FieldPartyType)), trip.PartySize, trip.ChildrenAges)

	start, end := stringValue(get(FieldStartDate)), stringValue(get(FieldEndDate))
	var dr models.DateRange
	if shape.InferFromText {
		hintDays := 0
		if hints.Days != nil {
			hintDays = *hints.Days
		}
		dr, trace.DateSource = n.Dates.Resolve(start, end, text, hintDays)
		if trace.DateSource == DateSourceDefault {
			trace.InferredDays = hintDays
		}
		if keywords.HasConstraint("vegan-diet") && !lo.Contains(trip.Dietary, "vegan") {
			trip.Dietary = append(trip.Dietary, "vegan")
		}
		if keywords.HasConstraint("wheelchair-only") {
			trip.Mobility.Wheelchair = true
		}
	} else {
		dr, trace.DateSource = n.Dates.Resolve(start, end, "", 0)
	}
	trace.UsedDefaultDates = trace.DateSource == DateSourceDefault
	trip.StartDate, trip.EndDate = dr.Start, dr.End

	if trip.Location == "" && hints.Location != nil {
		trip.Location = *hints.Location
		trace.InferredLocation = trip.Location
	}
	return trip, trace
}

func (n Normalizer) detect(payload map[string]any) RequestShape {
	shapes := n.shapes()
	for _, shape := range shapes {
		for _, key := range shape.Markers {
			if _, ok := payload[key]; ok {
				return shape
			}
		}
	}
	return shapes[len(shapes)-1]
}

func lookupField(payload map[string]any, paths []FieldPath) any {
	for _, p := range paths {
		if v, ok := lookupPath(payload, p); ok && !isEmptyValue(v) {
			return v
		}
	}
	return nil
}

func lookupPath(payload map[string]any, p FieldPath) (any, bool) {
	var cur any = payload
	for _, key := range p {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func inferPartyType(raw string, size *int, childrenAges []int) domain.PartyType {
	if pt := domain.ParsePartyType(strings.ToLower(raw)); pt != domain.PartyUnknown {
		return pt
	}
	switch {
	case len(childrenAges) > 0:
		return domain.PartyFamily
	case size != nil && *size == 1:
		return domain.PartySolo
	case size != nil && *size == 2:
		return domain.PartyCouple
	}
	return domain.PartyUnknown
}
