package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"concierge/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders a composed plan as a printable PDF.
type DocsService struct {
	RequestID string
	Now       func() time.Time
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GeneratePlanPDF returns the PDF bytes and a download filename.
func (s DocsService) GeneratePlanPDF(plan PlanResponse) ([]byte, string, error) {
	trip := plan.V2.Trip
	utils.LogEvent(s.RequestID, "docs", "generate_plan_pdf", fmt.Sprintf("location=%q days=%d", trip.Location, len(plan.V2.Itinerary)))

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Trip Plan", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("TRIP PLAN: "+strings.ToUpper(safe(trip.Location, "Unknown destination"))))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Dates     : %s to %s (%d days)", safe(trip.StartDate, "-"), safe(trip.EndDate, "-"), trip.Days),
		fmt.Sprintf("Party     : %s", safe(string(trip.PartyType), "-")),
		fmt.Sprintf("Dietary   : %s", safe(strings.Join(trip.Dietary, ", "), "-")),
		fmt.Sprintf("Generated : %s", s.now().UTC().Format("2006-01-02 15:04")),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, tr(l))
		pdf.Ln(6)
	}

	section(pdf, "Itinerary")
	for i, day := range plan.V2.Itinerary {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, fmt.Sprintf("Day %d - %s", i+1, day.Date))
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		for _, b := range day.Blocks {
			pdf.MultiCell(0, 5, tr("  "+b.Summary), "", "", false)
		}
		pdf.Ln(1)
	}

	if len(plan.ActivityCards) > 0 {
		section(pdf, "Activities")
		for _, a := range plan.ActivityCards {
			line := fmt.Sprintf("- %s (%s, %s)", a.Name, safe(a.Type, "-"), a.Duration)
			pdf.MultiCell(0, 5, tr(line), "", "", false)
		}
	}

	if len(plan.RestaurantRecommendations) > 0 {
		section(pdf, "Restaurants")
		for _, r := range plan.RestaurantRecommendations {
			line := "- " + r.Name
			if r.Cuisine != "" {
				line += " (" + r.Cuisine + ")"
			}
			if r.Notes != "" {
				line += " " + r.Notes
			}
			pdf.MultiCell(0, 5, tr(line), "", "", false)
		}
	}

	section(pdf, "Packing checklist")
	for _, p := range plan.PackingChecklist {
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("[ ] %s - %s", p.Item, p.Why)), "", "", false)
	}

	if len(plan.V2.Lodging) > 0 {
		section(pdf, "Where to stay")
		for _, l := range plan.V2.Lodging {
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("- %s, %s (%.2f / night)", l.Title, safe(l.City, "-"), l.PricePerNight)), "", "", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TRIP_PLAN_%s_%s.pdf", safeFilenamePart(trip.Location), safeFilenamePart(trip.StartDate))
	return buf.Bytes(), filename, nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", ",", "")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
