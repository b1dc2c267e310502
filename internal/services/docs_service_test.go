package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"concierge/internal/domain/models"
)

func TestDocsServiceGeneratePlanPDF(t *testing.T) {
	in := sampleComposeInput()
	in.Lodging = []models.ListingSummary{{ID: 1, Title: "Loop Loft", City: "Chicago", PricePerNight: 129.5}}
	plan := ComposeResponse(in)

	svc := DocsService{Now: func() time.Time { return time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC) }}
	pdf, filename, err := svc.GeneratePlanPDF(plan)
	if err != nil {
		t.Fatalf("GeneratePlanPDF returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename != "TRIP_PLAN_Chicago_2025-05-10.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDocsServiceEmptyPlan(t *testing.T) {
	pdf, filename, err := DocsService{}.GeneratePlanPDF(ComposeResponse(ComposeInput{}))
	if err != nil {
		t.Fatalf("GeneratePlanPDF returned error: %v", err)
	}
	if len(pdf) == 0 || !strings.HasPrefix(filename, "TRIP_PLAN_NA_NA") {
		t.Fatalf("unexpected output: %d bytes, filename %q", len(pdf), filename)
	}
}
