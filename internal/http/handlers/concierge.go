package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"concierge/internal/domain"
	"concierge/internal/domain/models"
	"concierge/internal/http/middleware"
	"concierge/internal/services"
	"concierge/internal/utils"

	"github.com/gin-gonic/gin"
)

const maxPlanBodyBytes = 1 << 20

// ConciergeHandler serves the planning endpoints. Dependencies are shared
// across requests; every request gets its own ConciergeService.
type ConciergeHandler struct {
	Normalizer   services.Normalizer
	Search       services.SearchProvider
	Filter       services.RelevanceFilter
	Lodging      func(requestID string) services.LodgingCatalog
	LodgingLimit int
}

func (h ConciergeHandler) service(c *gin.Context) services.ConciergeService {
	rid := middleware.GetRequestID(c)
	svc := services.ConciergeService{
		Normalizer:   h.Normalizer,
		Search:       h.Search,
		Filter:       h.Filter,
		LodgingLimit: h.LodgingLimit,
		RequestID:    rid,
	}
	if h.Lodging != nil {
		svc.Lodging = h.Lodging(rid)
	}
	return svc
}

func (h ConciergeHandler) plan(c *gin.Context) (services.PlanResponse, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxPlanBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(c, http.StatusRequestEntityTooLarge, "payload too large", nil)
			return services.PlanResponse{}, false
		}
		RespondError(c, http.StatusBadRequest, "unable to read body", err)
		return services.PlanResponse{}, false
	}

	if rc, ok := middleware.GetRequestContext(c); ok {
		utils.LogEvent(middleware.GetRequestID(c), "concierge", "plan_request", "user_id="+rc.UserID)
	}

	resp, err := h.service(c).Plan(c.Request.Context(), raw)
	if err != nil {
		RespondDomainError(c, err)
		return services.PlanResponse{}, false
	}
	return resp, true
}

// Plan handles POST /api/v1/concierge-agent.
func (h ConciergeHandler) Plan(c *gin.Context) {
	resp, ok := h.plan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PlanPDF handles POST /api/v1/concierge-agent/pdf.
func (h ConciergeHandler) PlanPDF(c *gin.Context) {
	resp, ok := h.plan(c)
	if !ok {
		return
	}

	docs := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := docs.GeneratePlanPDF(resp)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to render plan pdf", Err: err})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// LookupLodging handles GET /api/v1/lodging?location=&limit=.
func (h ConciergeHandler) LookupLodging(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		RespondDomainError(c, domain.ValidationError{Field: "location", Msg: "is required"})
		return
	}
	limit := services.DefaultLodgingLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "limit", Msg: fmt.Sprintf("must be a positive integer, got %q", raw), Err: err})
			return
		}
		limit = n
	}

	listings, reason := []models.ListingSummary{}, services.LodgingCatalogUnavailable
	if h.Lodging != nil {
		listings, reason = h.Lodging(middleware.GetRequestID(c)).LookupByLocation(c.Request.Context(), location, limit)
	}
	c.JSON(http.StatusOK, gin.H{"location": location, "listings": listings, "reason": reason})
}
