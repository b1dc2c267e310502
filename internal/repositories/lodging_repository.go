package repositories

import (
	"context"
	"database/sql"
	"strings"

	intconfig "concierge/internal/config"
	intdb "concierge/internal/db"
	"concierge/internal/domain/models"
	"concierge/internal/utils"
)

// Reason codes returned with an empty lodging result.
const (
	ReasonCatalogUnavailable = "catalog_unavailable"
	ReasonCatalogError       = "catalog_error"
	ReasonNoListings         = "no_listings"
)

const (
	lodgingTable    = "properties"
	maxLodgingLimit = 50
)

// LodgingRepository reads the properties catalog. It never returns an error:
// failures are reported as a reason code next to an empty slice.
type LodgingRepository struct {
	DB        *sql.DB
	RequestID string
}

func (r LodgingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// LookupByLocation matches location against city, state, country and address.
// Only the part before the first comma is used ("Chicago, IL" -> "Chicago").
func (r LodgingRepository) LookupByLocation(ctx context.Context, location string, limit int) ([]models.ListingSummary, string) {
	out := []models.ListingSummary{}

	db := r.db()
	if db == nil || !intdb.HasTable(ctx, db, lodgingTable) {
		return out, ReasonCatalogUnavailable
	}

	needle := strings.TrimSpace(location)
	if i := strings.Index(needle, ","); i >= 0 {
		needle = strings.TrimSpace(needle[:i])
	}
	if needle == "" {
		return out, ReasonNoListings
	}
	if limit <= 0 || limit > maxLodgingLimit {
		limit = maxLodgingLimit
	}

	guestsCol := "0"
	if intdb.HasColumn(ctx, db, lodgingTable, "max_guests") {
		guestsCol = "COALESCE(max_guests,0)"
	}

	pattern := "%" + escapeLike(needle) + "%"
	query := `
		SELECT id, title, COALESCE(property_type,''), COALESCE(city,''), COALESCE(state,''),
		       COALESCE(country,''), COALESCE(price_per_night,0), ` + guestsCol + `
		FROM ` + lodgingTable + `
		WHERE city LIKE ? OR state LIKE ? OR country LIKE ? OR address LIKE ?
		ORDER BY price_per_night ASC, id ASC
		LIMIT ?`

	rows, err := db.QueryContext(ctx, query, pattern, pattern, pattern, pattern, limit)
	if err != nil {
		utils.LogEvent(r.RequestID, "lodging", "query_failed", err.Error())
		return out, ReasonCatalogError
	}
	defer rows.Close()

	for rows.Next() {
		var l models.ListingSummary
		if err := rows.Scan(&l.ID, &l.Title, &l.PropertyType, &l.City, &l.State, &l.Country, &l.PricePerNight, &l.MaxGuests); err != nil {
			utils.LogEvent(r.RequestID, "lodging", "scan_failed", err.Error())
			return []models.ListingSummary{}, ReasonCatalogError
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		utils.LogEvent(r.RequestID, "lodging", "rows_failed", err.Error())
		return []models.ListingSummary{}, ReasonCatalogError
	}
	if len(out) == 0 {
		return out, ReasonNoListings
	}
	return out, ""
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
