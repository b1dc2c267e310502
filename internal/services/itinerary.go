package services

import (
	"fmt"
	"strings"
	"time"

	"concierge/internal/domain"
	"concierge/internal/domain/models"
	"concierge/internal/utils"
)

const activitiesPerBlock = 2

// AssembleItinerary schedules ids round-robin into morning/afternoon/evening
// blocks. One running index is shared by the whole trip: each block takes
// ids at (i, i+1) mod len(ids) and advances i by two. No id is invented when
// ids is empty.
func AssembleItinerary(days []time.Time, ids []string, titles map[string]string) []models.ItineraryDay {
	out := make([]models.ItineraryDay, 0, len(days))
	idx := 0
	for _, day := range days {
		blocks := make([]models.ItineraryBlock, 0, len(domain.TimeBlocks))
		for _, tb := range domain.TimeBlocks {
			picked := []string{}
			if n := len(ids); n > 0 {
				for k := 0; k < activitiesPerBlock; k++ {
					picked = append(picked, ids[(idx+k)%n])
				}
				idx = (idx + activitiesPerBlock) % n
			}
			blocks = append(blocks, models.ItineraryBlock{
				TimeBlock:   tb,
				Summary:     blockSummary(tb, picked, titles),
				ActivityIDs: picked,
			})
		}
		out = append(out, models.ItineraryDay{Date: utils.FormatDate(day), Blocks: blocks})
	}
	return out
}

func blockSummary(tb domain.TimeBlock, ids []string, titles map[string]string) string {
	label := utils.TitleCase(string(tb))
	if len(ids) == 0 {
		return label + ": free time"
	}
	names := []string{}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		name := titles[id]
		if name == "" {
			name = id
		}
		names = append(names, name)
	}
	return fmt.Sprintf("%s: %s", label, strings.Join(names, " & "))
}
