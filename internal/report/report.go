// Package report computes revenue, occupancy and usage summaries. All
// functions are pure: they take a snapshot of lots, spots and completed
// visits and return aggregates, so the query service can feed them from the
// store and the cache can hold their results.
package report

import (
	"time"

	"github.com/parkgo/parkgo/internal/domain"
)

// BuildAdminSummary returns one row per lot: revenue from completed
// reservations, occupied and unavailable counts, and the available count
// derived from the declared capacity.
func BuildAdminSummary(
	lots []domain.Lot,
	spots []domain.Spot,
	visits []domain.Visit,
) []domain.LotSummary {
	occupied := make(map[int64]int)
	unavailable := make(map[int64]int)
	for _, s := range spots {
		switch s.Status {
		case domain.SpotOccupied:
			occupied[s.LotID]++
		case domain.SpotUnavailable:
			unavailable[s.LotID]++
		}
	}

	revenue := make(map[int64]float64)
	for _, v := range visits {
		revenue[v.LotID] += v.Cost
	}

	out := make([]domain.LotSummary, 0, len(lots))
	for _, lot := range lots {
		out = append(out, domain.LotSummary{
			LotID:       lot.ID,
			Name:        lot.LocationName,
			Revenue:     revenue[lot.ID],
			Occupied:    occupied[lot.ID],
			Unavailable: unavailable[lot.ID],
			Available:   lot.NumberOfSpots - occupied[lot.ID] - unavailable[lot.ID],
		})
	}
	return out
}

// BuildUserSummary groups a user's completed visits by lot name, in the
// order the lots were first visited.
func BuildUserSummary(userID int64, visits []domain.Visit) []domain.UserLotSummary {
	idx := make(map[string]int)
	var out []domain.UserLotSummary

	for _, v := range visits {
		if v.UserID != userID {
			continue
		}
		i, ok := idx[v.LocationName]
		if !ok {
			i = len(out)
			idx[v.LocationName] = i
			out = append(out, domain.UserLotSummary{Location: v.LocationName})
		}
		out[i].TotalVisits++
		out[i].TotalSpent += v.Cost
	}
	return out
}

// BuildMonthlyReport summarizes a user's completed visits in one calendar
// month. When several lots share the highest visit count, the lot with the
// lowest ID wins, so the report is deterministic.
func BuildMonthlyReport(
	userID int64,
	visits []domain.Visit,
	month time.Month,
	year int,
) domain.MonthlyReport {
	rep := domain.MonthlyReport{
		UserID:      userID,
		Month:       month,
		Year:        year,
		MostUsedLot: "N/A",
	}

	counts := make(map[int64]int)
	names := make(map[int64]string)
	for _, v := range visits {
		if v.UserID != userID || v.ParkedAt.Month() != month || v.ParkedAt.Year() != year {
			continue
		}
		rep.BookingsCount++
		rep.TotalSpent += v.Cost
		counts[v.LotID]++
		names[v.LotID] = v.LocationName
	}

	var bestLot int64
	best := 0
	for lotID, n := range counts {
		if n > best || (n == best && lotID < bestLot) {
			best = n
			bestLot = lotID
		}
	}
	if best > 0 {
		rep.MostUsedLot = names[bestLot]
	}
	return rep
}
