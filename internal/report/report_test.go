package report

import (
	"testing"
	"time"

	"github.com/parkgo/parkgo/internal/domain"
)

func TestBuildAdminSummary(t *testing.T) {
	lots := []domain.Lot{
		{ID: 1, LocationName: "Downtown", NumberOfSpots: 4},
		{ID: 2, LocationName: "Airport", NumberOfSpots: 2},
	}
	spots := []domain.Spot{
		{ID: 1, LotID: 1, Status: domain.SpotOccupied},
		{ID: 2, LotID: 1, Status: domain.SpotUnavailable},
		{ID: 3, LotID: 1, Status: domain.SpotAvailable},
		{ID: 4, LotID: 1, Status: domain.SpotAvailable},
		{ID: 5, LotID: 2, Status: domain.SpotAvailable},
		{ID: 6, LotID: 2, Status: domain.SpotAvailable},
	}
	visits := []domain.Visit{
		{ReservationID: 1, UserID: 7, LotID: 1, Cost: 10},
		{ReservationID: 2, UserID: 7, LotID: 1, Cost: 15},
		{ReservationID: 3, UserID: 8, LotID: 2, Cost: 20},
	}

	sum := BuildAdminSummary(lots, spots, visits)
	if len(sum) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(sum))
	}

	if sum[0].LotID != 1 || sum[0].Revenue != 25 {
		t.Errorf("lot 1: expected revenue 25, got %+v", sum[0])
	}
	if sum[0].Occupied != 1 || sum[0].Unavailable != 1 || sum[0].Available != 2 {
		t.Errorf("lot 1: wrong counts: %+v", sum[0])
	}
	if sum[1].LotID != 2 || sum[1].Revenue != 20 || sum[1].Available != 2 {
		t.Errorf("lot 2: wrong row: %+v", sum[1])
	}
}

func TestBuildAdminSummary_EmptyLot(t *testing.T) {
	lots := []domain.Lot{{ID: 1, LocationName: "Empty", NumberOfSpots: 3}}

	sum := BuildAdminSummary(lots, nil, nil)
	if len(sum) != 1 {
		t.Fatalf("expected 1 row, got %d", len(sum))
	}
	if sum[0].Revenue != 0 || sum[0].Available != 3 {
		t.Errorf("expected zero revenue and 3 available, got %+v", sum[0])
	}
}

func TestBuildUserSummary_FirstVisitedOrder(t *testing.T) {
	visits := []domain.Visit{
		{UserID: 1, LotID: 2, LocationName: "Airport", Cost: 20},
		{UserID: 1, LotID: 1, LocationName: "Downtown", Cost: 10},
		{UserID: 2, LotID: 1, LocationName: "Downtown", Cost: 10},
		{UserID: 1, LotID: 2, LocationName: "Airport", Cost: 25},
	}

	sum := BuildUserSummary(1, visits)
	if len(sum) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(sum))
	}
	if sum[0].Location != "Airport" || sum[0].TotalVisits != 2 || sum[0].TotalSpent != 45 {
		t.Errorf("wrong first row: %+v", sum[0])
	}
	if sum[1].Location != "Downtown" || sum[1].TotalVisits != 1 {
		t.Errorf("wrong second row: %+v", sum[1])
	}
}

func TestBuildMonthlyReport(t *testing.T) {
	march := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	april := time.Date(2025, time.April, 2, 9, 0, 0, 0, time.UTC)

	visits := []domain.Visit{
		{UserID: 1, LotID: 1, LocationName: "Downtown", Cost: 10, ParkedAt: march},
		{UserID: 1, LotID: 1, LocationName: "Downtown", Cost: 12, ParkedAt: march},
		{UserID: 1, LotID: 2, LocationName: "Airport", Cost: 30, ParkedAt: march},
		{UserID: 1, LotID: 2, LocationName: "Airport", Cost: 30, ParkedAt: april},
		{UserID: 2, LotID: 2, LocationName: "Airport", Cost: 30, ParkedAt: march},
	}

	rep := BuildMonthlyReport(1, visits, time.March, 2025)
	if rep.BookingsCount != 3 {
		t.Errorf("expected 3 bookings, got %d", rep.BookingsCount)
	}
	if rep.TotalSpent != 52 {
		t.Errorf("expected total 52, got %v", rep.TotalSpent)
	}
	if rep.MostUsedLot != "Downtown" {
		t.Errorf("expected Downtown, got %q", rep.MostUsedLot)
	}
}

func TestBuildMonthlyReport_TieBreaksOnLowestLotID(t *testing.T) {
	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	visits := []domain.Visit{
		{UserID: 1, LotID: 5, LocationName: "Newer", Cost: 1, ParkedAt: march},
		{UserID: 1, LotID: 3, LocationName: "Older", Cost: 1, ParkedAt: march},
	}

	rep := BuildMonthlyReport(1, visits, time.March, 2025)
	if rep.MostUsedLot != "Older" {
		t.Errorf("tie should go to the lowest lot ID, got %q", rep.MostUsedLot)
	}
}

func TestBuildMonthlyReport_NoVisits(t *testing.T) {
	rep := BuildMonthlyReport(1, nil, time.March, 2025)
	if rep.BookingsCount != 0 || rep.TotalSpent != 0 {
		t.Errorf("expected empty report, got %+v", rep)
	}
	if rep.MostUsedLot != "N/A" {
		t.Errorf("expected N/A, got %q", rep.MostUsedLot)
	}
}
