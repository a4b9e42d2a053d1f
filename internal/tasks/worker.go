package tasks

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/notify"
	"github.com/parkgo/parkgo/internal/report"
	"github.com/parkgo/parkgo/internal/repository"
)

type WorkerConfig struct {
	ExportsDir string
	BaseURL    string
}

// Worker drains the task queue. Tasks run to completion or fail
// independently; there are no retries, a failed task is logged and dropped.
type Worker struct {
	queue  *Queue
	store  repository.Store
	mailer notify.Mailer
	logger *slog.Logger
	cfg    WorkerConfig
}

func NewWorker(
	queue *Queue,
	store repository.Store,
	mailer notify.Mailer,
	logger *slog.Logger,
	cfg WorkerConfig,
) *Worker {
	if cfg.ExportsDir == "" {
		cfg.ExportsDir = "exports"
	}
	return &Worker{
		queue:  queue,
		store:  store,
		mailer: mailer,
		logger: logger,
		cfg:    cfg,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t, err := w.queue.Dequeue(ctx, 2*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("task dequeue failed", "error", err)
			time.Sleep(time.Second)
			continue
		}
		if t == nil {
			continue
		}

		if err := w.handle(ctx, t); err != nil {
			w.logger.Error("task failed", "task_id", t.ID, "type", t.Type, "error", err)
		}
	}
}

func (w *Worker) handle(ctx context.Context, t *Task) error {
	switch t.Type {
	case TypeParkingReminder:
		var p ParkingReminderPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return err
		}
		return w.parkingReminder(ctx, p)
	case TypeDailyReminders:
		return w.dailyReminders(ctx)
	case TypeMonthlyReports:
		return w.monthlyReports(ctx)
	case TypeExportCSV:
		var p ExportCSVPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return err
		}
		return w.exportCSV(ctx, p)
	default:
		return fmt.Errorf("unknown task type %q", t.Type)
	}
}

func (w *Worker) parkingReminder(ctx context.Context, p ParkingReminderPayload) error {
	user, err := w.store.Users().Get(ctx, p.UserID)
	if err != nil {
		return err
	}
	lot, err := w.store.Lots().Get(ctx, p.LotID)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Hey %s, park your vehicle in %s parking lot", user.Name, lot.LocationName)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe have noticed that you booked a spot in %s parking lot.\n"+
			"Please park your vehicle at spot %d and update the dashboard.\n\nRegards,\nParkGo Team",
		user.Name, lot.LocationName, p.SpotID,
	)

	return w.mailer.Send(ctx, user.Email, user.Name, subject, body)
}

// dailyReminders nudges every non-admin user about lots they have never
// booked in.
func (w *Worker) dailyReminders(ctx context.Context) error {
	users, err := w.store.Users().ListNonAdmins(ctx)
	if err != nil {
		return err
	}
	lots, err := w.store.Lots().List(ctx)
	if err != nil {
		return err
	}

	for _, user := range users {
		reservations, err := w.store.Reservations().ListByUser(ctx, user.ID)
		if err != nil {
			return err
		}
		visited := make(map[int64]bool, len(reservations))
		for _, res := range reservations {
			visited[res.LotID] = true
		}

		for _, lot := range lots {
			if visited[lot.ID] {
				continue
			}
			subject := fmt.Sprintf("Hey %s, book your spot in %s", user.Name, lot.LocationName)
			body := fmt.Sprintf(
				"Hello %s,\n\nA new parking lot \"%s\" is now available.\n"+
					"You haven't booked a spot here yet.\nBook now to reserve your place!\n\nRegards,\nParkGo Team",
				user.Name, lot.LocationName,
			)
			if err := w.mailer.Send(ctx, user.Email, user.Name, subject, body); err != nil {
				w.logger.Error("daily reminder failed", "user_id", user.ID, "lot_id", lot.ID, "error", err)
			}
		}
	}
	return nil
}

func (w *Worker) monthlyReports(ctx context.Context) error {
	now := time.Now()

	users, err := w.store.Users().ListNonAdmins(ctx)
	if err != nil {
		return err
	}
	visits, err := w.store.Reservations().CompletedVisits(ctx)
	if err != nil {
		return err
	}

	for _, user := range users {
		rep := report.BuildMonthlyReport(user.ID, visits, now.Month(), now.Year())

		subject := fmt.Sprintf("Your Monthly Report - %s", rep.Month)
		body := fmt.Sprintf(
			"Hello %s,\n\nYour parking activity for %s %d:\n\n"+
				"Completed bookings: %d\nTotal spent: %.2f\nMost used lot: %s\n\nRegards,\nParkGo Team",
			user.Name, rep.Month, rep.Year, rep.BookingsCount, rep.TotalSpent, rep.MostUsedLot,
		)
		if err := w.mailer.Send(ctx, user.Email, user.Name, subject, body); err != nil {
			w.logger.Error("monthly report failed", "user_id", user.ID, "error", err)
		}
	}
	return nil
}

// exportCSV writes the user's full parking history to the exports directory
// and emails a download link.
func (w *Worker) exportCSV(ctx context.Context, p ExportCSVPayload) error {
	user, err := w.store.Users().Get(ctx, p.UserID)
	if err != nil {
		return err
	}
	reservations, err := w.store.Reservations().ListByUser(ctx, p.UserID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(w.cfg.ExportsDir, 0o755); err != nil {
		return err
	}

	filename := fmt.Sprintf("export_user_%d.csv", p.UserID)
	f, err := os.Create(filepath.Join(w.cfg.ExportsDir, filename))
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{
		"Reservation ID", "Lot ID", "Spot ID", "Lot Name", "Vehicle Number",
		"Start", "End", "Cost", "Status",
	}); err != nil {
		return err
	}
	for _, res := range reservations {
		leaving := ""
		if res.LeavingTimestamp != nil {
			leaving = res.LeavingTimestamp.Format(time.RFC3339)
		}
		if err := cw.Write([]string{
			strconv.FormatInt(res.ID, 10),
			strconv.FormatInt(res.LotID, 10),
			strconv.FormatInt(res.SpotID, 10),
			res.LocationName,
			res.VehicleNumber,
			res.ParkingTimestamp.Format(time.RFC3339),
			leaving,
			fmt.Sprintf("%.2f", res.ParkingCost),
			exportStatus(res.Status),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	subject := "Your Parking Export is Ready"
	body := fmt.Sprintf(
		"Hi %s! Your parking data export is ready.\n\nDownload it here: %s/api/exports/download/%s",
		user.Name, w.cfg.BaseURL, filename,
	)
	return w.mailer.Send(ctx, user.Email, user.Name, subject, body)
}

func exportStatus(s domain.ReservationStatus) string {
	switch s {
	case domain.ReservationPending:
		return "Not Parked"
	case domain.ReservationActive:
		return "Parked In"
	default:
		return "Parked Out"
	}
}
