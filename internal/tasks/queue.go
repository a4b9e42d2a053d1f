// Package tasks runs the asynchronous side effects — booking reminders,
// monthly reports, CSV exports — on a Redis-backed queue, decoupled from the
// request/response cycle. Enqueueing is fire-and-forget and task failures
// never affect the transactional outcome that triggered them.
package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	redisrepo "github.com/parkgo/parkgo/internal/repository/redis"
)

const (
	TypeParkingReminder = "parking_reminder"
	TypeDailyReminders  = "daily_reminders"
	TypeMonthlyReports  = "monthly_reports"
	TypeExportCSV       = "export_csv"
)

type Task struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

type ParkingReminderPayload struct {
	UserID int64 `json:"user_id"`
	LotID  int64 `json:"lot_id"`
	SpotID int64 `json:"spot_id"`
}

type ExportCSVPayload struct {
	UserID int64 `json:"user_id"`
}

// Queue is a Redis-list task queue: producers LPUSH, the worker BRPOPs.
type Queue struct {
	rdb *redis.Client
	key string
}

func NewQueue(rdb *redis.Client) *Queue {
	return &Queue{rdb: rdb, key: redisrepo.QueueTasks()}
}

func (q *Queue) Enqueue(ctx context.Context, typ string, payload any) error {
	t := Task{
		ID:         uuid.New().String(),
		Type:       typ,
		EnqueuedAt: time.Now(),
	}

	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		t.Payload = b
	}

	b, err := json.Marshal(t)
	if err != nil {
		return err
	}

	return q.rdb.LPush(ctx, q.key, b).Err()
}

// Dequeue blocks up to timeout for the next task. A nil task with nil error
// means the timeout elapsed.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Task, error) {
	res, err := q.rdb.BRPop(ctx, timeout, q.key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var t Task
	if err := json.Unmarshal([]byte(res[1]), &t); err != nil {
		return nil, err
	}

	return &t, nil
}
