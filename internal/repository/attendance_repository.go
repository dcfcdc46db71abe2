package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
)

// ErrMessageAlreadyProcessed signals that the message tied to an attendance
// outcome was consumed by an earlier attempt. The event append is rolled
// back, making replays safe.
var ErrMessageAlreadyProcessed = errors.New("message already processed")

// AttendanceFilter narrows event listings.
type AttendanceFilter struct {
	EmployeeID *int64
	Day        *time.Time
	Limit      int
}

// AttendanceRepository encapsulates the append-only attendance event log.
type AttendanceRepository interface {
	// Latest returns the most recent event for an employee, or nil when the
	// employee has no history.
	Latest(ctx context.Context, employeeID int64) (*domain.AttendanceEvent, error)
	List(ctx context.Context, filter AttendanceFilter) ([]domain.AttendanceEvent, error)
	// RecordOutcome appends the event and marks the originating message
	// processed in one transaction. Both writes succeed or neither does.
	RecordOutcome(ctx context.Context, event *domain.AttendanceEvent, messageID int64, response string) error
}

type attendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository instantiates repository.
func NewAttendanceRepository(pool *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{pool: pool}
}

func (r *attendanceRepository) Latest(ctx context.Context, employeeID int64) (*domain.AttendanceEvent, error) {
	const query = `
        SELECT id, employee_id, kind, ts
        FROM attendance_events
        WHERE employee_id=$1
        ORDER BY ts DESC, id DESC
        LIMIT 1`

	var event domain.AttendanceEvent
	err := r.pool.QueryRow(ctx, query, employeeID).Scan(
		&event.ID,
		&event.EmployeeID,
		&event.Kind,
		&event.Timestamp,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]domain.AttendanceEvent, error) {
	query := `SELECT id, employee_id, kind, ts FROM attendance_events WHERE 1=1`
	args := []any{}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += ` AND employee_id=$1`
	}
	if filter.Day != nil {
		start := time.Date(filter.Day.Year(), filter.Day.Month(), filter.Day.Day(), 0, 0, 0, 0, filter.Day.Location())
		end := start.Add(24 * time.Hour)
		args = append(args, start)
		query += fmt.Sprintf(` AND ts >= $%d`, len(args))
		args = append(args, end)
		query += fmt.Sprintf(` AND ts < $%d`, len(args))
	}

	query += ` ORDER BY ts DESC`
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AttendanceEvent
	for rows.Next() {
		var event domain.AttendanceEvent
		if err := rows.Scan(&event.ID, &event.EmployeeID, &event.Kind, &event.Timestamp); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

func (r *attendanceRepository) RecordOutcome(ctx context.Context, event *domain.AttendanceEvent, messageID int64, response string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertEvent = `
        INSERT INTO attendance_events (employee_id, kind, ts)
        VALUES ($1, $2, $3)
        RETURNING id`
	if err := tx.QueryRow(ctx, insertEvent, event.EmployeeID, event.Kind, event.Timestamp).Scan(&event.ID); err != nil {
		return err
	}

	const consumeMessage = `
        UPDATE whatsapp_messages
        SET processed=TRUE, response=$1, command=$2
        WHERE id=$3 AND processed=FALSE`
	cmd, err := tx.Exec(ctx, consumeMessage, response, event.Kind, messageID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrMessageAlreadyProcessed
	}

	return tx.Commit(ctx)
}
