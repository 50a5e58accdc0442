package postgresql

import (
	"context"
	"time"

	"github.com/teamops/teamops-backend-go/internal/domain/attendance"
	"github.com/teamops/teamops-backend-go/internal/pkg/database"
)

type attendanceEventRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceEventRepository(db *database.DB) attendance.EventRepository {
	return &attendanceEventRepositoryImpl{db: db}
}

// Create implements attendance.EventRepository. The unique index on
// (user_id, timestamp) rejects same-instant duplicates at the store.
func (r *attendanceEventRepositoryImpl) Create(ctx context.Context, ev attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (id, user_id, timestamp, kind, location, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, timestamp, kind, location, notes, created_at
	`

	var created attendance.Event
	err := q.QueryRow(ctx, query,
		ev.ID,
		ev.UserID,
		ev.Timestamp,
		ev.Kind,
		ev.Location,
		ev.Notes,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.Timestamp,
		&created.Kind,
		&created.Location,
		&created.Notes,
		&created.CreatedAt,
	)
	if err != nil {
		return attendance.Event{}, err
	}

	return created, nil
}

// GetByUser implements attendance.EventRepository.
func (r *attendanceEventRepositoryImpl) GetByUser(ctx context.Context, userID string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, timestamp, kind, location, notes, created_at
		FROM attendance_events
		WHERE user_id = $1 AND timestamp >= $2 AND timestamp < $3
		ORDER BY timestamp
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetByUsers implements attendance.EventRepository.
func (r *attendanceEventRepositoryImpl) GetByUsers(ctx context.Context, userIDs []string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, timestamp, kind, location, notes, created_at
		FROM attendance_events
		WHERE user_id = ANY($1) AND timestamp >= $2 AND timestamp < $3
		ORDER BY user_id, timestamp
	`

	rows, err := q.Query(ctx, query, userIDs, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetLastEvent implements attendance.EventRepository.
func (r *attendanceEventRepositoryImpl) GetLastEvent(ctx context.Context, userID string) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, timestamp, kind, location, notes, created_at
		FROM attendance_events
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

// GetOpenCheckIns implements attendance.EventRepository. For each user
// the trailing event is a check-in exactly when a session is still open.
func (r *attendanceEventRepositoryImpl) GetOpenCheckIns(ctx context.Context, before time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT ON (user_id)
			   id, user_id, timestamp, kind, location, notes, created_at
		FROM attendance_events
		WHERE timestamp < $1
		ORDER BY user_id, timestamp DESC
	`

	rows, err := q.Query(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}

	open := events[:0]
	for _, ev := range events {
		if ev.Kind == attendance.KindCheckIn {
			open = append(open, ev)
		}
	}
	return open, nil
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEvents(rows pgxRows) ([]attendance.Event, error) {
	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		err := rows.Scan(
			&ev.ID,
			&ev.UserID,
			&ev.Timestamp,
			&ev.Kind,
			&ev.Location,
			&ev.Notes,
			&ev.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
