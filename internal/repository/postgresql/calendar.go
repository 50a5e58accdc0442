package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teamops/teamops-backend-go/internal/domain/calendar"
	"github.com/teamops/teamops-backend-go/internal/pkg/database"
)

type calendarEventRepositoryImpl struct {
	db *database.DB
}

func NewCalendarEventRepository(db *database.DB) calendar.EventRepository {
	return &calendarEventRepositoryImpl{db: db}
}

const calendarColumns = `e.id, e.title, e.description, e.starts_at, e.ends_at, e.room_id,
	   e.team_id, e.created_by, e.created_at, e.updated_at`

func scanCalendarEvent(row interface{ Scan(dest ...any) error }) (calendar.Event, error) {
	var e calendar.Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.StartsAt,
		&e.EndsAt,
		&e.RoomID,
		&e.TeamID,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.RoomName,
	)
	return e, err
}

// Create implements calendar.EventRepository.
func (r *calendarEventRepositoryImpl) Create(ctx context.Context, e *calendar.Event) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO calendar_events (id, title, description, starts_at, ends_at, room_id, team_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	return q.QueryRow(ctx, query,
		e.ID,
		e.Title,
		e.Description,
		e.StartsAt,
		e.EndsAt,
		e.RoomID,
		e.TeamID,
		e.CreatedBy,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
}

// GetByID implements calendar.EventRepository.
func (r *calendarEventRepositoryImpl) GetByID(ctx context.Context, id string) (*calendar.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + calendarColumns + `, rm.name
		FROM calendar_events e
		LEFT JOIN rooms rm ON rm.id = e.room_id
		WHERE e.id = $1
	`

	e, err := scanCalendarEvent(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List implements calendar.EventRepository. Returns events intersecting
// [From, To).
func (r *calendarEventRepositoryImpl) List(ctx context.Context, filter calendar.EventFilter) ([]calendar.Event, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"e.starts_at < $1", "e.ends_at > $2"}
	args := []any{filter.To, filter.From}
	argN := 3

	if filter.TeamID != nil {
		conditions = append(conditions, fmt.Sprintf("e.team_id = $%d", argN))
		args = append(args, *filter.TeamID)
		argN++
	}
	if filter.RoomID != nil {
		conditions = append(conditions, fmt.Sprintf("e.room_id = $%d", argN))
		args = append(args, *filter.RoomID)
		argN++
	}

	query := `
		SELECT ` + calendarColumns + `, rm.name
		FROM calendar_events e
		LEFT JOIN rooms rm ON rm.id = e.room_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY e.starts_at
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []calendar.Event
	for rows.Next() {
		e, err := scanCalendarEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// HasRoomConflict implements calendar.EventRepository.
func (r *calendarEventRepositoryImpl) HasRoomConflict(ctx context.Context, roomID string, start, end time.Time, excludeEventID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM calendar_events
			WHERE room_id = $1
			  AND starts_at < $3
			  AND ends_at > $2
			  AND ($4::uuid IS NULL OR id <> $4)
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, roomID, start, end, excludeEventID).Scan(&exists)
	return exists, err
}

// Update implements calendar.EventRepository.
func (r *calendarEventRepositoryImpl) Update(ctx context.Context, e *calendar.Event) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE calendar_events
		SET title = $1, description = $2, starts_at = $3, ends_at = $4, room_id = $5, team_id = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := q.Exec(ctx, query, e.Title, e.Description, e.StartsAt, e.EndsAt, e.RoomID, e.TeamID, e.ID)
	return err
}

// Delete implements calendar.EventRepository.
func (r *calendarEventRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	return err
}
