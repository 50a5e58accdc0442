package postgresql

import (
	"context"

	"github.com/teamops/teamops-backend-go/internal/domain/room"
	"github.com/teamops/teamops-backend-go/internal/pkg/database"
)

type roomRepositoryImpl struct {
	db *database.DB
}

func NewRoomRepository(db *database.DB) room.RoomRepository {
	return &roomRepositoryImpl{db: db}
}

// Create implements room.RoomRepository.
func (r *roomRepositoryImpl) Create(ctx context.Context, rm *room.Room) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO rooms (id, name, location, capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	return q.QueryRow(ctx, query, rm.ID, rm.Name, rm.Location, rm.Capacity).Scan(&rm.CreatedAt, &rm.UpdatedAt)
}

// GetByID implements room.RoomRepository.
func (r *roomRepositoryImpl) GetByID(ctx context.Context, id string) (*room.Room, error) {
	q := GetQuerier(ctx, r.db)

	var rm room.Room
	err := q.QueryRow(ctx, `SELECT id, name, location, capacity, created_at, updated_at FROM rooms WHERE id = $1`, id).Scan(
		&rm.ID,
		&rm.Name,
		&rm.Location,
		&rm.Capacity,
		&rm.CreatedAt,
		&rm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// List implements room.RoomRepository.
func (r *roomRepositoryImpl) List(ctx context.Context) ([]room.Room, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, location, capacity, created_at, updated_at FROM rooms ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []room.Room
	for rows.Next() {
		var rm room.Room
		err := rows.Scan(&rm.ID, &rm.Name, &rm.Location, &rm.Capacity, &rm.CreatedAt, &rm.UpdatedAt)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// ExistsByName implements room.RoomRepository.
func (r *roomRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM rooms WHERE LOWER(name) = LOWER($1))`, name).Scan(&exists)
	return exists, err
}

// Update implements room.RoomRepository.
func (r *roomRepositoryImpl) Update(ctx context.Context, rm *room.Room) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE rooms
		SET name = $1, location = $2, capacity = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := q.Exec(ctx, query, rm.Name, rm.Location, rm.Capacity, rm.ID)
	return err
}

// Delete implements room.RoomRepository.
func (r *roomRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	return err
}
