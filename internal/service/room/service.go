package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/room"
)

type RoomServiceImpl struct {
	room.RoomRepository
}

func NewRoomService(roomRepository room.RoomRepository) room.RoomService {
	return &RoomServiceImpl{
		RoomRepository: roomRepository,
	}
}

// CreateRoom implements room.RoomService.
func (s *RoomServiceImpl) CreateRoom(ctx context.Context, req *room.UpsertRoomRequest) (*room.RoomResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.RoomRepository.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check room name: %w", err)
	}
	if exists {
		return nil, room.ErrRoomNameExists
	}

	r := room.Room{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
	}
	if err := s.RoomRepository.Create(ctx, &r); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	resp := room.ToRoomResponse(&r)
	return &resp, nil
}

// ListRooms implements room.RoomService.
func (s *RoomServiceImpl) ListRooms(ctx context.Context) ([]room.RoomResponse, error) {
	rooms, err := s.RoomRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	responses := make([]room.RoomResponse, 0, len(rooms))
	for i := range rooms {
		responses = append(responses, room.ToRoomResponse(&rooms[i]))
	}
	return responses, nil
}

// UpdateRoom implements room.RoomService.
func (s *RoomServiceImpl) UpdateRoom(ctx context.Context, id string, req *room.UpsertRoomRequest) (*room.RoomResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r, err := s.getRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	r.Name = req.Name
	r.Location = req.Location
	r.Capacity = req.Capacity

	if err := s.RoomRepository.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	resp := room.ToRoomResponse(r)
	return &resp, nil
}

// DeleteRoom implements room.RoomService.
func (s *RoomServiceImpl) DeleteRoom(ctx context.Context, id string) error {
	if _, err := s.getRoom(ctx, id); err != nil {
		return err
	}
	if err := s.RoomRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}

func (s *RoomServiceImpl) getRoom(ctx context.Context, id string) (*room.Room, error) {
	r, err := s.RoomRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, room.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return r, nil
}
