package room

import "context"

type RoomService interface {
	CreateRoom(ctx context.Context, req *UpsertRoomRequest) (*RoomResponse, error)
	ListRooms(ctx context.Context) ([]RoomResponse, error)
	UpdateRoom(ctx context.Context, id string, req *UpsertRoomRequest) (*RoomResponse, error)
	DeleteRoom(ctx context.Context, id string) error
}
