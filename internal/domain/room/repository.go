package room

import "context"

type RoomRepository interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context) ([]Room, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, r *Room) error
	Delete(ctx context.Context, id string) error
}
