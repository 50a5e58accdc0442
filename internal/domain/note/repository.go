package note

import "context"

type NoteRepository interface {
	Create(ctx context.Context, n *Note) error
	GetByID(ctx context.Context, id string) (*Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Note, error)
	ListByTeam(ctx context.Context, teamID string) ([]Note, error)
	Update(ctx context.Context, n *Note) error
	Delete(ctx context.Context, id string) error
}
