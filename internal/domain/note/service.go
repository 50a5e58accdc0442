package note

import "context"

type NoteService interface {
	CreateNote(ctx context.Context, ownerID string, teamID *string, req *CreateNoteRequest) (*NoteResponse, error)
	MyNotes(ctx context.Context, ownerID string) ([]NoteResponse, error)
	TeamNotes(ctx context.Context, teamID string) ([]NoteResponse, error)
	UpdateNote(ctx context.Context, ownerID, id string, req *UpdateNoteRequest) (*NoteResponse, error)
	DeleteNote(ctx context.Context, ownerID, id string) error
}
