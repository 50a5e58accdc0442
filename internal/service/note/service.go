package note

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/note"
)

type NoteServiceImpl struct {
	note.NoteRepository
}

func NewNoteService(noteRepository note.NoteRepository) note.NoteService {
	return &NoteServiceImpl{
		NoteRepository: noteRepository,
	}
}

// CreateNote implements note.NoteService.
func (s *NoteServiceImpl) CreateNote(ctx context.Context, ownerID string, teamID *string, req *note.CreateNoteRequest) (*note.NoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n := note.Note{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Title:      req.Title,
		Body:       req.Body,
		Visibility: note.Visibility(req.Visibility),
	}
	if n.Visibility == note.VisibilityTeam {
		n.TeamID = teamID
	}

	if err := s.NoteRepository.Create(ctx, &n); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	resp := note.ToNoteResponse(&n)
	return &resp, nil
}

// MyNotes implements note.NoteService.
func (s *NoteServiceImpl) MyNotes(ctx context.Context, ownerID string) ([]note.NoteResponse, error) {
	notes, err := s.NoteRepository.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return toNoteResponses(notes), nil
}

// TeamNotes implements note.NoteService.
func (s *NoteServiceImpl) TeamNotes(ctx context.Context, teamID string) ([]note.NoteResponse, error) {
	notes, err := s.NoteRepository.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team notes: %w", err)
	}
	return toNoteResponses(notes), nil
}

// UpdateNote implements note.NoteService.
func (s *NoteServiceImpl) UpdateNote(ctx context.Context, ownerID, id string, req *note.UpdateNoteRequest) (*note.NoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n, err := s.getOwnedNote(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Body != nil {
		n.Body = *req.Body
	}
	if req.Pinned != nil {
		n.Pinned = *req.Pinned
	}

	if err := s.NoteRepository.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	resp := note.ToNoteResponse(n)
	return &resp, nil
}

// DeleteNote implements note.NoteService.
func (s *NoteServiceImpl) DeleteNote(ctx context.Context, ownerID, id string) error {
	if _, err := s.getOwnedNote(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.NoteRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (s *NoteServiceImpl) getOwnedNote(ctx context.Context, ownerID, id string) (*note.Note, error) {
	n, err := s.NoteRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, note.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if n.OwnerID != ownerID {
		return nil, note.ErrNotNoteOwner
	}
	return n, nil
}

func toNoteResponses(notes []note.Note) []note.NoteResponse {
	responses := make([]note.NoteResponse, 0, len(notes))
	for i := range notes {
		responses = append(responses, note.ToNoteResponse(&notes[i]))
	}
	return responses
}
