package postgresql

import (
	"context"

	"github.com/teamops/teamops-backend-go/internal/domain/note"
	"github.com/teamops/teamops-backend-go/internal/pkg/database"
)

type noteRepositoryImpl struct {
	db *database.DB
}

func NewNoteRepository(db *database.DB) note.NoteRepository {
	return &noteRepositoryImpl{db: db}
}

const noteColumns = `id, owner_id, team_id, title, body, visibility, pinned, created_at, updated_at`

func scanNote(row interface{ Scan(dest ...any) error }) (note.Note, error) {
	var n note.Note
	err := row.Scan(
		&n.ID,
		&n.OwnerID,
		&n.TeamID,
		&n.Title,
		&n.Body,
		&n.Visibility,
		&n.Pinned,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	return n, err
}

// Create implements note.NoteRepository.
func (r *noteRepositoryImpl) Create(ctx context.Context, n *note.Note) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notes (id, owner_id, team_id, title, body, visibility, pinned)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	return q.QueryRow(ctx, query,
		n.ID,
		n.OwnerID,
		n.TeamID,
		n.Title,
		n.Body,
		n.Visibility,
		n.Pinned,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
}

// GetByID implements note.NoteRepository.
func (r *noteRepositoryImpl) GetByID(ctx context.Context, id string) (*note.Note, error) {
	q := GetQuerier(ctx, r.db)

	n, err := scanNote(q.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByOwner implements note.NoteRepository. Pinned notes come first.
func (r *noteRepositoryImpl) ListByOwner(ctx context.Context, ownerID string) ([]note.Note, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM notes WHERE owner_id = $1 ORDER BY pinned DESC, updated_at DESC`, ownerID)
}

// ListByTeam implements note.NoteRepository.
func (r *noteRepositoryImpl) ListByTeam(ctx context.Context, teamID string) ([]note.Note, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM notes WHERE team_id = $1 AND visibility = 'team' ORDER BY pinned DESC, updated_at DESC`, teamID)
}

func (r *noteRepositoryImpl) list(ctx context.Context, query string, arg any) ([]note.Note, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []note.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Update implements note.NoteRepository.
func (r *noteRepositoryImpl) Update(ctx context.Context, n *note.Note) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notes
		SET title = $1, body = $2, pinned = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := q.Exec(ctx, query, n.Title, n.Body, n.Pinned, n.ID)
	return err
}

// Delete implements note.NoteRepository.
func (r *noteRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	return err
}
