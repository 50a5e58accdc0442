package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/teamops/teamops-backend-go/internal/domain/user"
	"github.com/teamops/teamops-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `u.id, u.email, u.full_name, u.password_hash, u.role, u.team_id,
	   u.oauth_provider, u.oauth_provider_id, u.email_verified, u.created_at, u.updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (user.User, error) {
	var found user.User
	err := row.Scan(
		&found.ID,
		&found.Email,
		&found.FullName,
		&found.PasswordHash,
		&found.Role,
		&found.TeamID,
		&found.OAuthProvider,
		&found.OAuthProviderID,
		&found.EmailVerified,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	return found, err
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			email, full_name, password_hash, role, team_id,
			oauth_provider, oauth_provider_id, email_verified
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, email, full_name, password_hash, role, team_id,
				  oauth_provider, oauth_provider_id, email_verified, created_at, updated_at
	`

	return scanUser(q.QueryRow(ctx, query,
		newUser.Email,
		newUser.FullName,
		newUser.PasswordHash,
		newUser.Role,
		newUser.TeamID,
		newUser.OAuthProvider,
		newUser.OAuthProviderID,
		newUser.EmailVerified,
	))
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.id = $1
	`

	return scanUser(q.QueryRow(ctx, query, id))
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.email = $1
	`

	return scanUser(q.QueryRow(ctx, query, email))
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// LinkGoogleAccount implements user.UserRepository.
func (r *userRepositoryImpl) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET oauth_provider = $1, oauth_provider_id = $2, email_verified = TRUE, updated_at = NOW()
		WHERE email = $3
		RETURNING id, email, full_name, password_hash, role, team_id,
				  oauth_provider, oauth_provider_id, email_verified, created_at, updated_at
	`

	return scanUser(q.QueryRow(ctx, query, "google", googleID, email))
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	argN := 1

	if filter.TeamID != nil {
		conditions = append(conditions, fmt.Sprintf("u.team_id = $%d", argN))
		args = append(args, *filter.TeamID)
		argN++
	}
	if len(filter.UserIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("u.id = ANY($%d)", argN))
		args = append(args, filter.UserIDs)
		argN++
	}
	if filter.Role != nil {
		conditions = append(conditions, fmt.Sprintf("u.role = $%d", argN))
		args = append(args, *filter.Role)
		argN++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(u.full_name ILIKE $%d OR u.email ILIKE $%d)", argN, argN))
		args = append(args, "%"+filter.Search+"%")
		argN++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM users u WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + userColumns + `, t.name
		FROM users u
		LEFT JOIN teams t ON t.id = u.team_id
		WHERE ` + where + `
		ORDER BY u.created_at DESC
		LIMIT $` + fmt.Sprint(argN) + ` OFFSET $` + fmt.Sprint(argN+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.FullName,
			&u.PasswordHash,
			&u.Role,
			&u.TeamID,
			&u.OAuthProvider,
			&u.OAuthProviderID,
			&u.EmailVerified,
			&u.CreatedAt,
			&u.UpdatedAt,
			&u.TeamName,
		)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET full_name = $1, team_id = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := q.Exec(ctx, query, u.FullName, u.TeamID, u.ID)
	return err
}

// UpdateRole implements user.UserRepository.
func (r *userRepositoryImpl) UpdateRole(ctx context.Context, userID string, role user.Role) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, role, userID)
	return err
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, userID)
	return err
}

// GetTeamMemberIDs implements user.UserRepository.
func (r *userRepositoryImpl) GetTeamMemberIDs(ctx context.Context, teamID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM users WHERE team_id = $1 ORDER BY full_name`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
