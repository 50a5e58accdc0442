package postgresql

import (
	"context"
	"time"

	"github.com/teamops/teamops-backend-go/internal/domain/leave"
	"github.com/teamops/teamops-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `l.id, l.user_id, l.start_date, l.end_date, l.reason, l.status,
	   l.reviewed_by, l.reviewed_at, l.created_at, l.updated_at`

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, req *leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, user_id, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	return q.QueryRow(ctx, query,
		req.ID,
		req.UserID,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `, u.full_name
		FROM leave_requests l
		JOIN users u ON u.id = l.user_id
		WHERE l.id = $1
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.UserID,
		&req.StartDate,
		&req.EndDate,
		&req.Reason,
		&req.Status,
		&req.ReviewedBy,
		&req.ReviewedAt,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.UserName,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetByUser implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByUser(ctx context.Context, userID string, statuses []leave.RequestStatus) ([]leave.LeaveRequest, error) {
	return r.GetByUsers(ctx, []string{userID}, statuses)
}

// GetByUsers implements leave.LeaveRepository. A nil userIDs slice means
// no user filter.
func (r *leaveRepositoryImpl) GetByUsers(ctx context.Context, userIDs []string, statuses []leave.RequestStatus) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `, u.full_name
		FROM leave_requests l
		JOIN users u ON u.id = l.user_id
		WHERE ($1::uuid[] IS NULL OR l.user_id = ANY($1))
		  AND ($2::text[] IS NULL OR l.status = ANY($2))
		ORDER BY l.created_at DESC
	`

	var statusStrings []string
	for _, s := range statuses {
		statusStrings = append(statusStrings, string(s))
	}

	rows, err := q.Query(ctx, query, userIDs, statusStrings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.StartDate,
			&req.EndDate,
			&req.Reason,
			&req.Status,
			&req.ReviewedBy,
			&req.ReviewedAt,
			&req.CreatedAt,
			&req.UpdatedAt,
			&req.UserName,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus, reviewedBy string, reviewedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := q.Exec(ctx, query, status, reviewedBy, reviewedAt, id)
	return err
}

// HasOverlap implements leave.LeaveRepository. Rejected requests do not
// block new ones.
func (r *leaveRepositoryImpl) HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE user_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, userID, start, end).Scan(&exists)
	return exists, err
}

// GetApprovedDays implements leave.LeaveRepository. Expands approved
// ranges into one row per calendar day inside [from, to].
func (r *leaveRepositoryImpl) GetApprovedDays(ctx context.Context, userIDs []string, from, to time.Time) ([]leave.ApprovedDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.user_id, d.day::date
		FROM leave_requests l
		CROSS JOIN LATERAL generate_series(
			GREATEST(l.start_date, $2::date),
			LEAST(l.end_date, $3::date),
			interval '1 day'
		) AS d(day)
		WHERE l.status = 'approved'
		  AND l.user_id = ANY($1)
		  AND l.start_date <= $3
		  AND l.end_date >= $2
		ORDER BY l.user_id, d.day
	`

	rows, err := q.Query(ctx, query, userIDs, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []leave.ApprovedDay
	for rows.Next() {
		var d leave.ApprovedDay
		if err := rows.Scan(&d.UserID, &d.Date); err != nil {
			return nil, err
		}
		d.Date = d.Date.UTC().Truncate(24 * time.Hour)
		days = append(days, d)
	}
	return days, rows.Err()
}
