package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/teamops/teamops-backend-go/internal/domain/task"
	"github.com/teamops/teamops-backend-go/internal/pkg/database"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

const taskColumns = `t.id, t.title, t.description, t.column_name, t.assignee_id, t.team_id,
	   t.created_by, t.due_date, t.created_at, t.updated_at`

func scanTask(row interface{ Scan(dest ...any) error }, withAssignee bool) (task.Task, error) {
	var t task.Task
	dest := []any{
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Column,
		&t.AssigneeID,
		&t.TeamID,
		&t.CreatedBy,
		&t.DueDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	}
	if withAssignee {
		dest = append(dest, &t.AssigneeName)
	}
	return t, row.Scan(dest...)
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t *task.Task) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (id, title, description, column_name, assignee_id, team_id, created_by, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	return q.QueryRow(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.Column,
		t.AssigneeID,
		t.TeamID,
		t.CreatedBy,
		t.DueDate,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// GetByID implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (*task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + taskColumns + `, u.full_name
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assignee_id
		WHERE t.id = $1
	`

	t, err := scanTask(q.QueryRow(ctx, query, id), true)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List implements task.TaskRepository.
func (r *taskRepositoryImpl) List(ctx context.Context, filter task.TaskFilter) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	argN := 1

	if filter.AssigneeID != nil {
		conditions = append(conditions, fmt.Sprintf("t.assignee_id = $%d", argN))
		args = append(args, *filter.AssigneeID)
		argN++
	}
	if filter.TeamID != nil {
		conditions = append(conditions, fmt.Sprintf("t.team_id = $%d", argN))
		args = append(args, *filter.TeamID)
		argN++
	}
	if filter.Column != nil {
		conditions = append(conditions, fmt.Sprintf("t.column_name = $%d", argN))
		args = append(args, *filter.Column)
		argN++
	}

	query := `
		SELECT ` + taskColumns + `, u.full_name
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assignee_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY t.due_date NULLS LAST, t.created_at
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows, true)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update implements task.TaskRepository.
func (r *taskRepositoryImpl) Update(ctx context.Context, t *task.Task) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET title = $1, description = $2, assignee_id = $3, due_date = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := q.Exec(ctx, query, t.Title, t.Description, t.AssigneeID, t.DueDate, t.ID)
	return err
}

// UpdateColumn implements task.TaskRepository.
func (r *taskRepositoryImpl) UpdateColumn(ctx context.Context, id string, column task.Column) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE tasks SET column_name = $1, updated_at = NOW() WHERE id = $2`, column, id)
	return err
}

// Delete implements task.TaskRepository.
func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}
