package task

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamops/teamops-backend-go/internal/domain/task"
	"github.com/teamops/teamops-backend-go/internal/domain/user"
)

type fakeTaskRepo struct {
	task.TaskRepository
	tasks      map[string]*task.Task
	lastFilter task.TaskFilter
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*task.Task)}
}

func (f *fakeTaskRepo) Create(_ context.Context, t *task.Task) error {
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (*task.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) List(_ context.Context, filter task.TaskFilter) ([]task.Task, error) {
	f.lastFilter = filter
	var out []task.Task
	for _, t := range f.tasks {
		if filter.TeamID != nil && (t.TeamID == nil || *t.TeamID != *filter.TeamID) {
			continue
		}
		if filter.AssigneeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *filter.AssigneeID) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, t *task.Task) error {
	if _, ok := f.tasks[t.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) UpdateColumn(_ context.Context, id string, column task.Column) error {
	t, ok := f.tasks[id]
	if !ok {
		return pgx.ErrNoRows
	}
	t.Column = column
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id string) error {
	delete(f.tasks, id)
	return nil
}

func sptr(s string) *string { return &s }

func seedTwoTeamBoard(repo *fakeTaskRepo) {
	repo.tasks["task-a"] = &task.Task{
		ID: "task-a", Title: "write handbook", Column: task.ColumnTodo,
		AssigneeID: sptr("emp-a"), TeamID: sptr("team-a"), CreatedBy: "leader-a",
	}
	repo.tasks["task-b"] = &task.Task{
		ID: "task-b", Title: "ship release", Column: task.ColumnTodo,
		AssigneeID: sptr("emp-b"), TeamID: sptr("team-b"), CreatedBy: "leader-b",
	}
}

func TestBoard_SelfScopedCallerSeesOnlyOwnTasks(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTwoTeamBoard(repo)
	repo.tasks["task-c"] = &task.Task{
		ID: "task-c", Title: "review contract", Column: task.ColumnTodo,
		AssigneeID: sptr("cust-1"), TeamID: sptr("team-a"), CreatedBy: "leader-a",
	}
	svc := &TaskServiceImpl{TaskRepository: repo}
	caller := user.Principal{UserID: "cust-1", Role: user.RoleCustomer, TeamID: sptr("team-a")}

	board, err := svc.Board(context.Background(), caller, task.TaskFilter{})
	require.NoError(t, err)

	require.Len(t, board.Todo, 1)
	assert.Equal(t, "task-c", board.Todo[0].ID)
	require.NotNil(t, repo.lastFilter.AssigneeID)
	assert.Equal(t, "cust-1", *repo.lastFilter.AssigneeID)
}

func TestBoard_TeamScopedCallerPinnedToOwnTeam(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTwoTeamBoard(repo)
	svc := &TaskServiceImpl{TaskRepository: repo}
	caller := user.Principal{UserID: "leader-a", Role: user.RoleLeader, TeamID: sptr("team-a")}

	// Asking for another team's board must not widen the scope
	board, err := svc.Board(context.Background(), caller, task.TaskFilter{TeamID: sptr("team-b")})
	require.NoError(t, err)

	require.Len(t, board.Todo, 1)
	assert.Equal(t, "task-a", board.Todo[0].ID)
}

func TestBoard_AllScopedCallerSeesEverything(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTwoTeamBoard(repo)
	svc := &TaskServiceImpl{TaskRepository: repo}
	caller := user.Principal{UserID: "admin", Role: user.RoleAdmin}

	board, err := svc.Board(context.Background(), caller, task.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, board.Todo, 2)
}

func TestGetTask_CrossTeamDeniedForSelfScope(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTwoTeamBoard(repo)
	svc := &TaskServiceImpl{TaskRepository: repo}
	caller := user.Principal{UserID: "emp-a", Role: user.RoleEmployee, TeamID: sptr("team-a")}

	_, err := svc.GetTask(context.Background(), caller, "task-b")
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestCreateTask_SelfScopedCannotAssignToOthers(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := &TaskServiceImpl{TaskRepository: repo}
	caller := user.Principal{UserID: "emp-a", Role: user.RoleEmployee, TeamID: sptr("team-a")}

	_, err := svc.CreateTask(context.Background(), caller, &task.CreateTaskRequest{
		Title:      "someone else's chore",
		AssigneeID: sptr("0b6c2a1e-4f5d-4a6b-8c9d-0e1f2a3b4c5d"),
	})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	assert.Empty(t, repo.tasks)
}

func TestCreateTask_TeamScopedCreatesForOwnTeam(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := &TaskServiceImpl{TaskRepository: repo}
	caller := user.Principal{UserID: "leader-a", Role: user.RoleLeader, TeamID: sptr("team-a")}

	resp, err := svc.CreateTask(context.Background(), caller, &task.CreateTaskRequest{
		Title:  "plan sprint",
		TeamID: sptr("team-a"),
	})
	require.NoError(t, err)
	assert.Equal(t, string(task.ColumnTodo), resp.Column)
	assert.Len(t, repo.tasks, 1)
}

func TestCreateTask_TeamScopedCannotCreateForOtherTeam(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := &TaskServiceImpl{TaskRepository: repo}
	caller := user.Principal{UserID: "leader-a", Role: user.RoleLeader, TeamID: sptr("team-a")}

	_, err := svc.CreateTask(context.Background(), caller, &task.CreateTaskRequest{
		Title:  "sabotage",
		TeamID: sptr("team-b"),
	})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestUpdateTask_SelfScopedCannotTouchForeignTask(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTwoTeamBoard(repo)
	svc := &TaskServiceImpl{TaskRepository: repo}
	caller := user.Principal{UserID: "emp-a", Role: user.RoleEmployee, TeamID: sptr("team-a")}

	_, err := svc.UpdateTask(context.Background(), caller, "task-b", &task.UpdateTaskRequest{
		Title: sptr("hijacked"),
	})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	assert.Equal(t, "ship release", repo.tasks["task-b"].Title)
}

func TestUpdateTask_AssigneeEditsOwnTask(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTwoTeamBoard(repo)
	svc := &TaskServiceImpl{TaskRepository: repo}
	caller := user.Principal{UserID: "emp-a", Role: user.RoleEmployee, TeamID: sptr("team-a")}

	resp, err := svc.UpdateTask(context.Background(), caller, "task-a", &task.UpdateTaskRequest{
		Title: sptr("write handbook v2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "write handbook v2", resp.Title)
}

func TestMoveTask_CrossTeamDeniedForTeamScope(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTwoTeamBoard(repo)
	svc := &TaskServiceImpl{TaskRepository: repo}
	caller := user.Principal{UserID: "leader-a", Role: user.RoleLeader, TeamID: sptr("team-a")}

	_, err := svc.MoveTask(context.Background(), caller, "task-b", &task.MoveTaskRequest{
		Column: string(task.ColumnDone),
	})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	assert.Equal(t, task.ColumnTodo, repo.tasks["task-b"].Column)
}

func TestDeleteTask_CrossTeamDenied(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTwoTeamBoard(repo)
	svc := &TaskServiceImpl{TaskRepository: repo}
	caller := user.Principal{UserID: "emp-a", Role: user.RoleEmployee, TeamID: sptr("team-a")}

	err := svc.DeleteTask(context.Background(), caller, "task-b")
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	assert.Contains(t, repo.tasks, "task-b")
}

func TestDeleteTask_AdminDeletesAnywhere(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTwoTeamBoard(repo)
	svc := &TaskServiceImpl{TaskRepository: repo}
	caller := user.Principal{UserID: "admin", Role: user.RoleAdmin}

	err := svc.DeleteTask(context.Background(), caller, "task-b")
	require.NoError(t, err)
	assert.NotContains(t, repo.tasks, "task-b")
}

func TestCreateTask_MalformedDueDateRejected(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := &TaskServiceImpl{TaskRepository: repo}
	caller := user.Principal{UserID: "admin", Role: user.RoleAdmin}

	_, err := svc.CreateTask(context.Background(), caller, &task.CreateTaskRequest{
		Title:   "quarterly review",
		DueDate: sptr("06/30/2025"),
	})
	require.Error(t, err)
	assert.Empty(t, repo.tasks)
}
