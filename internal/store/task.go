package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/parltrack/parltrack/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskCols = `id, title, description, assignee_id, committee, due_date, status, priority, result_text, created_at`

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var assignee, committee, resultText sql.NullString

	err := scanner.Scan(&t.ID, &t.Title, &t.Description, &assignee, &committee,
		&t.DueDate, &t.Status, &t.Priority, &resultText, &t.CreatedAt)
	if err != nil {
		return nil, err
	}

	t.AssigneeID = assignee.String
	t.Committee = committee.String
	t.ResultText = resultText.String
	return &t, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *TaskStore) Insert(t *model.Task) (*model.Task, error) {
	_, err := s.db.Exec(
		`INSERT INTO tasks (id, title, description, assignee_id, committee, due_date, status, priority) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, nullable(t.AssigneeID), nullable(t.Committee), t.DueDate, t.Status, t.Priority,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return s.GetByID(t.ID)
}

// List returns all tasks ordered by due date, soonest first.
func (s *TaskStore) List() ([]model.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskCols + ` FROM tasks ORDER BY due_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) GetByID(id string) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// UpdateTaskParams is a partial update: nil fields are left untouched.
type UpdateTaskParams struct {
	Status     *model.TaskStatus
	ResultText *string
}

func (s *TaskStore) Update(id string, p UpdateTaskParams) (*model.Task, error) {
	var sets []string
	var args []any

	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *p.Status)
	}
	if p.ResultText != nil {
		sets = append(sets, "result_text = ?")
		args = append(args, *p.ResultText)
	}
	if len(sets) == 0 {
		return s.GetByID(id)
	}

	args = append(args, id)
	_, err := s.db.Exec(`UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.GetByID(id)
}
