package followup

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Store manages follow-up task persistence in SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore creates a task store using the given database path.
func NewStore(dbPath string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS admin_tasks (
			id TEXT PRIMARY KEY,
			phone_number TEXT NOT NULL,
			task_type TEXT NOT NULL,
			priority TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_admin_tasks_status ON admin_tasks(status);
		CREATE INDEX IF NOT EXISTS idx_admin_tasks_phone ON admin_tasks(phone_number);
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateTask inserts a pending task, assigning a UUIDv7 ID and timestamp.
func (s *Store) CreateTask(t *Task) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}

	t.ID = id.String()
	t.CreatedAt = time.Now().UTC()
	if t.Status == "" {
		t.Status = StatusPending
	}

	_, err = s.db.Exec(`
		INSERT INTO admin_tasks (id, phone_number, task_type, priority, notes, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.PhoneNumber, string(t.Type), string(t.Priority), t.Notes,
		string(t.Status), t.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	s.logger.Info("follow-up task created",
		"id", t.ID,
		"phone", t.PhoneNumber,
		"type", t.Type,
		"priority", t.Priority,
	)
	return nil
}

// ListPending returns pending tasks, newest first.
func (s *Store) ListPending() ([]*Task, error) {
	rows, err := s.db.Query(`
		SELECT id, phone_number, task_type, priority, notes, status, created_at
		FROM admin_tasks
		WHERE status = ?
		ORDER BY created_at DESC
	`, string(StatusPending))
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		var t Task
		var taskType, priority, status, createdAt string
		if err := rows.Scan(&t.ID, &t.PhoneNumber, &taskType, &priority, &t.Notes, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		t.Type = TaskType(taskType)
		t.Priority = Priority(priority)
		t.Status = Status(status)
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}
