// Package exchanges records completed SMS exchanges for auditing.
//
// The audit row is best-effort by design: the orchestrator writes it after
// the reply is already final, and a failed write must never change what the
// customer receives.
package exchanges

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Record is one inbound-message-to-reply exchange.
type Record struct {
	ID             string    `json:"id"` // UUIDv7
	PhoneNumber    string    `json:"phone_number"`
	Message        string    `json:"message"`
	Response       string    `json:"response"`
	AgentUsed      string    `json:"agent_used"`
	Classification string    `json:"classification"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store manages exchange persistence in SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore wraps an open database handle. The caller owns the handle's
// lifetime; this allows tests to run the schema on alternate drivers.
func NewStore(db *sql.DB, logger *slog.Logger) (*Store, error) {
	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Open creates an exchange store at the given database path.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s, err := NewStore(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sms_conversations (
			id TEXT PRIMARY KEY,
			phone_number TEXT NOT NULL,
			message TEXT NOT NULL,
			response TEXT NOT NULL,
			agent_used TEXT NOT NULL,
			classification TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_sms_conversations_phone ON sms_conversations(phone_number);
		CREATE INDEX IF NOT EXISTS idx_sms_conversations_created ON sms_conversations(created_at);
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert writes one exchange record, assigning ID and timestamp.
func (s *Store) Insert(r *Record) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}

	r.ID = id.String()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err = s.db.Exec(`
		INSERT INTO sms_conversations (id, phone_number, message, response, agent_used, classification, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.PhoneNumber, r.Message, r.Response, r.AgentUsed, r.Classification,
		r.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

// Recent returns the most recent exchanges for a phone number, newest
// first, up to limit.
func (s *Store) Recent(phoneNumber string, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT id, phone_number, message, response, agent_used, classification, created_at
		FROM sms_conversations
		WHERE phone_number = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, phoneNumber, limit)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var r Record
		var createdAt string
		if err := rows.Scan(&r.ID, &r.PhoneNumber, &r.Message, &r.Response, &r.AgentUsed, &r.Classification, &createdAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, &r)
	}
	return records, rows.Err()
}
