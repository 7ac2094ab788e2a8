// Package contacts provides structured storage for customer leads.
//
// A contact row is the business's single record of a customer: who they
// are, what event they are planning, and where the lead stands. Rows are
// matched by normalized phone number because SMS is the primary channel.
package contacts

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lead statuses. A date counts as booked only when its contact has
// reached one of the committed statuses.
const (
	StatusNew         = "new"
	StatusConfirmed   = "confirmed"
	StatusContracted  = "contracted"
	StatusDepositPaid = "deposit_paid"
)

// BookedStatuses are the lead statuses that block a calendar date.
var BookedStatuses = []string{StatusConfirmed, StatusContracted, StatusDepositPaid}

// SQL fragments for query building.
const (
	contactColumns = "id, first_name, last_name, phone, phone_digits, email, event_type, event_date, venue_name, guest_count, budget_range, special_requests, lead_status, source, last_contacted_date, created_at, updated_at"
	activeFilter   = "deleted_at IS NULL"
)

// Contact represents one customer lead.
type Contact struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email,omitempty"`
	EventType       string    `json:"event_type,omitempty"`
	EventDate       string    `json:"event_date,omitempty"` // YYYY-MM-DD
	VenueName       string    `json:"venue_name,omitempty"`
	GuestCount      int       `json:"guest_count,omitempty"`
	BudgetRange     string    `json:"budget_range,omitempty"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	LeadStatus      string    `json:"lead_status"`
	Source          string    `json:"source,omitempty"`
	LastContacted   time.Time `json:"last_contacted_date,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FullName joins the contact's name parts, trimming when either is empty.
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Store manages contact persistence in SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore creates a contact store using the given database path.
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
		CREATE TABLE IF NOT EXISTS contacts (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL,
			phone_digits TEXT NOT NULL,
			email TEXT,
			event_type TEXT,
			event_date TEXT,
			venue_name TEXT,
			guest_count INTEGER,
			budget_range TEXT,
			special_requests TEXT,
			lead_status TEXT NOT NULL DEFAULT 'new',
			source TEXT,
			last_contacted_date TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			deleted_at TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_contacts_phone_digits ON contacts(phone_digits);
		CREATE INDEX IF NOT EXISTS idx_contacts_event_date ON contacts(event_date);
		CREATE INDEX IF NOT EXISTS idx_contacts_deleted ON contacts(deleted_at);
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// NormalizePhone strips everything but digits and keeps the trailing 10,
// so "+1 (901) 555-0142" and "9015550142" match the same contact.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

// FindByPhone returns the most recent active contact matching the phone
// number, or nil when no contact exists.
func (s *Store) FindByPhone(phone string) (*Contact, error) {
	digits := NormalizePhone(phone)
	if digits == "" {
		return nil, fmt.Errorf("phone number has no digits: %q", phone)
	}

	row := s.db.QueryRow(`
		SELECT `+contactColumns+`
		FROM contacts
		WHERE phone_digits = ? AND `+activeFilter+`
		ORDER BY created_at DESC
		LIMIT 1
	`, digits)

	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by phone: %w", err)
	}
	return c, nil
}

// Create inserts a new contact. A UUIDv7 ID and timestamps are assigned;
// lead status defaults to new.
func (s *Store) Create(c *Contact) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}
	now := time.Now().UTC()

	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.LeadStatus == "" {
		c.LeadStatus = StatusNew
	}

	_, err = s.db.Exec(`
		INSERT INTO contacts (`+contactColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID.String(), c.FirstName, c.LastName, c.Phone, NormalizePhone(c.Phone),
		nullStr(c.Email), nullStr(c.EventType), nullStr(c.EventDate),
		nullStr(c.VenueName), nullInt(c.GuestCount), nullStr(c.BudgetRange),
		nullStr(c.SpecialRequests), c.LeadStatus, nullStr(c.Source),
		nullTime(c.LastContacted), now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	s.logger.Info("contact created", "id", c.ID, "phone", c.Phone, "source", c.Source)
	return nil
}

// Updates is the bounded set of fields a conversation may change on a
// contact. Nil pointers leave the stored value untouched.
type Updates struct {
	FirstName       *string
	LastName        *string
	Email           *string
	EventType       *string
	EventDate       *string
	VenueName       *string
	GuestCount      *int
	BudgetRange     *string
	SpecialRequests *string
}

// fields returns SET clause fragments and args for the non-nil updates.
func (u Updates) fields() ([]string, []any, []string) {
	var set []string
	var args []any
	var names []string

	add := func(col string, val any) {
		set = append(set, col+" = ?")
		args = append(args, val)
		names = append(names, col)
	}

	if u.FirstName != nil {
		add("first_name", *u.FirstName)
	}
	if u.LastName != nil {
		add("last_name", *u.LastName)
	}
	if u.Email != nil {
		add("email", *u.Email)
	}
	if u.EventType != nil {
		add("event_type", *u.EventType)
	}
	if u.EventDate != nil {
		add("event_date", *u.EventDate)
	}
	if u.VenueName != nil {
		add("venue_name", *u.VenueName)
	}
	if u.GuestCount != nil {
		add("guest_count", *u.GuestCount)
	}
	if u.BudgetRange != nil {
		add("budget_range", *u.BudgetRange)
	}
	if u.SpecialRequests != nil {
		add("special_requests", *u.SpecialRequests)
	}
	return set, args, names
}

// UpdateByPhone applies sparse updates to the active contact matching the
// phone number, stamping last_contacted_date and updated_at. It returns
// the column names that were written. Updating a phone number with no
// matching contact is an error.
func (s *Store) UpdateByPhone(phone string, u Updates) ([]string, error) {
	set, args, names := u.fields()
	now := time.Now().UTC().Format(time.RFC3339)
	set = append(set, "last_contacted_date = ?", "updated_at = ?")
	args = append(args, now, now)

	digits := NormalizePhone(phone)
	args = append(args, digits)

	res, err := s.db.Exec(`
		UPDATE contacts SET `+strings.Join(set, ", ")+`
		WHERE phone_digits = ? AND `+activeFilter,
		args...)
	if err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("no contact found for phone %s", phone)
	}

	s.logger.Debug("contact updated", "phone", phone, "fields", names)
	return names, nil
}

// SetNameIfEmpty fills in a contact's name detected from a message, but
// never overwrites a name the contact already has. Returns true when the
// name was written.
func (s *Store) SetNameIfEmpty(phone, firstName, lastName string) (bool, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(`
		UPDATE contacts SET first_name = ?, last_name = ?, updated_at = ?
		WHERE phone_digits = ? AND `+activeFilter+`
		  AND TRIM(first_name) IN ('', 'New')
	`, firstName, lastName, now, NormalizePhone(phone))
	if err != nil {
		return false, fmt.Errorf("set name: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ConfirmedBookingsOn counts active contacts whose event is booked on the
// given date (YYYY-MM-DD). Zero means the date is open.
func (s *Store) ConfirmedBookingsOn(date string) (int, error) {
	placeholders := strings.Repeat("?,", len(BookedStatuses))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(BookedStatuses)+1)
	args = append(args, date)
	for _, st := range BookedStatuses {
		args = append(args, st)
	}

	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM contacts
		WHERE event_date = ? AND lead_status IN (`+placeholders+`) AND `+activeFilter,
		args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanContact.
type scanner interface {
	Scan(dest ...any) error
}

func scanContact(row scanner) (*Contact, error) {
	var c Contact
	var id string
	var digits string
	var email, eventType, eventDate, venue, budget, special, source sql.NullString
	var guests sql.NullInt64
	var lastContacted sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&id, &c.FirstName, &c.LastName, &c.Phone, &digits, &email,
		&eventType, &eventDate, &venue, &guests, &budget, &special,
		&c.LeadStatus, &source, &lastContacted, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	c.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse id: %w", err)
	}
	c.Email = email.String
	c.EventType = eventType.String
	c.EventDate = eventDate.String
	c.VenueName = venue.String
	c.GuestCount = int(guests.Int64)
	c.BudgetRange = budget.String
	c.SpecialRequests = special.String
	c.Source = source.String
	if lastContacted.Valid {
		c.LastContacted, _ = time.Parse(time.RFC3339, lastContacted.String)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &c, nil
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
