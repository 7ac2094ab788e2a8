package exchanges

import (
	"database/sql"
	"log/slog"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewStore(db, slog.Default())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestInsertAndRecent(t *testing.T) {
	store := setupTestStore(t)

	r := &Record{
		PhoneNumber:    "9015550142",
		Message:        "Are you free June 15?",
		Response:       "Great news! June 15 is available.",
		AgentUsed:      "Availability Specialist",
		Classification: "check_availability",
	}
	if err := store.Insert(r); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if r.ID == "" {
		t.Error("expected ID to be set")
	}
	if r.CreatedAt.IsZero() {
		t.Error("expected created_at to be stamped")
	}

	records, err := store.Recent("9015550142", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	got := records[0]
	if got.Message != r.Message || got.Response != r.Response {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Classification != "check_availability" {
		t.Errorf("classification = %q", got.Classification)
	}
}

func TestRecentOrderAndLimit(t *testing.T) {
	store := setupTestStore(t)

	for _, msg := range []string{"first", "second", "third"} {
		if err := store.Insert(&Record{
			PhoneNumber:    "9015550142",
			Message:        msg,
			Response:       "ok",
			AgentUsed:      "Information Specialist",
			Classification: "general_question",
		}); err != nil {
			t.Fatalf("insert %q: %v", msg, err)
		}
	}

	records, err := store.Recent("9015550142", 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	// Other phone numbers stay invisible.
	records, err = store.Recent("9015550999", 10)
	if err != nil {
		t.Fatalf("recent other: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records for other phone = %d, want 0", len(records))
	}
}
