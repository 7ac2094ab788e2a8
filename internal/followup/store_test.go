package followup

import (
	"log/slog"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"), slog.Default())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateTaskAndListPending(t *testing.T) {
	store := setupTestStore(t)

	task := &Task{
		PhoneNumber: "9015550142",
		Type:        TaskSendQuote,
		Priority:    PriorityHigh,
		Notes:       "Asked for a wedding quote follow-up",
	}
	if err := store.CreateTask(task); err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID == "" {
		t.Error("expected ID to be set")
	}
	if task.Status != StatusPending {
		t.Errorf("status = %q, want %q", task.Status, StatusPending)
	}

	pending, err := store.ListPending()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	got := pending[0]
	if got.Type != TaskSendQuote || got.Priority != PriorityHigh {
		t.Errorf("got type=%q priority=%q", got.Type, got.Priority)
	}
	if got.Notes != task.Notes {
		t.Errorf("notes = %q, want %q", got.Notes, task.Notes)
	}
}

func TestParseTaskType(t *testing.T) {
	for _, valid := range []string{"call_back", "send_quote", "answer_question", "schedule_meeting"} {
		if _, err := ParseTaskType(valid); err != nil {
			t.Errorf("ParseTaskType(%q): %v", valid, err)
		}
	}
	if _, err := ParseTaskType("email_blast"); err == nil {
		t.Error("expected error for unknown task type")
	}
}

func TestParsePriority(t *testing.T) {
	for _, valid := range []string{"high", "medium", "low"} {
		if _, err := ParsePriority(valid); err != nil {
			t.Errorf("ParsePriority(%q): %v", valid, err)
		}
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("expected error for unknown priority")
	}
}
