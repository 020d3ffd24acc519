package amqp

import (
	"testing"
	"time"

	"spenddiary/internal/core"
)

func TestNewEntrySyncMessage(t *testing.T) {
	date := core.NewDate(2024, 2, 10)

	msg := NewEntrySyncMessage(date)

	if msg.Date != "2024-02-10" {
		t.Errorf("NewEntrySyncMessage() Date = %q, want %q", msg.Date, "2024-02-10")
	}
	if msg.Timestamp.IsZero() {
		t.Error("NewEntrySyncMessage() Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("NewEntrySyncMessage() Timestamp should be recent")
	}
}

func TestEntrySyncMessage_JSON(t *testing.T) {
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &EntrySyncMessage{
		Date:      "2024-02-10",
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := EntrySyncMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("EntrySyncMessageFromJSON() error = %v", err)
	}

	if parsed.Date != msg.Date {
		t.Errorf("parsed Date = %q, want %q", parsed.Date, msg.Date)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestEntrySyncMessage_EntryDate(t *testing.T) {
	msg := &EntrySyncMessage{Date: "2024-02-10"}

	date, err := msg.EntryDate()
	if err != nil {
		t.Fatalf("EntryDate() error = %v", err)
	}
	want := core.NewDate(2024, 2, 10)
	if !date.Equal(want.Time) {
		t.Errorf("EntryDate() = %v, want %v", date, want)
	}

	bad := &EntrySyncMessage{Date: "not-a-date"}
	if _, err := bad.EntryDate(); err == nil {
		t.Error("EntryDate() should fail for a malformed date")
	}
}

func TestEntrySyncMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"date": 42}`)

	if _, err := EntrySyncMessageFromJSON(invalidJSON); err == nil {
		t.Error("EntrySyncMessageFromJSON() should fail with invalid JSON")
	}
}
