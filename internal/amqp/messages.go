package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"spenddiary/internal/core"
)

// EntrySyncMessage asks the sync worker to refresh the mirror after a diary
// entry changed. It carries only the entry date, the worker reads the full
// entry from the store.
type EntrySyncMessage struct {
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntrySyncMessage(date core.Date) *EntrySyncMessage {
	return &EntrySyncMessage{
		Date:      date.String(),
		Timestamp: time.Now(),
	}
}

// EntryDate parses the date carried by the message.
func (m *EntrySyncMessage) EntryDate() (core.Date, error) {
	return core.ParseDate(m.Date)
}

func (m *EntrySyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntrySyncMessageFromJSON(data []byte) (*EntrySyncMessage, error) {
	var msg EntrySyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal entry sync message: %w", err)
	}
	return &msg, nil
}
