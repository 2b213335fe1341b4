package amqp

import (
	"encoding/json"
	"errors"
	"time"
)

// Operations carried by ListChangedMessage.
const (
	OpListCreated  = "list_created"
	OpListUpdated  = "list_updated"
	OpListDeleted  = "list_deleted"
	OpItemsChanged = "items_changed"
	OpReset        = "reset"
)

// ListChangedMessage tells consumers that a list (or, with an empty ListID,
// the whole data set) changed. It carries no payload: consumers reload the
// state they need.
type ListChangedMessage struct {
	ListID    string    `json:"list_id,omitempty"`
	Operation string    `json:"operation"`
	Timestamp time.Time `json:"timestamp"`
}

// NewListChangedMessage creates a new message stamped with the current time.
func NewListChangedMessage(listID, operation string) *ListChangedMessage {
	return &ListChangedMessage{
		ListID:    listID,
		Operation: operation,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ListChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ListChangedMessageFromJSON creates a message from JSON bytes
func ListChangedMessageFromJSON(data []byte) (*ListChangedMessage, error) {
	var msg ListChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Operation == "" {
		return nil, errors.New("message without operation")
	}
	return &msg, nil
}
