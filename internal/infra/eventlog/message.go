package eventlog

import (
	"encoding/json"

	"github.com/google/uuid"
)

const (
	OpRent     = "rent"
	OpReturned = "returned"
)

// IntentMessage is the wire form of a rent intent published to the intent
// topic and of a completion event published to the event topic.
type IntentMessage struct {
	Op        string    `json:"op"`
	TaskID    string    `json:"task_id,omitempty"`
	CabinetID int64     `json:"cabinet_id"`
	UserID    uuid.UUID `json:"user_id"`
}

func (m IntentMessage) encode() ([]byte, error) {
	return json.Marshal(m)
}

func decodeIntent(data []byte) (IntentMessage, error) {
	var msg IntentMessage
	err := json.Unmarshal(data, &msg)
	return msg, err
}
