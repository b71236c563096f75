package broker

import (
	"encoding/json"
	"time"

	"github.com/mmynk/societyledger/internal/live"
)

// ChangeMessage is the wire form of a live.Change. Origin identifies the
// publishing process so it can ignore its own messages.
type ChangeMessage struct {
	Origin     string    `json:"origin"`
	Collection string    `json:"collection"`
	SheetID    string    `json:"sheet_id,omitempty"`
	Op         string    `json:"op"`
	ID         string    `json:"id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewChangeMessage wraps c for publishing.
func NewChangeMessage(origin string, c live.Change) *ChangeMessage {
	return &ChangeMessage{
		Origin:     origin,
		Collection: c.Collection,
		SheetID:    c.SheetID,
		Op:         string(c.Op),
		ID:         c.ID,
		Timestamp:  time.Now(),
	}
}

// Change converts the message back into a live.Change.
func (m *ChangeMessage) Change() live.Change {
	return live.Change{
		Collection: m.Collection,
		SheetID:    m.SheetID,
		Op:         live.Op(m.Op),
		ID:         m.ID,
	}
}

// RoutingKey is "<collection>.<op>", e.g. "maintenance.create".
func (m *ChangeMessage) RoutingKey() string {
	return m.Collection + "." + m.Op
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
