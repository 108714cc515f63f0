// Package schema defines the broker message formats.
package schema

import (
	"encoding/json"
	"time"
)

// Wake is the fire-time message. Seq identifies the registration the wake
// was armed for, a mismatch at delivery means the wake is stale.
type Wake struct {
	NoteID  int64     `json:"note_id"`
	Seq     int64     `json:"seq"`
	FireAt  time.Time `json:"fire_at"`
	Payload string    `json:"payload"`
}

func (w *Wake) Marshal() ([]byte, error) {
	return json.Marshal(w)
}

func (w *Wake) Unmarshal(data []byte) error {
	return json.Unmarshal(data, w)
}
