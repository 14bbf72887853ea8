// Package flash implements a single-slot, one-shot notification channel used
// to pass a short-lived message across a redirect boundary.
package flash

import (
	"encoding/json"
	"time"
)

// Message types.
const (
	TypeSuccess = "success"
	TypeError   = "error"
	TypeWarning = "warning"
	TypeInfo    = "info"
)

// TTL is how long a flash message survives if never consumed.
const TTL = 60 * time.Second

// Message is a short-lived, single-use user notification.
type Message struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Slot is a single-item mailbox holding at most one serialized value.
// Multiple sets before a read overwrite; they do not accumulate.
type Slot interface {
	// Get returns the stored value and whether one is present.
	Get() (string, bool)
	// Set stores value with the given time-to-live, replacing any previous value.
	Set(value string, ttl time.Duration)
	// Delete empties the slot.
	Delete()
}

// Relay reads and writes flash messages through a Slot, keeping the logic
// independent of the storage backing it.
type Relay struct {
	slot Slot
}

// NewRelay creates a relay over the given slot.
func NewRelay(slot Slot) *Relay {
	return &Relay{slot: slot}
}

// Set writes a flash message, overwriting any previous one.
func (r *Relay) Set(msgType, message string) {
	data, err := json.Marshal(Message{Type: msgType, Message: message})
	if err != nil {
		// Message is two plain strings; marshalling cannot realistically fail.
		return
	}
	r.slot.Set(string(data), TTL)
}

// Get returns the current flash message, or nil if the slot is empty or holds
// a value that is not valid JSON. Malformed content is treated as absence,
// never as an error. Get does not clear the slot.
func (r *Relay) Get() *Message {
	value, ok := r.slot.Get()
	if !ok {
		return nil
	}
	var msg Message
	if err := json.Unmarshal([]byte(value), &msg); err != nil {
		return nil
	}
	return &msg
}

// Clear empties the slot. The consumer is expected to call this exactly once
// after displaying a non-nil message so it does not reappear before expiry.
func (r *Relay) Clear() {
	r.slot.Delete()
}
