// Package journal records propagation rounds for later inspection.
//
// A journal is a diagnostic artifact: it captures what happened during
// each round (which input fired, which nodes ran, how long everything
// took) and never feeds back into propagation. It deliberately stores
// no graph state, so replaying a journal has no effect on a System.
package journal

import (
	"encoding/json"
	"time"
)

// Version is the current journal record format version.
// Increment when making breaking changes to the record structure.
const Version = 1

// Record is the persisted trace of one propagation round.
type Record struct {
	// Metadata
	Version   int       `json:"version"`
	RoundID   string    `json:"round_id"`
	Sequence  int       `json:"sequence"`
	StartedAt time.Time `json:"started_at"`

	// Round observations
	InputPin   int        `json:"input_pin"`
	DurationMS float64    `json:"duration_ms"`
	Fired      []NodeFire `json:"fired,omitempty"`
}

// NodeFire is one node firing within a round.
type NodeFire struct {
	NodeID     string  `json:"node_id"`
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
}

// NewRecord creates a record for a completed round. The sequence number
// is assigned by the store on append.
func NewRecord(roundID string, inputPin int, startedAt time.Time, duration time.Duration, fired []NodeFire) *Record {
	return &Record{
		Version:    Version,
		RoundID:    roundID,
		StartedAt:  startedAt.UTC(),
		InputPin:   inputPin,
		DurationMS: float64(duration.Milliseconds()),
		Fired:      fired,
	}
}

// Marshal serializes a record to JSON.
func (r *Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// Unmarshal deserializes a record from JSON.
func Unmarshal(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
