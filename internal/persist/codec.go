package persist

import (
	"encoding/json"
	"fmt"

	"github.com/smartcart-dev/smartcart/internal/model"
)

// Marshal serializes a snapshot to indented JSON. decimal values
// marshal as quoted strings, so numeric precision survives the round
// trip exactly.
func Marshal(snap model.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal deserializes a snapshot. Absent item and history lists
// come back as empty, never nil.
func Unmarshal(data []byte) (model.Snapshot, error) {
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("parsing snapshot: %w", err)
	}

	for name, env := range snap.Envelopes {
		if env.Items == nil {
			env.Items = []model.Item{}
			snap.Envelopes[name] = env
		}
	}
	if snap.History == nil {
		snap.History = []model.HistoryRecord{}
	}
	return snap, nil
}
