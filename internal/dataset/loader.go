package dataset

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a JSON array of records from path. Malformed input fails fast;
// there is no partial recovery.
func Load(path string) ([]Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("parse data file %s: %w", path, err)
	}
	return records, nil
}

// LoadRaw reads the same JSON array but keeps each element as raw JSON
// alongside the decoded record. Subset writers use this to re-emit records
// byte-for-byte, preserving fields the Record struct does not model.
func LoadRaw(path string) ([]Record, []json.RawMessage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read data file: %w", err)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse data file %s: %w", path, err)
	}
	records := make([]Record, len(raw))
	for i, msg := range raw {
		if err := json.Unmarshal(msg, &records[i]); err != nil {
			return nil, nil, fmt.Errorf("parse record %d: %w", i, err)
		}
	}
	return records, raw, nil
}
