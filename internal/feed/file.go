package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lox/handscribe/internal/record"
)

// LoadFile reads a captured games file, a JSON object keyed by hand id.
func LoadFile(path string) (record.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("feed: read %s: %w", path, err)
	}
	batch, err := record.DecodeBatch(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("feed: %s: %w", path, err)
	}
	return batch, nil
}

// SaveFile writes a batch back to disk in the same keyed-object shape the
// capture step produces.
func SaveFile(path string, batch record.Batch) error {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("feed: encode batch: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("feed: write %s: %w", path, err)
	}
	return nil
}
