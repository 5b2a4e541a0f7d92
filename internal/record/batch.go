package record

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Batch is a set of captured hands keyed by hand id, the shape the feed
// delivers before rendering begins.
type Batch map[string]*GameRecord

// DecodeBatch reads a JSON object keyed by hand id.
func DecodeBatch(r io.Reader) (Batch, error) {
	var batch Batch
	if err := json.NewDecoder(r).Decode(&batch); err != nil {
		return nil, fmt.Errorf("record: decode batch: %w", err)
	}
	return batch, nil
}

// Add stores a record unless its key is empty or already present. It reports
// whether the record was stored.
func (b Batch) Add(g *GameRecord) bool {
	if g == nil || g.Key == "" {
		return false
	}
	if _, exists := b[g.Key]; exists {
		return false
	}
	b[g.Key] = g
	return true
}

// SortedKeys returns the hand keys in a stable order: numerically when both
// keys are numbers, lexically otherwise. Go maps have no iteration order, so
// this is what makes batch output reproducible.
func (b Batch) SortedKeys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return compareKeys(keys[i], keys[j])
	})
	return keys
}

func compareKeys(a, b string) bool {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return ai < bi
	}
	return a < b
}
