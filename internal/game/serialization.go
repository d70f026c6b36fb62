package game

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// EncodeSnapshot serializes the snapshot to its canonical JSON form.
// encoding/json sorts map keys, so the encoding is deterministic for a
// given state and safe to hash or diff.
func EncodeSnapshot(s *GameState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot restores a snapshot from its canonical JSON form.
func DecodeSnapshot(data []byte) (*GameState, error) {
	var s GameState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Slots == nil {
		s.Slots = make([]*Card, TableSize)
	}
	if s.DefenseSlots == nil {
		s.DefenseSlots = make([]*Card, TableSize)
	}
	return &s, nil
}

// ComputeChecksum returns a SHA-256 hex digest of the canonical
// encoding. Two replicas holding the same state produce the same
// checksum regardless of map iteration order, which makes it usable for
// desync detection across the synchronized store.
func (s *GameState) ComputeChecksum() (string, error) {
	data, err := EncodeSnapshot(s)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
