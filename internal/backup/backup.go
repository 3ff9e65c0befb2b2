// Package backup serializes the whole document to a restorable JSON file.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sman1kwanyar/presensi/internal/models"
)

// ErrBadShape rejects restore payloads missing the headmaster marker,
// the only structural check the restore flow performs.
var ErrBadShape = errors.New("file backup tidak valid: field headmaster tidak ditemukan")

// Marshal renders the document as formatted JSON, ready for download.
func Marshal(state models.AppState) ([]byte, error) {
	return json.MarshalIndent(state, "", "  ")
}

// Parse validates and decodes a backup payload. The shape check is
// deliberately superficial: presence of a headmaster field.
func Parse(payload []byte) (models.AppState, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return models.AppState{}, fmt.Errorf("parse backup: %w", err)
	}
	if _, ok := raw["headmaster"]; !ok {
		return models.AppState{}, ErrBadShape
	}
	var state models.AppState
	if err := json.Unmarshal(payload, &state); err != nil {
		return models.AppState{}, fmt.Errorf("parse backup: %w", err)
	}
	return state, nil
}

// WriteFile drops a dated backup into dir, creating it when needed.
// Returns the written path.
func WriteFile(dir string, state models.AppState, date string) (string, error) {
	payload, err := Marshal(state)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("backup_%s.json", date))
	if err := os.WriteFile(path, payload, 0o640); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}
