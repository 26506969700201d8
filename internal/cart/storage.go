package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retailedge/storekit/internal/domain"
)

// Storage persists the full cart item list. Save overwrites the previous
// value wholesale on every call.
type Storage interface {
	Load() ([]domain.CartItem, error)
	Save(items []domain.CartItem) error
}

// FileStorage keeps the cart in a single JSON file, the local-storage
// equivalent for a CLI session.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed cart storage at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads the persisted cart. A missing file is an empty cart, not an
// error. A corrupt file is an error; the store falls back to empty.
func (f *FileStorage) Load() ([]domain.CartItem, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse cart file: %w", err)
	}

	return items, nil
}

// Save writes the full item list as a JSON array, creating the parent
// directory if needed.
func (f *FileStorage) Save(items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create cart directory: %w", err)
		}
	}

	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}

	return nil
}
