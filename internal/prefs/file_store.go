package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"bookforge/pkg/domain"
)

// FileStore keeps preferences in a single JSON document on disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type prefsDocument struct {
	UserEmail string        `json:"userEmail"`
	MyBooks   []domain.Book `json:"myBooks"`
}

// NewFileStore creates the parent directory if missing.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("prefs path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create prefs dir: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// UserEmail returns the saved email, empty when nothing was stored yet.
func (f *FileStore) UserEmail() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return "", err
	}
	return doc.UserEmail, nil
}

// SetUserEmail replaces the saved email.
func (f *FileStore) SetUserEmail(email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return err
	}
	doc.UserEmail = email
	return f.write(doc)
}

// Books returns the persisted book list, most recent first.
func (f *FileStore) Books() ([]domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	return doc.MyBooks, nil
}

// SaveBooks replaces the persisted book list.
func (f *FileStore) SaveBooks(books []domain.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return err
	}
	doc.MyBooks = books
	return f.write(doc)
}

func (f *FileStore) read() (prefsDocument, error) {
	var doc prefsDocument
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read prefs: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return prefsDocument{}, fmt.Errorf("parse prefs: %w", err)
	}
	return doc, nil
}

func (f *FileStore) write(doc prefsDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}
