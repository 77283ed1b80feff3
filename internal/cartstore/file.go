package cartstore

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"starbrew/internal/domain"
)

// FileStore keeps one JSON file per session under a directory. Writes go
// through a temp file and rename so a crash mid-save never leaves a
// half-written cart behind.
type FileStore struct {
	dir    string
	logger *log.Logger
}

func NewFileStore(dir string, logger *log.Logger) (*FileStore, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cart dir: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) Save(_ context.Context, sessionID string, lines []domain.LineItem) error {
	data, err := json.Marshal(toStored(lines))
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "cart-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cart: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(sessionID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace cart file: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context, sessionID string) ([]domain.LineItem, error) {
	data, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		s.logger.Printf("cart store: read session=%s error=%v", sessionID, err)
		return nil, nil
	}

	var stored []storedLine
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.Printf("cart store: discarding corrupt cart session=%s error=%v", sessionID, err)
		return nil, nil
	}
	return fromStored(stored), nil
}

func (s *FileStore) Delete(_ context.Context, sessionID string) error {
	if err := os.Remove(s.path(sessionID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cart file: %w", err)
	}
	return nil
}

// path hashes the session id so arbitrary tokens map to safe file names.
func (s *FileStore) path(sessionID string) string {
	sum := sha256.Sum256([]byte(sessionID))
	return filepath.Join(s.dir, fmt.Sprintf("%x.json", sum))
}
