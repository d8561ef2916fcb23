package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goalrush/goalrush/internal/game"
)

// FileStore rewrites one JSON document holding every account on each save.
// The write goes to a temp file first and lands with a rename, so a crash
// mid-write leaves the previous state intact.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type fileSnapshot struct {
	Accounts []AccountRecord `json:"accounts"`
}

func (s *FileStore) Save(ctx context.Context, accounts []*game.Account) error {
	snap := fileSnapshot{Accounts: make([]AccountRecord, 0, len(accounts))}
	for _, a := range accounts {
		snap.Accounts = append(snap.Accounts, RecordFromAccount(a))
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context) ([]*game.Account, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// A missing file is a fresh install, not a failure.
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var snap fileSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", filepath.Base(s.path), err)
	}

	accounts := make([]*game.Account, 0, len(snap.Accounts))
	for _, rec := range snap.Accounts {
		accounts = append(accounts, rec.ToAccount())
	}
	return accounts, nil
}
