package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kelexine/winwatch/pkg/domain/interfaces"
	"github.com/kelexine/winwatch/pkg/domain/model"
	"github.com/kelexine/winwatch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type fileStore struct {
	path string
}

// NewFileStore creates a ledger store backed by a single JSON file.
func NewFileStore(path string) interfaces.LedgerStore {
	return &fileStore{path: path}
}

// Load reads the persisted ledger. A missing file is the first run and
// yields an empty state.
func (s *fileStore) Load(ctx context.Context) (*model.LedgerState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.NewLedgerState(), nil
		}
		return nil, goerr.Wrap(err, "failed to read ledger file",
			goerr.T(types.ErrTagPersistence),
			goerr.V("path", s.path),
		)
	}

	var state model.LedgerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, goerr.Wrap(err, "ledger file is corrupt",
			goerr.T(types.ErrTagPersistence),
			goerr.V("path", s.path),
		)
	}
	if state.Builds == nil {
		state.Builds = map[string]*model.LedgerEntry{}
	}
	return &state, nil
}

// Save persists the ledger atomically: the state is written to a temp file
// in the same directory and renamed over the target, so a crash mid-write
// never leaves a torn file visible.
func (s *fileStore) Save(ctx context.Context, state *model.LedgerState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to encode ledger", goerr.T(types.ErrTagPersistence))
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create ledger directory",
			goerr.T(types.ErrTagPersistence),
			goerr.V("dir", dir),
		)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary ledger file",
			goerr.T(types.ErrTagPersistence),
			goerr.V("dir", dir),
		)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to write ledger",
			goerr.T(types.ErrTagPersistence),
			goerr.V("path", tmpPath),
		)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to flush ledger",
			goerr.T(types.ErrTagPersistence),
			goerr.V("path", tmpPath),
		)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to replace ledger file",
			goerr.T(types.ErrTagPersistence),
			goerr.V("path", s.path),
		)
	}

	return nil
}
