package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/GregMSThompson/receipts-backend/internal/errs"
	"github.com/GregMSThompson/receipts-backend/internal/models"
	"github.com/GregMSThompson/receipts-backend/pkg/logger"
)

const fileBackend = "file"

// fileStore keeps the whole receipt collection in one JSON document on disk.
//
// Writes go to a temp file in the same directory which is then renamed over
// the document, so readers see either the old or the new content. writeMu
// serializes Update calls; fileMu keeps reads off the file while it is being
// replaced. gen counts completed writes and keys the coalesced loads, so a
// load never joins a read that started before the latest write.
type fileStore struct {
	path    string
	writeMu sync.Mutex
	fileMu  sync.RWMutex
	gen     atomic.Uint64
	loads   singleflight.Group
}

func NewFileStore(path string) *fileStore {
	return &fileStore{path: path}
}

func (s *fileStore) Path() string { return s.path }

func (s *fileStore) Exists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.fileMu.RLock()
	defer s.fileMu.RUnlock()

	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errs.NewPersistenceError("read", "failed to stat receipts document", err)
}

// LoadAll reads the full document. Concurrent callers of the same write
// generation share one read; each gets its own slice.
func (s *fileStore) LoadAll(ctx context.Context) ([]models.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := strconv.FormatUint(s.gen.Load(), 10)
	v, err, shared := s.loads.Do(key, func() (any, error) {
		return s.read()
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.FromContext(ctx).Debug("receipts load coalesced", "path", s.path, "generation", key)
	}
	return slices.Clone(v.([]models.Receipt)), nil
}

func (s *fileStore) SaveAll(ctx context.Context, receipts []models.Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.write(receipts)
}

// CreateAll writes receipts only when no document exists yet and reports
// whether it wrote. The check and the write share the write lock.
func (s *fileStore) CreateAll(ctx context.Context, receipts []models.Receipt) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	exists, err := s.Exists(ctx)
	if err != nil || exists {
		return false, err
	}
	if err := s.write(receipts); err != nil {
		return false, err
	}
	return true, nil
}

// Update runs load, fn and save as one critical section. Nothing is written
// when fn returns an error.
func (s *fileStore) Update(ctx context.Context, fn func([]models.Receipt) ([]models.Receipt, error)) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	current, err := s.read()
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if err := s.write(next); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("receipts document written", "path", s.path, "count", len(next))
	return nil
}

func (s *fileStore) read() ([]models.Receipt, error) {
	s.fileMu.RLock()
	b, err := os.ReadFile(s.path)
	s.fileMu.RUnlock()

	if errors.Is(err, fs.ErrNotExist) {
		return []models.Receipt{}, nil
	}
	if err != nil {
		return nil, errs.NewPersistenceError("read", "failed to read receipts document", err)
	}

	receipts := []models.Receipt{}
	if err := json.Unmarshal(b, &receipts); err != nil {
		return nil, errs.NewCorruptStoreError(fileBackend, "failed to decode receipts document", err)
	}
	if receipts == nil {
		// a literal "null" document
		receipts = []models.Receipt{}
	}
	return receipts, nil
}

func (s *fileStore) write(receipts []models.Receipt) error {
	if receipts == nil {
		receipts = []models.Receipt{}
	}
	b, err := json.Marshal(receipts)
	if err != nil {
		return errs.NewPersistenceError("write", "failed to encode receipts", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.NewPersistenceError("write", "failed to create store directory", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errs.NewPersistenceError("write", "failed to create temp file", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		cleanup()
		return errs.NewPersistenceError("write", "failed to write receipts document", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return errs.NewPersistenceError("write", "failed to sync receipts document", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errs.NewPersistenceError("write", "failed to close receipts document", err)
	}

	s.fileMu.Lock()
	err = os.Rename(tmpName, s.path)
	if err == nil {
		s.gen.Add(1)
	}
	s.fileMu.Unlock()
	if err != nil {
		cleanup()
		return errs.NewPersistenceError("write", "failed to replace receipts document", err)
	}
	return nil
}
