package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/receipts-backend/internal/errs"
	"github.com/GregMSThompson/receipts-backend/internal/models"
	"github.com/GregMSThompson/receipts-backend/pkg/helpers"
)

func newTestFileStore(t *testing.T) *fileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "receipts.json"))
}

func sampleReceipts() []models.Receipt {
	date := time.Date(2024, time.March, 3, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	return []models.Receipt{
		{ID: uuid.New(), Sum: 12.5, Date: date, Description: "Lunch", ExpenseType: models.Food, Location: "Deli"},
		{ID: uuid.New(), Sum: -4, Date: date.AddDate(0, 1, 0), Description: "Refund", ExpenseType: models.Other, Location: "Shop"},
	}
}

func TestFileStoreMissingDocumentIsEmpty(t *testing.T) {
	store := newTestFileStore(t)
	ctx := helpers.TestCtx()

	got, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}

	exists, err := store.Exists(ctx)
	if err != nil || exists {
		t.Fatalf("expected missing document, got exists=%v err=%v", exists, err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := helpers.TestCtx()

	for name, receipts := range map[string][]models.Receipt{
		"empty":     {},
		"populated": sampleReceipts(),
	} {
		t.Run(name, func(t *testing.T) {
			store := newTestFileStore(t)
			if err := store.SaveAll(ctx, receipts); err != nil {
				t.Fatalf("save error: %v", err)
			}
			got, err := store.LoadAll(ctx)
			if err != nil {
				t.Fatalf("load error: %v", err)
			}
			if len(got) != len(receipts) {
				t.Fatalf("expected %d receipts, got %d", len(receipts), len(got))
			}
			for i := range receipts {
				want := receipts[i]
				if got[i].ID != want.ID || got[i].Sum != want.Sum || !got[i].Date.Equal(want.Date) ||
					got[i].Description != want.Description || got[i].ExpenseType != want.ExpenseType ||
					got[i].Location != want.Location {
					t.Fatalf("receipt %d mismatch: got %+v, want %+v", i, got[i], want)
				}
			}
		})
	}
}

func TestFileStorePersistsSymbolicExpenseType(t *testing.T) {
	store := newTestFileStore(t)
	ctx := helpers.TestCtx()

	if err := store.SaveAll(ctx, sampleReceipts()); err != nil {
		t.Fatalf("save error: %v", err)
	}
	b, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if !strings.Contains(string(b), `"expenseType":"Food"`) {
		t.Fatalf("expected symbolic expense type in %s", b)
	}
}

func TestFileStoreCorruptDocument(t *testing.T) {
	store := newTestFileStore(t)
	ctx := helpers.TestCtx()

	for _, content := range []string{`{not json`, `[{"expenseType":"Groceries"}]`, `{"receipts":[]}`} {
		if err := os.WriteFile(store.Path(), []byte(content), 0o644); err != nil {
			t.Fatalf("write error: %v", err)
		}
		_, err := store.LoadAll(ctx)
		var corrupt *errs.CorruptStoreError
		if !errors.As(err, &corrupt) {
			t.Fatalf("content %q: expected CorruptStoreError, got %v", content, err)
		}
	}
}

func TestFileStoreIgnoresUnknownFields(t *testing.T) {
	store := newTestFileStore(t)
	ctx := helpers.TestCtx()

	content := `[{"id":"3f1c2a34-8f0e-4b55-9d1a-7a3b2c1d0e9f","sum":1.5,"date":"2024-01-05T00:00:00Z","description":"x","expenseType":"Utilities","location":"y","currency":"EUR"}]`
	if err := os.WriteFile(store.Path(), []byte(content), 0o644); err != nil {
		t.Fatalf("write error: %v", err)
	}

	got, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if len(got) != 1 || got[0].ExpenseType != models.Utilities {
		t.Fatalf("unexpected receipts: %+v", got)
	}
}

func TestFileStoreSaveFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write error: %v", err)
	}
	// the parent "directory" is a regular file, so every write fails
	store := NewFileStore(filepath.Join(blocker, "receipts.json"))

	err := store.SaveAll(helpers.TestCtx(), sampleReceipts())
	var persist *errs.PersistenceError
	if !errors.As(err, &persist) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if persist.Operation != "write" {
		t.Fatalf("unexpected operation: %s", persist.Operation)
	}
}

func TestFileStoreUpdateAbortsOnError(t *testing.T) {
	store := newTestFileStore(t)
	ctx := helpers.TestCtx()
	original := sampleReceipts()
	if err := store.SaveAll(ctx, original); err != nil {
		t.Fatalf("save error: %v", err)
	}

	sentinel := errors.New("abort")
	err := store.Update(ctx, func(rs []models.Receipt) ([]models.Receipt, error) {
		return nil, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	got, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if len(got) != len(original) {
		t.Fatalf("document changed after aborted update")
	}
}

func TestFileStoreConcurrentUpdatesLoseNothing(t *testing.T) {
	store := newTestFileStore(t)
	ctx := helpers.TestCtx()

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Update(ctx, func(rs []models.Receipt) ([]models.Receipt, error) {
				return append(rs, models.Receipt{ID: uuid.New(), ExpenseType: models.Food}), nil
			})
			if err != nil {
				t.Errorf("update error: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if len(got) != writers {
		t.Fatalf("expected %d receipts, got %d", writers, len(got))
	}
}

func TestFileStoreReadersNeverSeePartialDocument(t *testing.T) {
	store := newTestFileStore(t)
	ctx := helpers.TestCtx()
	if err := store.SaveAll(ctx, sampleReceipts()); err != nil {
		t.Fatalf("save error: %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = store.Update(ctx, func(rs []models.Receipt) ([]models.Receipt, error) {
				return append(rs, models.Receipt{ID: uuid.New(), ExpenseType: models.Other}), nil
			})
		}
		close(done)
	}()

	for {
		select {
		case <-done:
			wg.Wait()
			return
		default:
		}
		if _, err := store.LoadAll(ctx); err != nil {
			t.Fatalf("reader observed error during writes: %v", err)
		}
	}
}

func TestFileStoreLoadAfterUpdateSeesWrite(t *testing.T) {
	store := newTestFileStore(t)
	ctx := helpers.TestCtx()

	// a large document keeps each read in flight long enough to overlap writes
	big := make([]models.Receipt, 0, 5000)
	for i := 0; i < 5000; i++ {
		big = append(big, models.Receipt{ID: uuid.New(), Sum: float64(i), ExpenseType: models.Utilities, Location: "Depot"})
	}
	if err := store.SaveAll(ctx, big); err != nil {
		t.Fatalf("save error: %v", err)
	}

	stop := make(chan struct{})
	var readers sync.WaitGroup
	for i := 0; i < 8; i++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if _, err := store.LoadAll(ctx); err != nil {
					t.Errorf("background load error: %v", err)
					return
				}
			}
		}()
	}
	defer func() {
		close(stop)
		readers.Wait()
	}()

	for round := 0; round < 50; round++ {
		id := uuid.New()
		err := store.Update(ctx, func(rs []models.Receipt) ([]models.Receipt, error) {
			return append(rs, models.Receipt{ID: id, ExpenseType: models.Food}), nil
		})
		if err != nil {
			t.Fatalf("update error: %v", err)
		}

		got, err := store.LoadAll(ctx)
		if err != nil {
			t.Fatalf("load error: %v", err)
		}
		if !slices.ContainsFunc(got, func(r models.Receipt) bool { return r.ID == id }) {
			t.Fatalf("round %d: load after a completed update did not see receipt %s", round, id)
		}
	}
}

func TestFileStoreCreateAllOnlyWhenAbsent(t *testing.T) {
	store := newTestFileStore(t)
	ctx := helpers.TestCtx()

	created, err := store.CreateAll(ctx, sampleReceipts())
	if err != nil || !created {
		t.Fatalf("expected first create to write, got created=%v err=%v", created, err)
	}
	created, err = store.CreateAll(ctx, nil)
	if err != nil || created {
		t.Fatalf("expected second create to skip, got created=%v err=%v", created, err)
	}

	got, _ := store.LoadAll(ctx)
	if len(got) != len(sampleReceipts()) {
		t.Fatalf("existing document was replaced: %d receipts", len(got))
	}
}

func TestFileStoreLoadReturnsIndependentSlices(t *testing.T) {
	store := newTestFileStore(t)
	ctx := helpers.TestCtx()
	if err := store.SaveAll(ctx, sampleReceipts()); err != nil {
		t.Fatalf("save error: %v", err)
	}

	a, _ := store.LoadAll(ctx)
	b, _ := store.LoadAll(ctx)
	a[0].Description = "changed"
	if b[0].Description == "changed" {
		t.Fatalf("loads share backing storage")
	}
}

func TestFileStoreHonorsCanceledContext(t *testing.T) {
	store := newTestFileStore(t)
	ctx, cancel := context.WithCancel(helpers.TestCtx())
	cancel()

	if _, err := store.LoadAll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := store.SaveAll(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
