package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/receipts-backend/internal/errs"
	"github.com/GregMSThompson/receipts-backend/internal/models"
	"github.com/GregMSThompson/receipts-backend/pkg/logger"
)

const firestoreBackend = "firestore"

// receiptsDocument is the single Firestore document holding the collection.
type receiptsDocument struct {
	Receipts  []firestoreReceipt `firestore:"receipts"`
	UpdatedAt time.Time          `firestore:"updatedAt"`
}

type firestoreReceipt struct {
	ID          string    `firestore:"id"`
	Sum         float64   `firestore:"sum"`
	Date        time.Time `firestore:"date"`
	Description string    `firestore:"description"`
	ExpenseType string    `firestore:"expenseType"`
	Location    string    `firestore:"location"`
}

type firestoreStore struct {
	client *firestore.Client
	name   string
}

// NewFirestoreStore keeps the collection in receipt_stores/{name}.
func NewFirestoreStore(client *firestore.Client, name string) *firestoreStore {
	return &firestoreStore{client: client, name: name}
}

func (s *firestoreStore) doc() *firestore.DocumentRef {
	return s.client.Collection("receipt_stores").Doc(s.name)
}

func (s *firestoreStore) Exists(ctx context.Context) (bool, error) {
	_, err := s.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errs.NewPersistenceError("read", "failed to get receipts document", err)
	}
	return true, nil
}

func (s *firestoreStore) LoadAll(ctx context.Context) ([]models.Receipt, error) {
	snap, err := s.doc().Get(ctx)
	return decodeSnapshot(snap, err)
}

func (s *firestoreStore) SaveAll(ctx context.Context, receipts []models.Receipt) error {
	if _, err := s.doc().Set(ctx, encodeDocument(receipts)); err != nil {
		return errs.NewPersistenceError("write", "failed to set receipts document", err)
	}
	return nil
}

// CreateAll writes receipts only when the document is absent. Create fails
// with AlreadyExists when another instance got there first.
func (s *firestoreStore) CreateAll(ctx context.Context, receipts []models.Receipt) (bool, error) {
	_, err := s.doc().Create(ctx, encodeDocument(receipts))
	if err == nil {
		return true, nil
	}
	if status.Code(err) == codes.AlreadyExists {
		return false, nil
	}
	return false, errs.NewPersistenceError("write", "failed to create receipts document", err)
}

// Update runs fn inside a Firestore transaction. The client may retry the
// transaction on contention, so fn can be called more than once.
func (s *firestoreStore) Update(ctx context.Context, fn func([]models.Receipt) ([]models.Receipt, error)) error {
	ref := s.doc()
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		current, err := decodeSnapshot(tx.Get(ref))
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		return tx.Set(ref, encodeDocument(next))
	})
	if err == nil {
		logger.FromContext(ctx).Debug("receipts document written", "document", ref.Path)
		return nil
	}

	var (
		notFound   *errs.NotFoundError
		validation *errs.ValidationError
		corrupt    *errs.CorruptStoreError
		persist    *errs.PersistenceError
	)
	if errors.As(err, &notFound) || errors.As(err, &validation) || errors.As(err, &corrupt) || errors.As(err, &persist) {
		return err
	}
	return errs.NewPersistenceError("write", "receipts transaction failed", err)
}

func decodeSnapshot(snap *firestore.DocumentSnapshot, err error) ([]models.Receipt, error) {
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return []models.Receipt{}, nil
		}
		return nil, errs.NewPersistenceError("read", "failed to get receipts document", err)
	}

	var doc receiptsDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, errs.NewCorruptStoreError(firestoreBackend, "failed to parse receipts document", err)
	}

	receipts := make([]models.Receipt, 0, len(doc.Receipts))
	for i, fr := range doc.Receipts {
		r, err := fr.toModel()
		if err != nil {
			return nil, errs.NewCorruptStoreError(firestoreBackend, fmt.Sprintf("invalid receipt at index %d", i), err)
		}
		receipts = append(receipts, r)
	}
	return receipts, nil
}

func encodeDocument(receipts []models.Receipt) receiptsDocument {
	doc := receiptsDocument{
		Receipts:  make([]firestoreReceipt, 0, len(receipts)),
		UpdatedAt: time.Now(),
	}
	for _, r := range receipts {
		doc.Receipts = append(doc.Receipts, firestoreReceipt{
			ID:          r.ID.String(),
			Sum:         r.Sum,
			Date:        r.Date,
			Description: r.Description,
			ExpenseType: r.ExpenseType.String(),
			Location:    r.Location,
		})
	}
	return doc
}

func (fr firestoreReceipt) toModel() (models.Receipt, error) {
	id, err := uuid.Parse(fr.ID)
	if err != nil {
		return models.Receipt{}, err
	}
	t, err := models.ParseExpenseType(fr.ExpenseType)
	if err != nil {
		return models.Receipt{}, err
	}
	return models.Receipt{
		ID:          id,
		Sum:         fr.Sum,
		Date:        fr.Date,
		Description: fr.Description,
		ExpenseType: t,
		Location:    fr.Location,
	}, nil
}
