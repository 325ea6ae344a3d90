package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"textrec-be/internal/entity"
	"textrec-be/internal/repository/contract"
	"textrec-be/internal/repository/lock"
)

// DocumentRepository keeps recognized documents in process memory.
// Default backend for development and tests; results live for the
// lifetime of the process.
type DocumentRepository struct {
	cache *cache.Cache
	locks *lock.KeyedMutex
}

var _ contract.DocumentRepository = &DocumentRepository{}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
		locks: lock.NewKeyedMutex(),
	}
}

func (r *DocumentRepository) Save(ctx context.Context, doc *entity.RecognizedDocument) error {
	r.cache.Set(doc.Key, clone(doc), cache.NoExpiration)
	return nil
}

func (r *DocumentRepository) FindByKey(ctx context.Context, key string) (*entity.RecognizedDocument, error) {
	x, found := r.cache.Get(key)
	if !found {
		return nil, nil
	}
	return clone(x.(*entity.RecognizedDocument)), nil
}

func (r *DocumentRepository) AppendHistory(ctx context.Context, key string, turn entity.ChatTurn) (*entity.RecognizedDocument, error) {
	unlock := r.locks.Lock(key)
	defer unlock()

	x, found := r.cache.Get(key)
	if !found {
		return nil, nil
	}

	doc := clone(x.(*entity.RecognizedDocument))
	doc.History = append(doc.History, turn)
	now := time.Now()
	doc.UpdatedAt = &now

	r.cache.Set(key, doc, cache.NoExpiration)
	return clone(doc), nil
}

// clone copies a document so callers never share slices with the
// cached value.
func clone(doc *entity.RecognizedDocument) *entity.RecognizedDocument {
	copied := *doc
	if doc.ChangeNotes != nil {
		copied.ChangeNotes = append([]string(nil), doc.ChangeNotes...)
	}
	if doc.History != nil {
		copied.History = append([]entity.ChatTurn(nil), doc.History...)
	}
	return &copied
}
