package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"textrec-be/internal/entity"
	"textrec-be/internal/repository/contract"
	"textrec-be/internal/repository/lock"
)

const documentKeyPrefix = "document:"

// DocumentRedisRepository stores documents as JSON values in Redis.
// Per-key append serialization uses an in-process keyed mutex, which
// is sufficient for the single-instance deployment this service
// targets.
type DocumentRedisRepository struct {
	rdb   *redis.Client
	locks *lock.KeyedMutex
}

var _ contract.DocumentRepository = &DocumentRedisRepository{}

func NewDocumentRedisRepository(rdb *redis.Client) *DocumentRedisRepository {
	return &DocumentRedisRepository{
		rdb:   rdb,
		locks: lock.NewKeyedMutex(),
	}
}

func (r *DocumentRedisRepository) Save(ctx context.Context, doc *entity.RecognizedDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	return r.rdb.Set(ctx, documentKeyPrefix+doc.Key, data, 0).Err()
}

func (r *DocumentRedisRepository) FindByKey(ctx context.Context, key string) (*entity.RecognizedDocument, error) {
	data, err := r.rdb.Get(ctx, documentKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc entity.RecognizedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &doc, nil
}

func (r *DocumentRedisRepository) AppendHistory(ctx context.Context, key string, turn entity.ChatTurn) (*entity.RecognizedDocument, error) {
	unlock := r.locks.Lock(key)
	defer unlock()

	doc, err := r.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	doc.History = append(doc.History, turn)
	now := time.Now()
	doc.UpdatedAt = &now

	if err := r.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
