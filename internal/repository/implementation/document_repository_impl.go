package implementation

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"textrec-be/internal/entity"
	"textrec-be/internal/mapper"
	"textrec-be/internal/model"
	"textrec-be/internal/repository/contract"
)

// DocumentRepositoryImpl is the Postgres-backed store. Documents
// survive restarts; AppendHistory serializes per key with a row-level
// lock instead of an in-process mutex.
type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

var _ contract.DocumentRepository = &DocumentRepositoryImpl{}

func NewDocumentRepository(db *gorm.DB) *DocumentRepositoryImpl {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) Save(ctx context.Context, doc *entity.RecognizedDocument) error {
	row, err := r.mapper.ToModel(doc)
	if err != nil {
		return err
	}

	// Upsert: a second run over the same raw text replaces the whole
	// record, history included.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(row).Error
}

func (r *DocumentRepositoryImpl) FindByKey(ctx context.Context, key string) (*entity.RecognizedDocument, error) {
	var row model.RecognizedDocument
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&row)
}

func (r *DocumentRepositoryImpl) AppendHistory(ctx context.Context, key string, turn entity.ChatTurn) (*entity.RecognizedDocument, error) {
	var updated *entity.RecognizedDocument

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.RecognizedDocument
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("key = ?", key).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		doc, err := r.mapper.ToEntity(&row)
		if err != nil {
			return err
		}

		doc.History = append(doc.History, turn)
		now := time.Now()
		doc.UpdatedAt = &now

		next, err := r.mapper.ToModel(doc)
		if err != nil {
			return err
		}
		if err := tx.Save(next).Error; err != nil {
			return err
		}

		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
