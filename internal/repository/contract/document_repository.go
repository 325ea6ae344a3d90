package contract

import (
	"context"

	"textrec-be/internal/entity"
)

// DocumentRepository is the OCR result store. Keys are content
// fingerprints of the raw text.
type DocumentRepository interface {
	// Save inserts or overwrites the document under its key.
	// Last-write-wins: a second save replaces everything, including
	// any conversation history the previous record accumulated.
	Save(ctx context.Context, doc *entity.RecognizedDocument) error

	// FindByKey returns the stored document, or nil when the key is
	// unknown.
	FindByKey(ctx context.Context, key string) (*entity.RecognizedDocument, error)

	// AppendHistory atomically appends one chat turn to the
	// document's history and returns the updated document.
	// Concurrent appends to the same key are serialized; appends to
	// different keys do not block each other. Unknown key returns
	// (nil, nil).
	AppendHistory(ctx context.Context, key string, turn entity.ChatTurn) (*entity.RecognizedDocument, error)
}
