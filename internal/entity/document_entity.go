package entity

import (
	"time"

	"github.com/google/uuid"

	"textrec-be/pkg/langdetect"
)

// ChatTurn is one question/answer pair in a document's conversation
// history. Insertion order defines the chat context.
type ChatTurn struct {
	Id        uuid.UUID
	Question  string
	Answer    string
	CreatedAt time.Time
}

// RecognizedDocument is the persisted record of one OCR run. The core
// fields are written once by the correction pipeline; only History
// grows afterwards, through the assistant.
type RecognizedDocument struct {
	Key           string
	RawText       string
	Language      langdetect.Language
	CorrectedText *string
	AccuracyScore *float64
	ChangeNotes   []string
	History       []ChatTurn
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
