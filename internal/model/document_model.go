package model

import (
	"time"

	"gorm.io/datatypes"
)

// RecognizedDocument is the Postgres row shape for a stored OCR
// result. Notes and history ride along as JSON columns; nothing ever
// queries inside them.
type RecognizedDocument struct {
	Key           string `gorm:"primaryKey;size:64"`
	RawText       string
	Language      string
	CorrectedText *string
	AccuracyScore *float64
	ChangeNotes   datatypes.JSON
	History       datatypes.JSON
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func (RecognizedDocument) TableName() string {
	return "recognized_documents"
}
