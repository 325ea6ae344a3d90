package dto

import (
	"time"

	"github.com/google/uuid"
)

// RecognizeRequest is assembled by the controller from either a
// multipart upload or an image URL field. Exactly one of the two is
// expected; the service rejects an empty request.
type RecognizeRequest struct {
	Image    []byte
	ImageURL string
}

type ChatTurnDTO struct {
	Id        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// RecognizeResponse mirrors the original OCR response shape: raw
// text, detected language and, for English documents with a
// successful grammar pass, the corrected text with its accuracy and
// notes.
type RecognizeResponse struct {
	Key           string        `json:"key"`
	Text          string        `json:"text"`
	Language      string        `json:"language"`
	CorrectedText *string       `json:"correctedText,omitempty"`
	Accuracy      *float64      `json:"accuracy,omitempty"`
	Notes         []string      `json:"notes,omitempty"`
	History       []ChatTurnDTO `json:"history,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

type AskRequest struct {
	Key      string `json:"-"`
	Question string `json:"question" validate:"required"`
}

type AskResponse struct {
	Key           string `json:"key"`
	Question      string `json:"question"`
	Answer        string `json:"answer"`
	Source        string `json:"source"` // "canned" | "model" | "fallback"
	HistoryLength int    `json:"history_length"`
}

// RecognitionCompletedMessage is the internal event payload published
// after a document is stored.
type RecognitionCompletedMessage struct {
	Key      string   `json:"key"`
	Language string   `json:"language"`
	Accuracy *float64 `json:"accuracy,omitempty"`
	UserId   string   `json:"user_id"`
}
