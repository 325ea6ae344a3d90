package mapper

import (
	"encoding/json"
	"fmt"

	"textrec-be/internal/entity"
	"textrec-be/internal/model"
	"textrec-be/pkg/langdetect"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToModel(doc *entity.RecognizedDocument) (*model.RecognizedDocument, error) {
	notes, err := json.Marshal(doc.ChangeNotes)
	if err != nil {
		return nil, fmt.Errorf("marshal change notes: %w", err)
	}
	history, err := json.Marshal(doc.History)
	if err != nil {
		return nil, fmt.Errorf("marshal history: %w", err)
	}

	return &model.RecognizedDocument{
		Key:           doc.Key,
		RawText:       doc.RawText,
		Language:      string(doc.Language),
		CorrectedText: doc.CorrectedText,
		AccuracyScore: doc.AccuracyScore,
		ChangeNotes:   notes,
		History:       history,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}

func (m *DocumentMapper) ToEntity(row *model.RecognizedDocument) (*entity.RecognizedDocument, error) {
	var notes []string
	if len(row.ChangeNotes) > 0 {
		if err := json.Unmarshal(row.ChangeNotes, &notes); err != nil {
			return nil, fmt.Errorf("unmarshal change notes: %w", err)
		}
	}
	var history []entity.ChatTurn
	if len(row.History) > 0 {
		if err := json.Unmarshal(row.History, &history); err != nil {
			return nil, fmt.Errorf("unmarshal history: %w", err)
		}
	}

	return &entity.RecognizedDocument{
		Key:           row.Key,
		RawText:       row.RawText,
		Language:      langdetect.Language(row.Language),
		CorrectedText: row.CorrectedText,
		AccuracyScore: row.AccuracyScore,
		ChangeNotes:   notes,
		History:       history,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}
