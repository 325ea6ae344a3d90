package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"textrec-be/internal/dto"
	"textrec-be/internal/entity"
	"textrec-be/internal/pkg/logger"
	"textrec-be/internal/pkg/serverutils"
	"textrec-be/internal/repository/contract"
	"textrec-be/pkg/grammar"
	"textrec-be/pkg/langdetect"
	"textrec-be/pkg/ocr"
	"textrec-be/pkg/textproc"
)

type IRecognitionService interface {
	Recognize(ctx context.Context, userId string, req *dto.RecognizeRequest) (*dto.RecognizeResponse, error)
	Show(ctx context.Context, key string) (*dto.RecognizeResponse, error)
}

type recognitionService struct {
	ocrProvider      ocr.Provider
	grammarChecker   grammar.Checker
	grammarLocale    string
	repository       contract.DocumentRepository
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewRecognitionService(
	ocrProvider ocr.Provider,
	grammarChecker grammar.Checker,
	grammarLocale string,
	repository contract.DocumentRepository,
	publisherService IPublisherService,
	appLogger logger.ILogger,
) IRecognitionService {
	return &recognitionService{
		ocrProvider:      ocrProvider,
		grammarChecker:   grammarChecker,
		grammarLocale:    grammarLocale,
		repository:       repository,
		publisherService: publisherService,
		logger:           appLogger,
	}
}

// Recognize runs the full pipeline: extract text, detect language,
// correct English text, store the result under its content
// fingerprint, then announce it.
//
// The grammar step is best effort. A failure there downgrades the
// response to raw text only; it never fails the request.
func (s *recognitionService) Recognize(ctx context.Context, userId string, req *dto.RecognizeRequest) (*dto.RecognizeResponse, error) {
	if len(req.Image) == 0 && req.ImageURL == "" {
		return nil, serverutils.NewInvalidInput("No image provided")
	}

	var rawText string
	var err error
	if len(req.Image) > 0 {
		rawText, err = s.ocrProvider.ExtractText(ctx, req.Image)
	} else {
		rawText, err = s.ocrProvider.ExtractTextFromURL(ctx, req.ImageURL)
	}
	if err != nil {
		return nil, serverutils.NewUpstreamError("Text recognition failed", err)
	}

	language := langdetect.Detect(rawText)

	doc := &entity.RecognizedDocument{
		Key:       textproc.Fingerprint(rawText),
		RawText:   rawText,
		Language:  language,
		History:   []entity.ChatTurn{},
		CreatedAt: time.Now(),
	}

	if language == langdetect.LanguageEnglish {
		edits, checkErr := s.grammarChecker.Check(ctx, rawText, s.grammarLocale)
		if checkErr != nil {
			s.logger.Warn("recognition", "grammar check failed, returning raw text", map[string]interface{}{
				"key":   doc.Key,
				"error": checkErr.Error(),
			})
		} else {
			result := textproc.Apply(rawText, edits)
			doc.CorrectedText = &result.CorrectedText
			doc.AccuracyScore = &result.Accuracy
			doc.ChangeNotes = result.Notes
		}
	}

	if err := s.repository.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.announce(ctx, doc, userId)

	return toRecognizeResponse(doc), nil
}

func (s *recognitionService) Show(ctx context.Context, key string) (*dto.RecognizeResponse, error) {
	doc, err := s.repository.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, serverutils.NewNotFound("Document not found")
	}
	return toRecognizeResponse(doc), nil
}

func (s *recognitionService) announce(ctx context.Context, doc *entity.RecognizedDocument, userId string) {
	payload := dto.RecognitionCompletedMessage{
		Key:      doc.Key,
		Language: string(doc.Language),
		Accuracy: doc.AccuracyScore,
		UserId:   userId,
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[WARN] Failed to marshal recognition event: %v", err)
		return
	}

	if err := s.publisherService.Publish(ctx, payloadJson); err != nil {
		// The document is already stored; the event is advisory.
		log.Printf("[WARN] Failed to publish recognition event: %v", err)
	}
}

func toRecognizeResponse(doc *entity.RecognizedDocument) *dto.RecognizeResponse {
	history := make([]dto.ChatTurnDTO, 0, len(doc.History))
	for _, turn := range doc.History {
		history = append(history, dto.ChatTurnDTO{
			Id:        turn.Id,
			Question:  turn.Question,
			Answer:    turn.Answer,
			CreatedAt: turn.CreatedAt,
		})
	}

	return &dto.RecognizeResponse{
		Key:           doc.Key,
		Text:          doc.RawText,
		Language:      string(doc.Language),
		CorrectedText: doc.CorrectedText,
		Accuracy:      doc.AccuracyScore,
		Notes:         doc.ChangeNotes,
		History:       history,
		CreatedAt:     doc.CreatedAt,
	}
}
