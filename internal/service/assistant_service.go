package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"textrec-be/internal/constant"
	"textrec-be/internal/dto"
	"textrec-be/internal/entity"
	"textrec-be/internal/pkg/logger"
	"textrec-be/internal/pkg/serverutils"
	"textrec-be/internal/repository/contract"
	"textrec-be/pkg/langdetect"
	"textrec-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	answerSourceCanned   = "canned"
	answerSourceModel    = "model"
	answerSourceFallback = "fallback"
)

type IAssistantService interface {
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
}

type assistantService struct {
	repository  contract.DocumentRepository
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

// NewAssistantService builds the conversational responder. llmProvider
// may be nil (no key configured); every answer then comes from the
// canned table or the local fallback.
func NewAssistantService(
	repository contract.DocumentRepository,
	llmProvider llm.LLMProvider,
	appLogger logger.ILogger,
) IAssistantService {
	return &assistantService{
		repository:  repository,
		llmProvider: llmProvider,
		logger:      appLogger,
	}
}

// Ask answers a question about a stored document. Resolution order:
// canned reply, language model, deterministic local fallback. Every
// resolved answer is appended to the document's history.
func (s *assistantService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	if req.Key == "" {
		return nil, serverutils.NewInvalidInput("Missing document key")
	}

	doc, err := s.repository.FindByKey(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, serverutils.NewNotFound("Document not found")
	}

	normalized := strings.ToLower(strings.TrimSpace(req.Question))
	if answer, ok := constant.CannedReplies[normalized]; ok {
		return s.record(ctx, doc, req.Question, answer, answerSourceCanned)
	}

	arabic := langdetect.ContainsArabic(req.Question)

	answer, source := s.generate(ctx, doc, req.Question, arabic)
	return s.record(ctx, doc, req.Question, answer, source)
}

func (s *assistantService) generate(ctx context.Context, doc *entity.RecognizedDocument, question string, arabic bool) (string, string) {
	if s.llmProvider == nil {
		return s.fallbackAnswer(doc, question, arabic), answerSourceFallback
	}

	prompt := buildAssistantPrompt(doc, question, arabic)
	answer, err := s.llmProvider.Chat(ctx, []llm.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		s.logger.Warn("assistant", "model call failed, using local fallback", map[string]interface{}{
			"key":   doc.Key,
			"error": err.Error(),
		})
		return s.fallbackAnswer(doc, question, arabic), answerSourceFallback
	}

	return answer, answerSourceModel
}

func (s *assistantService) fallbackAnswer(doc *entity.RecognizedDocument, question string, arabic bool) string {
	template := constant.FallbackAnswerEnglish
	corrections := constant.NoCorrectionsEnglish
	accuracy := constant.NoAccuracyEnglish
	if arabic {
		template = constant.FallbackAnswerArabic
		corrections = constant.NoCorrectionsArabic
		accuracy = constant.NoAccuracyArabic
	}

	if len(doc.ChangeNotes) > 0 {
		corrections = strings.Join(doc.ChangeNotes, "; ")
	}
	if doc.AccuracyScore != nil {
		accuracy = fmt.Sprintf("%.2f%%", *doc.AccuracyScore)
	}

	return fmt.Sprintf(template, question, corrections, accuracy)
}

func (s *assistantService) record(ctx context.Context, doc *entity.RecognizedDocument, question, answer, source string) (*dto.AskResponse, error) {
	turn := entity.ChatTurn{
		Id:        uuid.New(),
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now(),
	}

	updated, err := s.repository.AppendHistory(ctx, doc.Key, turn)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// The document vanished between lookup and append.
		return nil, serverutils.NewNotFound("Document not found")
	}

	return &dto.AskResponse{
		Key:           doc.Key,
		Question:      question,
		Answer:        answer,
		Source:        source,
		HistoryLength: len(updated.History),
	}, nil
}
