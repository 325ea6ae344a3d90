package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"textrec-be/internal/dto"
	"textrec-be/internal/entity"
	"textrec-be/internal/pkg/serverutils"
	"textrec-be/internal/repository/memory"
	"textrec-be/pkg/langdetect"
	"textrec-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	reply      string
	err        error
	lastPrompt string
	calls      int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	if len(history) > 0 {
		f.lastPrompt = history[len(history)-1].Content
	}
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func seedDocument(t *testing.T, repo *memory.DocumentRepository, key, raw string) *entity.RecognizedDocument {
	t.Helper()
	doc := &entity.RecognizedDocument{
		Key:       key,
		RawText:   raw,
		Language:  langdetect.Detect(raw),
		History:   []entity.ChatTurn{},
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Save(context.Background(), doc))
	return doc
}

func TestAskCannedReplyBypassesModel(t *testing.T) {
	repo := memory.NewDocumentRepository()
	seedDocument(t, repo, "k1", "Hello world")

	model := &fakeLLM{reply: "should never be used"}
	svc := NewAssistantService(repo, model, nopLogger{})

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Key: "k1", Question: "  Hello  "})
	require.NoError(t, err)

	assert.Equal(t, "canned", res.Source)
	assert.Equal(t, 0, model.calls, "a canned hit must not reach the model")
	assert.Equal(t, 1, res.HistoryLength)
}

func TestAskCannedReplyArabic(t *testing.T) {
	repo := memory.NewDocumentRepository()
	seedDocument(t, repo, "k1", "مرحبا بالعالم")

	svc := NewAssistantService(repo, nil, nopLogger{})

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Key: "k1", Question: "شكرا"})
	require.NoError(t, err)

	assert.Equal(t, "canned", res.Source)
	assert.Contains(t, res.Answer, "عفوا")
}

func TestAskModelAnswer(t *testing.T) {
	repo := memory.NewDocumentRepository()
	corrected := "Howdy world"
	doc := seedDocument(t, repo, "k1", "Hello world")
	doc.CorrectedText = &corrected
	require.NoError(t, repo.Save(context.Background(), doc))

	model := &fakeLLM{reply: "It is a greeting."}
	svc := NewAssistantService(repo, model, nopLogger{})

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Key: "k1", Question: "what does it say?"})
	require.NoError(t, err)

	assert.Equal(t, "model", res.Source)
	assert.Equal(t, "It is a greeting.", res.Answer)
	// The prompt grounds the model on the corrected text.
	assert.Contains(t, model.lastPrompt, "Howdy world")
	assert.Contains(t, model.lastPrompt, "Answer in English.")
}

func TestAskHistoryGrowsInOrder(t *testing.T) {
	repo := memory.NewDocumentRepository()
	seedDocument(t, repo, "k1", "Hello world")

	model := &fakeLLM{reply: "ok"}
	svc := NewAssistantService(repo, model, nopLogger{})
	ctx := context.Background()

	first, err := svc.Ask(ctx, &dto.AskRequest{Key: "k1", Question: "first question"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.HistoryLength)

	second, err := svc.Ask(ctx, &dto.AskRequest{Key: "k1", Question: "second question"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.HistoryLength)

	doc, _ := repo.FindByKey(ctx, "k1")
	require.Len(t, doc.History, 2)
	assert.Equal(t, "first question", doc.History[0].Question)
	assert.Equal(t, "second question", doc.History[1].Question)

	// The second prompt carried the first turn as context.
	assert.Contains(t, model.lastPrompt, "User: first question")
}

func TestAskFallbackOnModelError(t *testing.T) {
	repo := memory.NewDocumentRepository()
	notes := []string{`Corrected "teh" to "the" - spelling fix`}
	accuracy := 97.5
	doc := seedDocument(t, repo, "k1", "the cat")
	doc.ChangeNotes = notes
	doc.AccuracyScore = &accuracy
	require.NoError(t, repo.Save(context.Background(), doc))

	svc := NewAssistantService(repo, &fakeLLM{err: errors.New("timeout")}, nopLogger{})

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Key: "k1", Question: "what changed?"})
	require.NoError(t, err)

	assert.Equal(t, "fallback", res.Source)
	assert.Contains(t, res.Answer, `"what changed?"`)
	assert.Contains(t, res.Answer, "spelling fix")
	assert.Contains(t, res.Answer, "97.50%")
	assert.Equal(t, 1, res.HistoryLength)
}

func TestAskFallbackWithoutProvider(t *testing.T) {
	repo := memory.NewDocumentRepository()
	seedDocument(t, repo, "k1", "Hello world")

	svc := NewAssistantService(repo, nil, nopLogger{})

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Key: "k1", Question: "summarize this"})
	require.NoError(t, err)

	assert.Equal(t, "fallback", res.Source)
	assert.Contains(t, res.Answer, "none recorded")
	assert.Contains(t, res.Answer, "not computed")
}

func TestAskFallbackArabicQuestion(t *testing.T) {
	repo := memory.NewDocumentRepository()
	seedDocument(t, repo, "k1", "مرحبا بالعالم")

	svc := NewAssistantService(repo, &fakeLLM{err: errors.New("down")}, nopLogger{})

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Key: "k1", Question: "ما محتوى المستند؟"})
	require.NoError(t, err)

	assert.Equal(t, "fallback", res.Source)
	assert.True(t, strings.Contains(res.Answer, "مستندك"), "Arabic question must get the Arabic fallback")
}

func TestAskUnknownDocument(t *testing.T) {
	svc := NewAssistantService(memory.NewDocumentRepository(), nil, nopLogger{})

	_, err := svc.Ask(context.Background(), &dto.AskRequest{Key: "absent", Question: "anything"})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestAskMissingKey(t *testing.T) {
	svc := NewAssistantService(memory.NewDocumentRepository(), nil, nopLogger{})

	_, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "anything"})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}
