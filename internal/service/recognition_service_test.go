package service

import (
	"context"
	"errors"
	"testing"

	"textrec-be/internal/dto"
	"textrec-be/internal/pkg/serverutils"
	"textrec-be/internal/repository/memory"
	"textrec-be/pkg/textproc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopLogger satisfies logger.ILogger for tests.
type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeOCR struct {
	text string
	err  error
}

func (f *fakeOCR) ExtractText(ctx context.Context, image []byte) (string, error) {
	return f.text, f.err
}

func (f *fakeOCR) ExtractTextFromURL(ctx context.Context, url string) (string, error) {
	return f.text, f.err
}

type fakeGrammar struct {
	edits  []textproc.Edit
	err    error
	called bool
}

func (f *fakeGrammar) Check(ctx context.Context, text, locale string) ([]textproc.Edit, error) {
	f.called = true
	return f.edits, f.err
}

type fakePublisher struct {
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

func newRecognitionFixture(ocrText string, grammar *fakeGrammar) (IRecognitionService, *memory.DocumentRepository, *fakePublisher) {
	repo := memory.NewDocumentRepository()
	pub := &fakePublisher{}
	svc := NewRecognitionService(&fakeOCR{text: ocrText}, grammar, "en-US", repo, pub, nopLogger{})
	return svc, repo, pub
}

func TestRecognizeEnglishWithCorrections(t *testing.T) {
	grammarFake := &fakeGrammar{edits: []textproc.Edit{
		{Offset: 0, Length: 5, Replacement: "Howdy", HasReplacement: true, Category: "misspelling"},
	}}
	svc, repo, pub := newRecognitionFixture("Hello world", grammarFake)

	res, err := svc.Recognize(context.Background(), "u1", &dto.RecognizeRequest{Image: []byte{1}})
	require.NoError(t, err)

	assert.Equal(t, "Hello world", res.Text)
	assert.Equal(t, "English", res.Language)
	require.NotNil(t, res.CorrectedText)
	assert.Equal(t, "Howdy world", *res.CorrectedText)
	require.NotNil(t, res.Accuracy)
	assert.NotEmpty(t, res.Notes)
	assert.Equal(t, textproc.Fingerprint("Hello world"), res.Key)

	stored, err := repo.FindByKey(context.Background(), res.Key)
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Len(t, pub.payloads, 1)
}

func TestRecognizeEnglishZeroEdits(t *testing.T) {
	// A clean grammar pass still yields corrected fields, with the
	// corrected text equal to the raw text and accuracy 100.
	svc, _, _ := newRecognitionFixture("Hello world", &fakeGrammar{})

	res, err := svc.Recognize(context.Background(), "u1", &dto.RecognizeRequest{Image: []byte{1}})
	require.NoError(t, err)

	require.NotNil(t, res.CorrectedText)
	assert.Equal(t, "Hello world", *res.CorrectedText)
	require.NotNil(t, res.Accuracy)
	assert.Equal(t, 100.0, *res.Accuracy)
}

func TestRecognizeGrammarSoftFail(t *testing.T) {
	grammarFake := &fakeGrammar{err: errors.New("service down")}
	svc, repo, pub := newRecognitionFixture("Hello world", grammarFake)

	res, err := svc.Recognize(context.Background(), "u1", &dto.RecognizeRequest{Image: []byte{1}})
	require.NoError(t, err)

	assert.Nil(t, res.CorrectedText)
	assert.Nil(t, res.Accuracy)
	assert.Empty(t, res.Notes)

	// The raw result is still stored and announced.
	stored, _ := repo.FindByKey(context.Background(), res.Key)
	require.NotNil(t, stored)
	assert.Len(t, pub.payloads, 1)
}

func TestRecognizeArabicSkipsGrammar(t *testing.T) {
	grammarFake := &fakeGrammar{}
	svc, _, _ := newRecognitionFixture("مرحبا بالعالم", grammarFake)

	res, err := svc.Recognize(context.Background(), "u1", &dto.RecognizeRequest{Image: []byte{1}})
	require.NoError(t, err)

	assert.Equal(t, "Arabic", res.Language)
	assert.False(t, grammarFake.called, "grammar service must not run for Arabic text")
	assert.Nil(t, res.CorrectedText)
}

func TestRecognizeEmptyRequest(t *testing.T) {
	svc, _, _ := newRecognitionFixture("irrelevant", &fakeGrammar{})

	_, err := svc.Recognize(context.Background(), "u1", &dto.RecognizeRequest{})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestRecognizeOCRFailure(t *testing.T) {
	repo := memory.NewDocumentRepository()
	svc := NewRecognitionService(
		&fakeOCR{err: errors.New("engine crashed")},
		&fakeGrammar{}, "en-US", repo, &fakePublisher{}, nopLogger{},
	)

	_, err := svc.Recognize(context.Background(), "u1", &dto.RecognizeRequest{Image: []byte{1}})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 502, appErr.Code)
}

func TestRecognizeDeduplicatesByContent(t *testing.T) {
	svc, repo, _ := newRecognitionFixture("Hello world", &fakeGrammar{})
	ctx := context.Background()

	first, err := svc.Recognize(ctx, "u1", &dto.RecognizeRequest{Image: []byte{1}})
	require.NoError(t, err)

	// Chat against the stored document, then re-process the same image.
	askSvc := NewAssistantService(repo, nil, nopLogger{})
	_, err = askSvc.Ask(ctx, &dto.AskRequest{Key: first.Key, Question: "what is this?"})
	require.NoError(t, err)

	second, err := svc.Recognize(ctx, "u1", &dto.RecognizeRequest{Image: []byte{1}})
	require.NoError(t, err)
	assert.Equal(t, first.Key, second.Key)

	// Re-processing overwrote the record, history included.
	stored, _ := repo.FindByKey(ctx, first.Key)
	assert.Empty(t, stored.History)
}

func TestShowUnknownKey(t *testing.T) {
	svc, _, _ := newRecognitionFixture("Hello world", &fakeGrammar{})

	_, err := svc.Show(context.Background(), "absent")
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestRecognizePublishFailureIsSoft(t *testing.T) {
	repo := memory.NewDocumentRepository()
	svc := NewRecognitionService(
		&fakeOCR{text: "Hello world"},
		&fakeGrammar{}, "en-US", repo,
		&fakePublisher{err: errors.New("bus closed")}, nopLogger{},
	)

	res, err := svc.Recognize(context.Background(), "u1", &dto.RecognizeRequest{Image: []byte{1}})
	require.NoError(t, err)

	stored, _ := repo.FindByKey(context.Background(), res.Key)
	assert.NotNil(t, stored)
}
