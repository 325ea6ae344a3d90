package ocr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/otiai10/gosseract/v2"
)

// TesseractProvider runs OCR locally through the Tesseract bindings.
// Useful for offline setups where no Vision API key is configured.
type TesseractProvider struct {
	Languages []string
	fetcher   *http.Client
}

var _ Provider = &TesseractProvider{}

func NewTesseractProvider(languages []string) *TesseractProvider {
	if len(languages) == 0 {
		languages = []string{"eng", "ara"}
	}
	return &TesseractProvider{
		Languages: languages,
		fetcher: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (p *TesseractProvider) ExtractText(ctx context.Context, image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(p.Languages...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract ocr failed: %w", err)
	}

	return text, nil
}

// ExtractTextFromURL downloads the image first; Tesseract itself has
// no remote-source support.
func (p *TesseractProvider) ExtractTextFromURL(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	res, err := p.fetcher.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch image: status %d", res.StatusCode)
	}

	image, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	return p.ExtractText(ctx, image)
}
