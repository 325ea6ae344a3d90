package ocr

import (
	"context"
)

// Provider is the contract for an external OCR engine. Both methods
// return the full recognized text, empty when the image contains
// none. Any error is pipeline-fatal for the caller.
type Provider interface {
	// ExtractText recognizes text in raw image bytes.
	ExtractText(ctx context.Context, image []byte) (string, error)

	// ExtractTextFromURL recognizes text in an image addressed by a
	// fetchable URL.
	ExtractTextFromURL(ctx context.Context, imageURL string) (string, error)
}
