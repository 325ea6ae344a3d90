package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// VisionProvider calls the Google Cloud Vision images:annotate REST
// endpoint with TEXT_DETECTION, authenticated by API key.
type VisionProvider struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

var _ Provider = &VisionProvider{}

const visionBaseURL = "https://vision.googleapis.com"

func NewVisionProvider(apiKey string) *VisionProvider {
	return &VisionProvider{
		APIKey:  apiKey,
		BaseURL: visionBaseURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// --- Request/Response structs (internal to this package) ---

type visionImage struct {
	Content string             `json:"content,omitempty"`
	Source  *visionImageSource `json:"source,omitempty"`
}

type visionImageSource struct {
	ImageUri string `json:"imageUri"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionAnnotateRequest struct {
	Requests []visionRequest `json:"requests"`
}

type visionAnnotateResponse struct {
	Responses []struct {
		FullTextAnnotation *struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

func (p *VisionProvider) ExtractText(ctx context.Context, image []byte) (string, error) {
	return p.annotate(ctx, visionImage{
		Content: base64.StdEncoding.EncodeToString(image),
	})
}

func (p *VisionProvider) ExtractTextFromURL(ctx context.Context, imageURL string) (string, error) {
	return p.annotate(ctx, visionImage{
		Source: &visionImageSource{ImageUri: imageURL},
	})
}

func (p *VisionProvider) annotate(ctx context.Context, img visionImage) (string, error) {
	payload := visionAnnotateRequest{
		Requests: []visionRequest{
			{
				Image:    img,
				Features: []visionFeature{{Type: "TEXT_DETECTION"}},
			},
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/images:annotate?key=%s", p.BaseURL, p.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("vision request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision error: status %d, body: %s", res.StatusCode, string(body))
	}

	var parsed visionAnnotateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(parsed.Responses) == 0 {
		return "", nil
	}
	first := parsed.Responses[0]
	if first.Error != nil {
		return "", fmt.Errorf("vision annotation error %d: %s", first.Error.Code, first.Error.Message)
	}
	if first.FullTextAnnotation == nil {
		// No text detected in the image.
		return "", nil
	}

	return first.FullTextAnnotation.Text, nil
}
