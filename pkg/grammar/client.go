package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"textrec-be/pkg/textproc"
)

// Checker is the contract the correction pipeline consumes. Any error
// from Check means "no corrections available"; the pipeline never
// fails because of it.
type Checker interface {
	Check(ctx context.Context, text, locale string) ([]textproc.Edit, error)
}

// Client talks to a LanguageTool-compatible /v2/check endpoint.
type Client struct {
	BaseURL string
	client  *http.Client
}

var _ Checker = &Client{}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Wire structs (internal to this package) ---

type checkResponse struct {
	Matches []match `json:"matches"`
}

type match struct {
	Message      string        `json:"message"`
	Offset       int           `json:"offset"`
	Length       int           `json:"length"`
	Replacements []replacement `json:"replacements"`
	Rule         *rule         `json:"rule"`
}

type replacement struct {
	Value string `json:"value"`
}

type rule struct {
	Id        string `json:"id"`
	IssueType string `json:"issueType"`
}

// Check submits text for review and maps the service's matches to
// applier edits. The first replacement candidate is preferred; a
// match without candidates becomes a note-only edit.
func (c *Client) Check(ctx context.Context, text, locale string) ([]textproc.Edit, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", locale)

	endpoint := c.BaseURL + "/v2/check"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("grammar request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("grammar error: status %d, body: %s", res.StatusCode, string(body))
	}

	var parsed checkResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	edits := make([]textproc.Edit, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		edit := textproc.Edit{
			Offset:  m.Offset,
			Length:  m.Length,
			Message: m.Message,
		}
		if m.Rule != nil {
			edit.Category = m.Rule.IssueType
		}
		if len(m.Replacements) > 0 {
			edit.Replacement = m.Replacements[0].Value
			edit.HasReplacement = true
		}
		edits = append(edits, edit)
	}

	return edits, nil
}
