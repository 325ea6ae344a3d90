package grammar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCheckMapsMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/check" {
			t.Errorf("path = %q, want /v2/check", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("language"); got != "en-US" {
			t.Errorf("language = %q, want en-US", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"matches": [
				{
					"message": "Possible spelling mistake found.",
					"offset": 0,
					"length": 5,
					"replacements": [{"value": "Hello"}, {"value": "Hallo"}],
					"rule": {"id": "MORFOLOGIK_RULE_EN_US", "issueType": "misspelling"}
				},
				{
					"message": "Consider rephrasing.",
					"offset": 6,
					"length": 5,
					"replacements": [],
					"rule": {"id": "STYLE_HINT", "issueType": "style"}
				}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	edits, err := client.Check(context.Background(), "Helo world", "en-US")
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}

	if len(edits) != 2 {
		t.Fatalf("got %d edits, want 2", len(edits))
	}

	first := edits[0]
	if !first.HasReplacement || first.Replacement != "Hello" {
		t.Errorf("first edit replacement = %q (has=%v), want preferred candidate Hello", first.Replacement, first.HasReplacement)
	}
	if first.Offset != 0 || first.Length != 5 {
		t.Errorf("first edit span = (%d,%d), want (0,5)", first.Offset, first.Length)
	}
	if first.Category != "misspelling" {
		t.Errorf("first edit category = %q, want misspelling", first.Category)
	}

	second := edits[1]
	if second.HasReplacement {
		t.Error("second edit should be note-only")
	}
	if second.Message != "Consider rephrasing." {
		t.Errorf("second edit message = %q", second.Message)
	}
}

func TestCheckNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	if _, err := client.Check(context.Background(), "text", "en-US"); err == nil {
		t.Error("expected error for non-2xx status")
	}
}

func TestCheckMalformedBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	if _, err := client.Check(context.Background(), "text", "en-US"); err == nil {
		t.Error("expected error for malformed body")
	}
}
