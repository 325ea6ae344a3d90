package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"textrec-be/internal/entity"
	"textrec-be/pkg/langdetect"
)

func newDoc(key, raw string) *entity.RecognizedDocument {
	return &entity.RecognizedDocument{
		Key:       key,
		RawText:   raw,
		Language:  langdetect.Detect(raw),
		CreatedAt: time.Now(),
	}
}

func TestSaveAndFindByKey(t *testing.T) {
	repo := NewDocumentRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, newDoc("k1", "hello")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	doc, err := repo.FindByKey(ctx, "k1")
	if err != nil {
		t.Fatalf("FindByKey: %v", err)
	}
	if doc == nil || doc.RawText != "hello" {
		t.Fatalf("got %+v, want stored document", doc)
	}

	missing, err := repo.FindByKey(ctx, "absent")
	if err != nil {
		t.Fatalf("FindByKey absent: %v", err)
	}
	if missing != nil {
		t.Errorf("absent key returned %+v, want nil", missing)
	}
}

func TestSaveOverwritesHistory(t *testing.T) {
	repo := NewDocumentRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, newDoc("k1", "hello")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := repo.AppendHistory(ctx, "k1", entity.ChatTurn{Id: uuid.New(), Question: "q", Answer: "a"}); err != nil {
		t.Fatalf("AppendHistory: %v", err)
	}

	// Re-processing the same raw text overwrites the record wholesale.
	if err := repo.Save(ctx, newDoc("k1", "hello")); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	doc, _ := repo.FindByKey(ctx, "k1")
	if len(doc.History) != 0 {
		t.Errorf("history length = %d after overwrite, want 0", len(doc.History))
	}
}

func TestAppendHistoryOrderAndGrowth(t *testing.T) {
	repo := NewDocumentRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, newDoc("k1", "hello")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	for _, q := range []string{"first", "second"} {
		if _, err := repo.AppendHistory(ctx, "k1", entity.ChatTurn{Id: uuid.New(), Question: q, Answer: "ok", CreatedAt: time.Now()}); err != nil {
			t.Fatalf("AppendHistory(%q): %v", q, err)
		}
	}

	doc, _ := repo.FindByKey(ctx, "k1")
	if len(doc.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(doc.History))
	}
	if doc.History[0].Question != "first" || doc.History[1].Question != "second" {
		t.Errorf("history out of order: %+v", doc.History)
	}
}

func TestAppendHistoryUnknownKey(t *testing.T) {
	repo := NewDocumentRepository()

	doc, err := repo.AppendHistory(context.Background(), "absent", entity.ChatTurn{Question: "q"})
	if err != nil {
		t.Fatalf("AppendHistory: %v", err)
	}
	if doc != nil {
		t.Errorf("got %+v, want nil for unknown key", doc)
	}
}

func TestAppendHistoryConcurrent(t *testing.T) {
	repo := NewDocumentRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, newDoc("k1", "hello")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.AppendHistory(ctx, "k1", entity.ChatTurn{Id: uuid.New(), Question: "q", Answer: "a"}); err != nil {
				t.Errorf("AppendHistory: %v", err)
			}
		}()
	}
	wg.Wait()

	doc, _ := repo.FindByKey(ctx, "k1")
	if len(doc.History) != n {
		t.Errorf("history length = %d, want %d (lost updates)", len(doc.History), n)
	}
}
