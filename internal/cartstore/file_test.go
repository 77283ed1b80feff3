package cartstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"starbrew/internal/domain"
)

func sampleLines() []domain.LineItem {
	return []domain.LineItem{
		{
			Product:  domain.Product{ID: "coffee-1", Name: "Caffe Americano", PriceCents: 325, Category: "hot-coffees", ImageURL: "americano.jpg"},
			Quantity: 2,
		},
		{
			Product:  domain.Product{ID: "bakery-1", Name: "Butter Croissant", PriceCents: 325, Category: "bakery"},
			Quantity: 1,
		},
	}
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "s1", sampleLines()); err != nil {
		t.Fatalf("save: %v", err)
	}

	lines, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	got := lines[0]
	if got.Product.ID != "coffee-1" || got.Product.Name != "Caffe Americano" ||
		got.Product.PriceCents != 325 || got.Product.Category != "hot-coffees" ||
		got.Product.ImageURL != "americano.jpg" || got.Quantity != 2 {
		t.Fatalf("round trip lost fields: %+v", got)
	}
}

func TestFileStoreLoadMissingSession(t *testing.T) {
	store := newTestFileStore(t)

	lines, err := store.Load(context.Background(), "never-saved")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if lines != nil {
		t.Fatalf("expected nil lines, got %+v", lines)
	}
}

func TestFileStoreLoadCorruptPayload(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "s1", sampleLines()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := os.WriteFile(store.path("s1"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}

	lines, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("corrupt payload must not error: %v", err)
	}
	if lines != nil {
		t.Fatalf("expected empty cart from corrupt payload, got %+v", lines)
	}
}

func TestFileStoreLoadToleratesSchemaDrift(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	payload := `[
		{"productId":"coffee-1","name":"Caffe Americano","unitPriceCents":325,"quantity":1,"futureField":true},
		{"productId":"","name":"ghost","unitPriceCents":100,"quantity":4},
		{"productId":"bakery-1","name":"Butter Croissant","unitPriceCents":325,"quantity":0}
	]`
	if err := os.WriteFile(store.path("s1"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}

	lines, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(lines) != 1 || lines[0].Product.ID != "coffee-1" {
		t.Fatalf("expected the single valid line, got %+v", lines)
	}
}

func TestFileStoreDelete(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "s1", sampleLines()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(store.path("s1")); !os.IsNotExist(err) {
		t.Fatalf("cart file still present after delete")
	}

	// Deleting an absent cart is fine.
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, nil)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	if err := store.Save(context.Background(), "s1", sampleLines()); err != nil {
		t.Fatalf("save: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}
