package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"docassist/internal/shared/storage/object"
)

func TestSaveAndOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	obj, err := store.Save(ctx, "documents", "brief.txt", strings.NewReader("Online shop with checkout"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(obj.Key, "documents/") || !strings.HasSuffix(obj.Key, "_brief.txt") {
		t.Fatalf("unexpected key %q", obj.Key)
	}
	if obj.SizeBytes != int64(len("Online shop with checkout")) {
		t.Fatalf("unexpected size %d", obj.SizeBytes)
	}
	if !strings.HasPrefix(obj.ContentType, "text/plain") {
		t.Fatalf("unexpected content type %q", obj.ContentType)
	}

	rc, err := store.Open(ctx, obj.Key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "Online shop with checkout" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestSaveWithKeyRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, err := store.SaveWithKey(ctx, "../escape.txt", "text/plain", strings.NewReader("x")); !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if _, err := store.Open(ctx, "/etc/passwd"); !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}

	n, err := store.SaveWithKey(ctx, "documents/a.extracted.txt", "text/plain", strings.NewReader("hello"))
	if err != nil || n != 5 {
		t.Fatalf("save with key: n=%d err=%v", n, err)
	}
}
