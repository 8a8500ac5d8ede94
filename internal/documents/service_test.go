package documents

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docassist/internal/shared/storage/object/local"
	"docassist/internal/shared/util"
)

func TestServiceUploadExtractsAndChecksums(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(local.New(t.TempDir()), NewMemoryRepo())
	svc.Now = func() time.Time { return fixed }

	content := []byte("Telematics and OTA updates for vehicles")
	doc, err := svc.Upload(ctx, "fleet.txt", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, util.Checksum(content), doc.Checksum)
	assert.Equal(t, fixed, doc.CreatedAt)
	assert.True(t, strings.HasSuffix(doc.ExtractedTextKey, ".extracted.txt"))

	stored, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ExtractedTextKey, stored.ExtractedTextKey)

	text, err := svc.Text(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, string(content), text)
}

func TestServiceUploadRejectsOversized(t *testing.T) {
	svc := NewService(local.New(t.TempDir()), NewMemoryRepo())
	_, err := svc.Upload(context.Background(), "big.txt", bytes.NewReader(make([]byte, MaxUploadSize+1)))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestServiceTextRequiresExtraction(t *testing.T) {
	svc := NewService(local.New(t.TempDir()), NewMemoryRepo())
	_, err := svc.Text(context.Background(), Document{ID: "x"})
	assert.ErrorIs(t, err, ErrNotExtracted)
}

func TestMemoryRepoListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, Document{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	docs, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "c", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)

	docs, err = repo.List(ctx, 0, 5)
	require.NoError(t, err)
	assert.Empty(t, docs)

	require.NoError(t, repo.UpdateExtraction(ctx, "a", "k1", base))
	require.NoError(t, repo.UpdateExtraction(ctx, "a", "k2", base))
	doc, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "k1", doc.ExtractedTextKey)
	assert.ErrorIs(t, repo.UpdateExtraction(ctx, "zzz", "k", base), ErrNotFound)
}
