package documents

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"docassist/internal/shared/server/respond"
	"docassist/internal/shared/telemetry"
)

const (
	// MaxBatchFiles bounds the number of files in one batch upload.
	MaxBatchFiles = 10

	batchConcurrency = 4
)

func (h *Handler) uploadBatch(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBatchFiles*MaxUploadSize+1<<20)

	form, err := c.MultipartForm()
	if err != nil {
		respond.ValidationError(c, "multipart form with files is required", nil)
		return
	}
	files := form.File["files"]
	switch {
	case len(files) == 0:
		respond.ValidationError(c, "no files provided", nil)
		return
	case len(files) > MaxBatchFiles:
		respond.ValidationError(c, fmt.Sprintf("at most %d files per batch", MaxBatchFiles), nil)
		return
	}

	industry, analyze := c.GetPostForm("industry")
	analyze = analyze && h.Hooks.Analyze != nil
	industry = strings.TrimSpace(industry)

	ctx := c.Request.Context()
	results := make([]*DocumentResponse, len(files))
	failures := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, fh := range files {
		i, fh := i, fh
		g.Go(func() error {
			resp, err := h.uploadOne(gctx, fh, analyze, industry)
			if err != nil {
				_, _, message := errorStatus(err, "upload failed")
				failures[i] = fh.Filename + ": " + message
				return nil // one bad file does not abort the batch
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		writeError(c, err, "failed to upload documents")
		return
	}

	out := BatchResponse{Documents: []DocumentResponse{}, Errors: []string{}, TotalCount: len(files)}
	for i := range files {
		if results[i] != nil {
			out.Documents = append(out.Documents, *results[i])
		}
		if failures[i] != "" {
			out.Errors = append(out.Errors, failures[i])
		}
	}
	out.SuccessCount = len(out.Documents)
	out.Message = fmt.Sprintf("%d of %d files uploaded", out.SuccessCount, out.TotalCount)

	telemetry.Info("documents.batch.uploaded", map[string]any{
		"total":     out.TotalCount,
		"succeeded": out.SuccessCount,
		"failed":    len(out.Errors),
	})
	respond.OK(c, out)
}

func (h *Handler) uploadOne(ctx context.Context, fh *multipart.FileHeader, analyze bool, industry string) (*DocumentResponse, error) {
	if fh.Size > MaxUploadSize {
		return nil, ErrTooLarge
	}
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read file", ErrInvalidInput)
	}
	defer file.Close()

	doc, err := h.Svc.Upload(ctx, fh.Filename, file)
	if err != nil {
		return nil, err
	}
	resp := toResponse(doc)
	if analyze {
		h.attachAnalysis(ctx, &resp, doc, industry)
	}
	return &resp, nil
}
