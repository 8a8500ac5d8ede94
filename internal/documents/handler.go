package documents

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"docassist/internal/classify"
	"docassist/internal/extract"
	"docassist/internal/report"
	"docassist/internal/shared/server/respond"
)

// AnalyzeFunc runs an analysis over a document's extracted text and returns the
// JSON payload to embed in the response.
type AnalyzeFunc func(ctx context.Context, doc Document, text, industry string) (analysisID string, payload any, err error)

// KeywordsFunc returns the keywords found in a document's text.
type KeywordsFunc func(ctx context.Context, doc Document, text string) ([]string, error)

// HistoryFunc returns the analyses and feedback recorded for a document.
type HistoryFunc func(ctx context.Context, doc Document) (any, error)

// Hooks connect the document routes to analysis features. Any of them may be nil,
// which disables the routes or fields that need it.
type Hooks struct {
	Analyze  AnalyzeFunc
	Keywords KeywordsFunc
	History  HistoryFunc
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc   *Service
	Hooks Hooks
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, hooks Hooks) *Handler {
	return &Handler{Svc: svc, Hooks: hooks}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.POST("/documents/batch", h.uploadBatch)
	rg.GET("/documents", h.list)
	if h.Hooks.Keywords != nil {
		rg.GET("/documents/compare", h.compare)
	}
	rg.GET("/documents/:id", h.get)
	if h.Hooks.Analyze != nil {
		rg.POST("/documents/:id/analyze", h.analyze)
	}
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.ValidationError(c, "file is required", nil)
		return
	}
	if fileHeader.Size > MaxUploadSize {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds 10MB", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.ValidationError(c, "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		writeError(c, err, "failed to upload document")
		return
	}
	c.Set("documentId", doc.ID)

	resp := toResponse(doc)
	if industry, ok := c.GetPostForm("industry"); ok && h.Hooks.Analyze != nil {
		industry = strings.TrimSpace(industry)
		if industry != "" {
			c.Set("industry", industry)
		}
		if analysisID := h.attachAnalysis(c.Request.Context(), &resp, doc, industry); analysisID != "" {
			c.Set("analysisId", analysisID)
		}
	}

	// The document is stored at this point, so a failed analysis is reported
	// alongside it rather than as a request error.
	respond.JSON(c, http.StatusCreated, resp)
}

// attachAnalysis runs the analyze hook for a freshly stored document and records
// the outcome on resp. It returns the analysis id, empty when the analysis failed.
func (h *Handler) attachAnalysis(ctx context.Context, resp *DocumentResponse, doc Document, industry string) string {
	analysisID, payload, err := h.runAnalysis(ctx, doc, industry)
	if err != nil {
		_, code, message := errorStatus(err, "failed to analyze document")
		resp.AnalysisError = &AnalysisError{Code: code, Message: message}
		return ""
	}
	resp.Analysis = payload
	return analysisID
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch document")
		return
	}
	c.Set("documentId", doc.ID)

	resp := toResponse(doc)
	if h.Hooks.History != nil {
		history, err := h.Hooks.History(c.Request.Context(), doc)
		if err != nil {
			writeError(c, err, "failed to load document history")
			return
		}
		resp.History = history
	}
	respond.OK(c, resp)
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	docs, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err, "failed to list documents")
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.OK(c, resp)
}

func (h *Handler) compare(c *gin.Context) {
	id1, id2 := strings.TrimSpace(c.Query("id1")), strings.TrimSpace(c.Query("id2"))
	if id1 == "" || id2 == "" {
		respond.ValidationError(c, "id1 and id2 are required", nil)
		return
	}

	cmp, err := h.Svc.Compare(c.Request.Context(), id1, id2, h.Hooks.Keywords)
	if err != nil {
		writeError(c, err, "failed to compare documents")
		return
	}
	respond.OK(c, cmp)
}

type analyzeRequest struct {
	Industry string `json:"industry"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.ValidationError(c, "invalid request body", nil)
			return
		}
	}

	doc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch document")
		return
	}
	c.Set("documentId", doc.ID)
	if industry := strings.TrimSpace(req.Industry); industry != "" {
		c.Set("industry", industry)
	}

	analysisID, payload, err := h.runAnalysis(c.Request.Context(), doc, req.Industry)
	if err != nil {
		writeError(c, err, "failed to analyze document")
		return
	}
	c.Set("analysisId", analysisID)
	respond.JSON(c, http.StatusCreated, payload)
}

func (h *Handler) runAnalysis(ctx context.Context, doc Document, industry string) (string, any, error) {
	text, err := h.Svc.Text(ctx, doc)
	if err != nil {
		return "", nil, err
	}
	return h.Hooks.Analyze(ctx, doc, text, strings.TrimSpace(industry))
}

func writeError(c *gin.Context, err error, fallback string) {
	status, code, message := errorStatus(err, fallback)
	respond.Error(c, status, code, message, nil)
}

// errorStatus maps service errors onto the HTTP error envelope.
func errorStatus(err error, fallback string) (int, string, string) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found", "document not found"
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds 10MB"
	case errors.Is(err, extract.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType, "unsupported_type", err.Error()
	case errors.Is(err, ErrNotExtracted):
		return http.StatusConflict, "not_extracted", "document text is not available"
	case errors.Is(err, classify.ErrUnknownIndustry):
		return http.StatusBadRequest, "unknown_industry", err.Error()
	case errors.Is(err, ErrInvalidInput), errors.Is(err, report.ErrInvalidInput):
		return http.StatusBadRequest, "validation_error", err.Error()
	default:
		return http.StatusInternalServerError, "internal_error", fallback
	}
}
