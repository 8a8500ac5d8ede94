package analyses

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docassist/internal/classify"
	"docassist/internal/report"
	"docassist/internal/shared/server/respond"
	"docassist/internal/textstats"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses/text", h.analyzeText)
	rg.POST("/analyses/compare", h.compare)
	rg.POST("/analyses/realtime", h.realtime)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

type analyzeTextRequest struct {
	Text     string `json:"text"`
	Industry string `json:"industry"`
	Title    string `json:"title"`
	Save     *bool  `json:"save"`
}

func (h *Handler) analyzeText(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*MaxTextBytes)

	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, "invalid request body", nil)
		return
	}
	save := true
	if req.Save != nil {
		save = *req.Save
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), AnalyzeInput{
		Text:     req.Text,
		Industry: req.Industry,
		Title:    req.Title,
		Save:     save,
	})
	if err != nil {
		writeError(c, err, "failed to analyze text")
		return
	}
	c.Set("analysisId", analysis.ID)
	c.Set("industry", analysis.IndustryID)

	status := http.StatusOK
	if analysis.Saved {
		status = http.StatusCreated
	}
	respond.JSON(c, status, analysis)
}

type compareRequest struct {
	Text     string `json:"text"`
	Industry string `json:"industry"`
	Title    string `json:"title"`
}

func (h *Handler) compare(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*MaxTextBytes)

	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, "invalid request body", nil)
		return
	}

	cmp, err := h.Svc.Compare(c.Request.Context(), req.Text, req.Industry, req.Title)
	if err != nil {
		writeError(c, err, "failed to compare analyses")
		return
	}
	c.Set("industry", cmp.Local.DetectedIndustry.Industry.ID)
	respond.OK(c, cmp)
}

type realtimeRequest struct {
	Text *string `json:"text"`
}

// realtime returns writing statistics for text being edited. Nothing is stored.
func (h *Handler) realtime(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*MaxTextBytes)

	var req realtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil {
		respond.ValidationError(c, "text is required", nil)
		return
	}
	if len(*req.Text) > MaxTextBytes {
		respond.ValidationError(c, "text is too long", nil)
		return
	}
	respond.OK(c, textstats.Analyze(*req.Text))
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysis, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch analysis")
		return
	}
	c.Set("analysisId", analysis.ID)
	respond.OK(c, analysis)
}

func (h *Handler) listAnalyses(c *gin.Context) {
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
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	items, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err, "failed to list analyses")
		return
	}
	resp := make([]Summary, 0, len(items))
	for _, a := range items {
		resp = append(resp, toSummary(a))
	}
	respond.OK(c, resp)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, "analysis not found")
	case errors.Is(err, classify.ErrUnknownIndustry):
		respond.Error(c, http.StatusBadRequest, "unknown_industry", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, report.ErrInvalidInput):
		respond.ValidationError(c, err.Error(), nil)
	default:
		respond.Internal(c, fallback)
	}
}
