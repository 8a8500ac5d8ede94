package feedback

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docassist/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the feedback service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches feedback routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/feedback", h.submit)
	rg.POST("/feedback/quick", h.quick)
	rg.GET("/feedback/analysis/:id", h.forAnalysis)
	rg.GET("/feedback/quality-report", h.qualityReport)
	rg.GET("/feedback/improvement-suggestions", h.suggestions)
}

type submitRequest struct {
	AnalysisID            string `json:"analysisId"`
	OverallRating         int    `json:"overallRating"`
	SummaryRating         int    `json:"summaryRating"`
	KeywordsRating        int    `json:"keywordsRating"`
	RecommendationsRating int    `json:"recommendationsRating"`
	Comment               string `json:"comment"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, "invalid request body", nil)
		return
	}
	c.Set("analysisId", req.AnalysisID)

	f, err := h.Svc.Submit(c.Request.Context(), SubmitInput{
		AnalysisID:            req.AnalysisID,
		OverallRating:         req.OverallRating,
		SummaryRating:         req.SummaryRating,
		KeywordsRating:        req.KeywordsRating,
		RecommendationsRating: req.RecommendationsRating,
		Comment:               req.Comment,
		ClientIP:              c.ClientIP(),
		UserAgent:             c.Request.UserAgent(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, f)
}

type quickRequest struct {
	AnalysisID string `json:"analysisId"`
	Type       string `json:"type"`
	Helpful    *bool  `json:"helpful"`
}

func (h *Handler) quick(c *gin.Context) {
	var req quickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, "invalid request body", nil)
		return
	}
	if req.Helpful == nil {
		respond.ValidationError(c, "helpful is required", nil)
		return
	}
	c.Set("analysisId", req.AnalysisID)

	f, err := h.Svc.SubmitQuick(c.Request.Context(), QuickInput{
		AnalysisID: req.AnalysisID,
		Aspect:     req.Type,
		Helpful:    *req.Helpful,
		ClientIP:   c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, f)
}

func (h *Handler) forAnalysis(c *gin.Context) {
	items, err := h.Svc.ForAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) qualityReport(c *gin.Context) {
	rep, err := h.Svc.QualityReport(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, rep)
}

func (h *Handler) suggestions(c *gin.Context) {
	rep, err := h.Svc.QualityReport(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, rep.Suggestions)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.ValidationError(c, err.Error(), nil)
	case errors.Is(err, ErrAnalysisNotFound):
		respond.NotFound(c, "analysis not found")
	default:
		respond.Internal(c, "failed to process feedback")
	}
}
