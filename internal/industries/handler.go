package industries

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docassist/internal/classify"
	"docassist/internal/industry"
	"docassist/internal/report"
	"docassist/internal/shared/server/respond"
)

const maxDetectBytes = 1 << 20

// Detector classifies text without synthesizing a report.
type Detector interface {
	Detect(text string) (classify.Result, []classify.Score, error)
}

// Handler serves the industry catalog and detection.
type Handler struct {
	Catalog  *industry.Catalog
	Detector Detector
}

func NewHandler(catalog *industry.Catalog, detector Detector) *Handler {
	return &Handler{Catalog: catalog, Detector: detector}
}

// RegisterRoutes attaches industry routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/industries", h.list)
	rg.GET("/industries/:id", h.get)
	rg.POST("/industries/detect", h.detect)
}

// Summary is the list view of a profile.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type listResponse struct {
	Version    string    `json:"version"`
	Industries []Summary `json:"industries"`
}

func (h *Handler) list(c *gin.Context) {
	profiles := h.Catalog.All()
	out := make([]Summary, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, Summary{ID: p.ID, Name: p.Name, Description: p.Description})
	}
	respond.OK(c, listResponse{Version: h.Catalog.Version(), Industries: out})
}

func (h *Handler) get(c *gin.Context) {
	p, ok := h.Catalog.ByID(strings.TrimSpace(c.Param("id")))
	if !ok {
		respond.NotFound(c, "industry not found")
		return
	}
	respond.OK(c, p)
}

type detectRequest struct {
	Text string `json:"text"`
}

type detectResponse struct {
	Industry   industry.Profile `json:"industry"`
	Confidence int              `json:"confidence"`
	Scores     []classify.Score `json:"scores"`
}

func (h *Handler) detect(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*maxDetectBytes)

	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, "invalid request body", nil)
		return
	}
	if len(req.Text) > maxDetectBytes {
		respond.ValidationError(c, "text exceeds 1MB", nil)
		return
	}

	res, scores, err := h.Detector.Detect(req.Text)
	if err != nil {
		if errors.Is(err, report.ErrInvalidInput) {
			respond.ValidationError(c, err.Error(), nil)
			return
		}
		respond.Internal(c, "failed to detect industry")
		return
	}
	c.Set("industry", res.Industry.ID)
	respond.OK(c, detectResponse{Industry: res.Industry, Confidence: res.Confidence, Scores: scores})
}
