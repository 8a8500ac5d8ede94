package remote

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"docassist/internal/industry"
	"docassist/internal/report"
)

// ErrMalformedResponse is returned when a backend body is not a JSON object.
var ErrMalformedResponse = errors.New("malformed remote response")

const (
	defaultIndustryID = "it"
	defaultConfidence = 75
	minConfidence     = 10
	maxConfidence     = 95
)

// Result is a backend analysis mapped onto the local report shape.
type Result struct {
	Report           report.Report `json:"report"`
	Message          string        `json:"message,omitempty"`
	ProcessingTimeMs int64         `json:"processingTimeMs,omitempty"`
	// Partial is set when the backend answered with its degraded fallback analysis.
	Partial bool `json:"partial,omitempty"`
}

// Normalize maps a backend response body into a Result. It accepts the
// canonical report shape as well as the legacy {"document": {...}} envelope.
// Profiles are resolved against catalog when the backend names a known id.
func Normalize(body []byte, catalog *industry.Catalog) (Result, error) {
	if !gjson.ValidBytes(body) {
		return Result{}, ErrMalformedResponse
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return Result{}, ErrMalformedResponse
	}

	res := Result{
		Message:          root.Get("message").String(),
		ProcessingTimeMs: root.Get("processingTimeMs").Int(),
		Partial:          root.Get("metadata.fallback").Bool(),
	}

	if root.Get("detectedIndustry.industry.id").Exists() {
		// Confidence may arrive as a fraction; it is read here and
		// removed before decoding into the integer field.
		confidence := confidenceOf(root.Get("detectedIndustry.confidence"))
		stripped, err := sjson.DeleteBytes(body, "detectedIndustry.confidence")
		if err != nil {
			return Result{}, errors.Join(ErrMalformedResponse, err)
		}
		var rep report.Report
		if err := json.Unmarshal(stripped, &rep); err != nil {
			return Result{}, errors.Join(ErrMalformedResponse, err)
		}
		rep.FillEmpty()
		rep.DetectedIndustry.Confidence = confidence
		res.Report = rep
		return res, nil
	}

	doc := root.Get("document")
	if !doc.Exists() {
		doc = root
	}

	var rep report.Report
	rep.Summary = firstString(doc.Get("summary"), root.Get("summary"))
	rep.DetectedIndustry.Industry = resolveProfile(catalog,
		firstString(root.Get("detectedIndustry.id"), doc.Get("documentType"), root.Get("industry")),
		firstString(root.Get("detectedIndustry.name"), doc.Get("documentType")),
	)
	rep.DetectedIndustry.Confidence = confidenceOf(doc.Get("qualityScore"), root.Get("detectedIndustry.confidence"), root.Get("confidence"))
	rep.KeywordCategories.Business = splitList(firstResult(doc.Get("keywords"), root.Get("keywords")))
	rep.Recommendations.Medium = splitList(firstResult(doc.Get("suggestedComponents"), root.Get("suggestedComponents")))
	rep.FillEmpty()
	res.Report = rep
	return res, nil
}

func resolveProfile(catalog *industry.Catalog, id, name string) industry.Profile {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		id = defaultIndustryID
	}
	if catalog != nil {
		if p, ok := catalog.ByID(id); ok {
			return p
		}
	}
	if name = strings.TrimSpace(name); name == "" {
		name = id
	}
	return industry.Profile{ID: id, Name: name}
}

func confidenceOf(candidates ...gjson.Result) int {
	for _, c := range candidates {
		if c.Type != gjson.Number {
			continue
		}
		v := c.Float()
		if v > 0 && v <= 1 {
			v *= 100
		}
		return clampConfidence(v)
	}
	return defaultConfidence
}

func clampConfidence(v float64) int {
	return int(math.Max(minConfidence, math.Min(maxConfidence, math.Round(v))))
}

func firstResult(candidates ...gjson.Result) gjson.Result {
	for _, c := range candidates {
		if c.Exists() && c.Type != gjson.Null {
			return c
		}
	}
	return gjson.Result{}
}

func firstString(candidates ...gjson.Result) string {
	for _, c := range candidates {
		if s := strings.TrimSpace(c.String()); s != "" && c.Type == gjson.String {
			return s
		}
	}
	return ""
}

// splitList accepts a JSON array or a comma/newline separated string.
func splitList(v gjson.Result) []string {
	var parts []string
	switch {
	case v.IsArray():
		for _, item := range v.Array() {
			parts = append(parts, item.String())
		}
	case v.Type == gjson.String:
		parts = strings.FieldsFunc(v.String(), func(r rune) bool {
			return r == ',' || r == '\n' || r == ';'
		})
	}

	out := []string{}
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(p), "-*•"))
		if p == "" {
			continue
		}
		key := strings.ToLower(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
