package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docassist/internal/classify"
	"docassist/internal/shared/storage/object/local"
)

type analyzeCall struct {
	text     string
	industry string
}

func newTestRouter(t *testing.T, calls *[]analyzeCall) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := NewService(local.New(t.TempDir()), NewMemoryRepo())
	var mu sync.Mutex
	analyze := func(_ context.Context, doc Document, text, industry string) (string, any, error) {
		if industry == "unknown" {
			return "", nil, classify.ErrUnknownIndustry
		}
		mu.Lock()
		defer mu.Unlock()
		*calls = append(*calls, analyzeCall{text: text, industry: industry})
		return "analysis-1", gin.H{"analysisId": "analysis-1", "documentId": doc.ID}, nil
	}
	keywords := func(_ context.Context, _ Document, text string) ([]string, error) {
		return strings.Fields(text), nil
	}
	history := func(_ context.Context, doc Document) (any, error) {
		return gin.H{"documentId": doc.ID, "feedbackCount": 0}, nil
	}
	r := gin.New()
	NewHandler(svc, Hooks{Analyze: analyze, Keywords: keywords, History: history}).RegisterRoutes(r.Group("/api/v1"))
	return r
}

type namedFile struct {
	name    string
	content []byte
}

func multipartBatch(t *testing.T, files []namedFile, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		fileWriter, err := writer.CreateFormFile("files", f.name)
		require.NoError(t, err)
		_, err = fileWriter.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/batch", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func uploadText(t *testing.T, router *gin.Engine, name, content string) string {
	t.Helper()
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, multipartUpload(t, name, []byte(content), nil))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created DocumentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created.DocumentID
}

func multipartUpload(t *testing.T, fileName string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	fileWriter, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = fileWriter.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestDocumentsUploadGetAndList(t *testing.T) {
	var calls []analyzeCall
	router := newTestRouter(t, &calls)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, multipartUpload(t, "hello.txt", []byte("hello world"), nil))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created DocumentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.DocumentID)
	assert.Equal(t, "hello.txt", created.FileName)
	assert.True(t, created.Extracted)
	assert.Equal(t, "local", created.StorageProvider)
	assert.Nil(t, created.Analysis)
	assert.Empty(t, calls)

	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+created.DocumentID, nil))
	require.Equal(t, http.StatusOK, respGet.Code)

	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, httptest.NewRequest(http.MethodGet, "/api/v1/documents?limit=5", nil))
	require.Equal(t, http.StatusOK, respList.Code)
	var listed []DocumentResponse
	require.NoError(t, json.NewDecoder(respList.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.DocumentID, listed[0].DocumentID)
}

func TestDocumentsUploadWithIndustryAnalyzes(t *testing.T) {
	var calls []analyzeCall
	router := newTestRouter(t, &calls)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, multipartUpload(t, "brief.md", []byte("# Clinic\npatient portal"), map[string]string{"industry": "healthcare"}))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	require.Len(t, calls, 1)
	assert.Equal(t, "# Clinic\npatient portal", calls[0].text)
	assert.Equal(t, "healthcare", calls[0].industry)

	var created struct {
		Analysis map[string]any `json:"analysis"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "analysis-1", created.Analysis["analysisId"])
}

func TestDocumentsAnalyzeRoute(t *testing.T) {
	var calls []analyzeCall
	router := newTestRouter(t, &calls)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, multipartUpload(t, "notes.txt", []byte("payment checkout"), nil))
	require.Equal(t, http.StatusCreated, resp.Code)
	var created DocumentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+created.DocumentID+"/analyze", bytes.NewBufferString(`{"industry":"unknown"}`))
	req.Header.Set("Content-Type", "application/json")
	respBad := httptest.NewRecorder()
	router.ServeHTTP(respBad, req)
	assert.Equal(t, http.StatusBadRequest, respBad.Code)
	assert.Contains(t, respBad.Body.String(), "unknown_industry")

	respOK := httptest.NewRecorder()
	router.ServeHTTP(respOK, httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+created.DocumentID+"/analyze", nil))
	assert.Equal(t, http.StatusCreated, respOK.Code)
	require.Len(t, calls, 1)
	assert.Equal(t, "payment checkout", calls[0].text)
	assert.Empty(t, calls[0].industry)
}

func TestDocumentsErrors(t *testing.T) {
	var calls []analyzeCall
	router := newTestRouter(t, &calls)

	respMissing := httptest.NewRecorder()
	router.ServeHTTP(respMissing, httptest.NewRequest(http.MethodGet, "/api/v1/documents/nope", nil))
	assert.Equal(t, http.StatusNotFound, respMissing.Code)

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	respType := httptest.NewRecorder()
	router.ServeHTTP(respType, multipartUpload(t, "logo.png", png, nil))
	assert.Equal(t, http.StatusUnsupportedMediaType, respType.Code)

	respEmpty := httptest.NewRecorder()
	router.ServeHTTP(respEmpty, multipartUpload(t, "empty.txt", nil, nil))
	assert.Equal(t, http.StatusBadRequest, respEmpty.Code)
}

func TestDocumentsUploadKeepsDocumentWhenAnalysisFails(t *testing.T) {
	var calls []analyzeCall
	router := newTestRouter(t, &calls)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, multipartUpload(t, "brief.txt", []byte("shop checkout"), map[string]string{"industry": "unknown"}))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created DocumentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.DocumentID)
	assert.Nil(t, created.Analysis)
	require.NotNil(t, created.AnalysisError)
	assert.Equal(t, "unknown_industry", created.AnalysisError.Code)

	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+created.DocumentID, nil))
	assert.Equal(t, http.StatusOK, respGet.Code)

	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil))
	var listed []DocumentResponse
	require.NoError(t, json.NewDecoder(respList.Body).Decode(&listed))
	assert.Len(t, listed, 1)
}

func TestDocumentsGetIncludesHistory(t *testing.T) {
	var calls []analyzeCall
	router := newTestRouter(t, &calls)
	id := uploadText(t, router, "notes.txt", "payment checkout")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+id, nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var got struct {
		History map[string]any `json:"history"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, id, got.History["documentId"])
	assert.EqualValues(t, 0, got.History["feedbackCount"])
}

func TestDocumentsBatchUpload(t *testing.T) {
	var calls []analyzeCall
	router := newTestRouter(t, &calls)

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, multipartBatch(t, []namedFile{
		{name: "a.txt", content: []byte("first brief")},
		{name: "logo.png", content: png},
		{name: "b.md", content: []byte("# second brief")},
	}, map[string]string{"industry": "healthcare"}))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out BatchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 3, out.TotalCount)
	assert.Equal(t, 2, out.SuccessCount)
	require.Len(t, out.Documents, 2)
	assert.Equal(t, "a.txt", out.Documents[0].FileName)
	assert.Equal(t, "b.md", out.Documents[1].FileName)
	assert.NotNil(t, out.Documents[0].Analysis)
	require.Len(t, out.Errors, 1)
	assert.True(t, strings.HasPrefix(out.Errors[0], "logo.png: "), out.Errors[0])
	assert.Equal(t, "2 of 3 files uploaded", out.Message)
}

func TestDocumentsBatchUploadLimits(t *testing.T) {
	var calls []analyzeCall
	router := newTestRouter(t, &calls)

	respNone := httptest.NewRecorder()
	router.ServeHTTP(respNone, multipartBatch(t, nil, map[string]string{"industry": ""}))
	assert.Equal(t, http.StatusBadRequest, respNone.Code)

	files := make([]namedFile, MaxBatchFiles+1)
	for i := range files {
		files[i] = namedFile{name: "f.txt", content: []byte("text")}
	}
	respMany := httptest.NewRecorder()
	router.ServeHTTP(respMany, multipartBatch(t, files, nil))
	assert.Equal(t, http.StatusBadRequest, respMany.Code)
	assert.Empty(t, calls)
}

func TestDocumentsCompare(t *testing.T) {
	var calls []analyzeCall
	router := newTestRouter(t, &calls)
	id1 := uploadText(t, router, "one.txt", "alpha beta gamma")
	id2 := uploadText(t, router, "two.txt", "Beta gamma delta")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/documents/compare?id1="+id1+"&id2="+id2, nil))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var cmp Comparison
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cmp))
	assert.Equal(t, id1, cmp.DocumentID1)
	assert.Equal(t, []string{"beta", "gamma"}, cmp.CommonKeywords)
	assert.Equal(t, []string{"alpha"}, cmp.UniqueToDoc1)
	assert.Equal(t, []string{"delta"}, cmp.UniqueToDoc2)
	assert.InDelta(t, 0.5, cmp.SimilarityScore, 1e-9)

	respMissing := httptest.NewRecorder()
	router.ServeHTTP(respMissing, httptest.NewRequest(http.MethodGet, "/api/v1/documents/compare?id1="+id1+"&id2=nope", nil))
	assert.Equal(t, http.StatusNotFound, respMissing.Code)

	respBad := httptest.NewRecorder()
	router.ServeHTTP(respBad, httptest.NewRequest(http.MethodGet, "/api/v1/documents/compare?id1="+id1, nil))
	assert.Equal(t, http.StatusBadRequest, respBad.Code)
}

func TestCompareKeywordsEmpty(t *testing.T) {
	cmp := compareKeywords(nil, []string{" ", ""})
	assert.Equal(t, 0.0, cmp.SimilarityScore)
	assert.Empty(t, cmp.CommonKeywords)
	assert.NotNil(t, cmp.UniqueToDoc2)
}
