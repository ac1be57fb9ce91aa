package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/takerupon/ai-ocr-test/internal/config"
	"github.com/takerupon/ai-ocr-test/internal/domain"
	"github.com/takerupon/ai-ocr-test/internal/handler"
	"github.com/takerupon/ai-ocr-test/internal/port"
	"github.com/takerupon/ai-ocr-test/internal/router"
	"github.com/takerupon/ai-ocr-test/internal/service"
	"github.com/takerupon/ai-ocr-test/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	engine    *gin.Engine
	extractor *mocks.MockOrderExtractor
	exporter  *mocks.MockOrderExporter
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	extractor := new(mocks.MockOrderExtractor)
	extractor.On("DemoMode").Return(false).Maybe()
	exporter := new(mocks.MockOrderExporter)

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Upload: config.UploadConfig{MaxFileSizeMB: 20},
	}

	svc := service.NewWorkflowService(extractor, exporter, &cfg.Upload)
	engine := router.Setup(cfg, handler.NewWorkflowHandler(svc), handler.NewHealthHandler())

	return &testApp{engine: engine, extractor: extractor, exporter: exporter}
}

func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func multipartUpload(t *testing.T, fieldName, fileName, contentType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="` + fieldName + `"; filename="` + fileName + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func (a *testApp) uploadPNG(t *testing.T) {
	t.Helper()
	w := a.do(t, multipartUpload(t, "file", "order.png", "image/png", []byte("png-bytes")))
	require.Equal(t, http.StatusCreated, w.Code)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSelectFile_Success(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, multipartUpload(t, "file", "order.png", "image/png", []byte("png-bytes")))

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	file := resp.Data.(map[string]interface{})
	assert.Equal(t, "order.png", file["file_name"])
	assert.Equal(t, "image/png", file["content_type"])
	assert.NotEmpty(t, file["id"])
}

func TestSelectFile_MissingFileField(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", nil)
	w := app.do(t, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "MISSING_FILE", resp.Error.Code)
}

func TestSelectFile_UnsupportedType(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, multipartUpload(t, "file", "notes.txt", "text/plain", []byte("hello")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
}

func TestSelectFile_ExtensionFallbackForGenericContentType(t *testing.T) {
	app := newTestApp(t)

	// Browsers often report HEIC uploads as application/octet-stream.
	w := app.do(t, multipartUpload(t, "file", "IMG_0001.heic", "application/octet-stream", []byte("heic-bytes")))

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	file := resp.Data.(map[string]interface{})
	assert.Equal(t, "image/heic", file["content_type"])
}

func TestClearFile(t *testing.T) {
	app := newTestApp(t)
	app.uploadPNG(t)

	w := app.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/files", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	// Status no longer reports a selected file.
	w = app.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	resp := decodeResponse(t, w)
	status := resp.Data.(map[string]interface{})
	assert.Equal(t, "idle", status["state"])
	assert.NotContains(t, status, "selected_file")
}

func TestSubmit_Success(t *testing.T) {
	app := newTestApp(t)
	app.uploadPNG(t)

	total := float64(200)
	app.extractor.On("Extract", mock.Anything, mock.Anything).Return(&domain.OrderData{
		OrderNumber: "PO-1",
		Items:       []domain.OrderItem{{Name: "A", Quantity: domain.QuantityFromNumber(2)}},
		TotalAmount: &total,
	}, nil).Once()

	w := app.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/extract", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, false, data["demo_mode"])

	order := data["order"].(map[string]interface{})
	assert.Equal(t, "PO-1", order["orderNumber"])
	items := order["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, float64(2), items[0].(map[string]interface{})["quantity"])
}

func TestSubmit_NoFileSelected(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/extract", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "NO_FILE_SELECTED", resp.Error.Code)
}

func TestSubmit_ExtractionFailure(t *testing.T) {
	app := newTestApp(t)
	app.uploadPNG(t)

	app.extractor.On("Extract", mock.Anything, mock.Anything).
		Return(nil, domain.ErrExtractionFailed).Once()

	w := app.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/extract", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "EXTRACTION_FAILED", resp.Error.Code)
}

func TestResult_NotFoundBeforeExtraction(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/result", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "NO_RESULT", resp.Error.Code)
}

func TestExport_Success(t *testing.T) {
	app := newTestApp(t)
	app.uploadPNG(t)

	app.extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&domain.OrderData{OrderNumber: "PO-1", Items: []domain.OrderItem{}}, nil).Once()
	w := app.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/extract", nil))
	require.Equal(t, http.StatusOK, w.Code)

	app.exporter.On("Export", mock.Anything).Return(&port.ExportOutput{
		Content:     []byte("xlsx-bytes"),
		Filename:    "purchase_order_PO-1.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil).Once()

	w = app.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/export", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="purchase_order_PO-1.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Equal(t, "xlsx-bytes", w.Body.String())
}

func TestExport_NoResult(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/export", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "NO_RESULT", resp.Error.Code)
}

func TestStatus_ReportsSelection(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	resp := decodeResponse(t, w)
	status := resp.Data.(map[string]interface{})
	assert.Equal(t, "idle", status["state"])
	assert.Equal(t, false, status["demo_mode"])

	app.uploadPNG(t)

	w = app.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	resp = decodeResponse(t, w)
	status = resp.Data.(map[string]interface{})
	assert.Equal(t, "selecting", status["state"])
	selected := status["selected_file"].(map[string]interface{})
	assert.Equal(t, "order.png", selected["file_name"])
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS_PreflightAllowedOrigin(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/files", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := app.do(t, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
