package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/takerupon/ai-ocr-test/internal/domain"
	"github.com/takerupon/ai-ocr-test/internal/service"
)

// WorkflowHandler exposes the upload-extract-export workflow over HTTP.
type WorkflowHandler struct {
	workflow service.WorkflowService
}

// NewWorkflowHandler creates a new WorkflowHandler.
func NewWorkflowHandler(workflow service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflow: workflow}
}

// SelectFile handles POST /api/v1/files.
// Accepts a multipart upload and makes it the current selection.
func (h *WorkflowHandler) SelectFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		if ct, ok := domain.ContentTypeForExtension(header.Filename); ok {
			contentType = ct
		}
	}

	meta, err := h.workflow.SelectFile(service.SelectFileInput{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Content:     content,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, meta)
}

// ClearFile handles DELETE /api/v1/files.
func (h *WorkflowHandler) ClearFile(c *gin.Context) {
	h.workflow.ClearFile()
	RespondOK(c, gin.H{"message": "selection cleared"})
}

// Submit handles POST /api/v1/extract.
// Runs extraction for the current selection; rejected with 409 while a
// previous extraction is still in flight.
func (h *WorkflowHandler) Submit(c *gin.Context) {
	data, err := h.workflow.Submit(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"order":     data,
		"demo_mode": h.workflow.DemoMode(),
	})
}

// Result handles GET /api/v1/result.
func (h *WorkflowHandler) Result(c *gin.Context) {
	data := h.workflow.Result()
	if data == nil {
		RespondError(c, http.StatusNotFound, "NO_RESULT", "no extraction result available")
		return
	}
	RespondOK(c, data)
}

// Export handles GET /api/v1/export.
// Streams the current result as an XLSX attachment.
func (h *WorkflowHandler) Export(c *gin.Context) {
	out, err := h.workflow.Export(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	c.Data(http.StatusOK, out.ContentType, out.Content)
}

// Status handles GET /api/v1/status.
// Reports workflow state and whether the extractor runs in demo mode, so
// the frontend can show its "no API key configured" banner.
func (h *WorkflowHandler) Status(c *gin.Context) {
	resp := gin.H{
		"state":     h.workflow.State(),
		"demo_mode": h.workflow.DemoMode(),
	}
	if sel := h.workflow.Selected(); sel != nil {
		resp["selected_file"] = sel
	}
	RespondOK(c, resp)
}
