package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/takerupon/ai-ocr-test/internal/config"
	"github.com/takerupon/ai-ocr-test/internal/domain"
	"github.com/takerupon/ai-ocr-test/internal/port"
)

// SelectFileInput is the DTO for file selection requests.
type SelectFileInput struct {
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}

// SelectedFile describes the currently selected file.
type SelectedFile struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	SelectedAt  time.Time `json:"selected_at"`
}

// WorkflowService drives one upload-extract-export cycle. At most one
// extraction is in flight at any time; results live only until the next
// selection or clear.
type WorkflowService interface {
	SelectFile(input SelectFileInput) (*SelectedFile, error)
	ClearFile()
	Submit(ctx context.Context) (*domain.OrderData, error)
	Export(ctx context.Context) (*port.ExportOutput, error)
	Result() *domain.OrderData
	Selected() *SelectedFile
	State() domain.WorkflowState
	DemoMode() bool
}

type workflowService struct {
	extractor port.OrderExtractor
	exporter  port.OrderExporter
	cfg       *config.UploadConfig

	mu       sync.Mutex
	state    domain.WorkflowState
	selected *SelectedFile
	content  []byte
	result   *domain.OrderData
}

// NewWorkflowService creates a new WorkflowService implementation.
func NewWorkflowService(
	extractor port.OrderExtractor,
	exporter port.OrderExporter,
	cfg *config.UploadConfig,
) WorkflowService {
	return &workflowService{
		extractor: extractor,
		exporter:  exporter,
		cfg:       cfg,
		state:     domain.WorkflowStateIdle,
	}
}

// ValidateUpload checks a declared media type and byte size against the
// acceptance rules. Media type is checked before size.
func ValidateUpload(contentType string, size, maxBytes int64) error {
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		return domain.ErrUnsupportedFileType
	}
	if size > maxBytes {
		return domain.ErrFileTooLarge
	}
	return nil
}

// SelectFile validates the upload and makes it the current selection,
// discarding any previous result. On rejection nothing changes: the prior
// selection and result stay as they were.
func (s *workflowService) SelectFile(input SelectFileInput) (*SelectedFile, error) {
	if err := ValidateUpload(input.ContentType, input.Size, s.cfg.MaxFileSizeBytes()); err != nil {
		return nil, err
	}

	meta := &SelectedFile{
		ID:          uuid.New(),
		FileName:    input.FileName,
		ContentType: input.ContentType,
		Size:        input.Size,
		SelectedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("workflowService.SelectFile: selected %s (%s, %d bytes)",
		input.FileName, input.ContentType, input.Size)

	s.selected = meta
	s.content = input.Content
	s.result = nil
	// An in-flight extraction is never aborted; it resolves against the
	// file it started with while the new selection waits for the next
	// submit.
	if s.state != domain.WorkflowStateExtracting {
		s.state = domain.WorkflowStateSelecting
	}
	return meta, nil
}

// ClearFile drops the selection and any result, releasing the held file
// bytes.
func (s *workflowService) ClearFile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
	s.content = nil
	s.result = nil
	if s.state != domain.WorkflowStateExtracting {
		s.state = domain.WorkflowStateIdle
	}
}

// Submit runs extraction for the current selection. A submit while a prior
// extraction is in flight is rejected so only one service call ever runs at
// a time. On extraction failure the workflow returns to selecting with the
// file kept, so the user can retry.
func (s *workflowService) Submit(ctx context.Context) (*domain.OrderData, error) {
	s.mu.Lock()
	if s.state == domain.WorkflowStateExtracting {
		s.mu.Unlock()
		return nil, domain.ErrExtractionInFlight
	}
	if s.selected == nil {
		s.mu.Unlock()
		return nil, domain.ErrNoFileSelected
	}
	input := port.ExtractInput{
		FileBytes:   s.content,
		ContentType: s.selected.ContentType,
		FileName:    s.selected.FileName,
	}
	s.result = nil
	s.state = domain.WorkflowStateExtracting
	s.mu.Unlock()

	start := time.Now()
	data, err := s.extractor.Extract(ctx, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("workflowService.Submit: extraction failed after %s: %v", time.Since(start), err)
		s.state = domain.WorkflowStateSelecting
		return nil, err
	}

	log.Printf("workflowService.Submit: extracted %d items in %s", len(data.Items), time.Since(start))
	s.result = data
	s.state = domain.WorkflowStateReady
	return data, nil
}

// Export renders the current result to a spreadsheet. It requires a result
// and changes no state on either success or failure, so a failed export can
// simply be retried.
func (s *workflowService) Export(_ context.Context) (*port.ExportOutput, error) {
	s.mu.Lock()
	data := s.result
	s.mu.Unlock()

	if data == nil {
		return nil, domain.ErrNoResult
	}

	out, err := s.exporter.Export(data)
	if err != nil {
		log.Printf("workflowService.Export: export failed: %v", err)
		return nil, err
	}
	log.Printf("workflowService.Export: built %s (%d bytes)", out.Filename, len(out.Content))
	return out, nil
}

func (s *workflowService) Result() *domain.OrderData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func (s *workflowService) Selected() *SelectedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *workflowService) State() domain.WorkflowState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *workflowService) DemoMode() bool {
	return s.extractor.DemoMode()
}
