package domain

import (
	"path/filepath"
	"strings"
)

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypeJPEG FileType = "jpeg"
	FileTypePNG  FileType = "png"
	FileTypeWebP FileType = "webp"
	FileTypeHEIC FileType = "heic"
	FileTypeHEIF FileType = "heif"
	FileTypePDF  FileType = "pdf"
	FileTypeTIFF FileType = "tiff"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeJPEG: "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeWebP: "image/webp",
	FileTypeHEIC: "image/heic",
	FileTypeHEIF: "image/heif",
	FileTypePDF:  "application/pdf",
	FileTypeTIFF: "image/tiff",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg":      FileTypeJPEG,
	"image/png":       FileTypePNG,
	"image/webp":      FileTypeWebP,
	"image/heic":      FileTypeHEIC,
	"image/heif":      FileTypeHEIF,
	"application/pdf": FileTypePDF,
	"image/tiff":      FileTypeTIFF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"jpg":  FileTypeJPEG,
	"jpeg": FileTypeJPEG,
	"png":  FileTypePNG,
	"webp": FileTypeWebP,
	"heic": FileTypeHEIC,
	"heif": FileTypeHEIF,
	"pdf":  FileTypePDF,
	"tif":  FileTypeTIFF,
	"tiff": FileTypeTIFF,
}

// ContentTypeForExtension resolves a filename to its MIME type via the
// extension allow-list. Browsers report application/octet-stream for some
// of the accepted image formats (HEIC in particular), so the extension
// serves as a fallback when the declared type is not recognized.
func ContentTypeForExtension(filename string) (string, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	ft, ok := AllowedExtensions[ext]
	if !ok {
		return "", false
	}
	return AllowedFileTypes[ft], true
}

// WorkflowState represents the lifecycle of one upload-extract-export cycle.
type WorkflowState string

const (
	WorkflowStateIdle       WorkflowState = "idle"
	WorkflowStateSelecting  WorkflowState = "selecting"
	WorkflowStateExtracting WorkflowState = "extracting"
	WorkflowStateReady      WorkflowState = "ready"
)
