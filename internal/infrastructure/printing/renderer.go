package printing

import (
	"context"
	"strings"
	"time"
)

// PaperSize is a page size in millimeters
type PaperSize struct {
	WidthMM  float64
	HeightMM float64
}

// PaperA4 is the only layout invoices are printed on
var PaperA4 = PaperSize{WidthMM: 210, HeightMM: 297}

// IsValid reports whether both dimensions are positive
func (p PaperSize) IsValid() bool {
	return p.WidthMM > 0 && p.HeightMM > 0
}

// Margins in millimeters
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins returns 18mm on every side
func DefaultMargins() Margins {
	return Margins{Top: 18, Right: 18, Bottom: 18, Left: 18}
}

// RenderRequest contains the parameters for rendering HTML to PDF
type RenderRequest struct {
	// HTML content to render
	HTML string
	// PaperSize defines the output paper dimensions
	PaperSize PaperSize
	// Landscape switches orientation; invoices are portrait
	Landscape bool
	// Margins in millimeters
	Margins Margins
	// Title for the PDF document metadata
	Title string
	// Timeout overrides the default rendering timeout
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	// PDFData is the raw PDF file content
	PDFData []byte
	// PageCount is the number of pages in the PDF
	PageCount int
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// PDFRenderer defines the interface for rendering HTML to PDF
type PDFRenderer interface {
	// Render converts HTML content to a PDF document
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	// Close releases any resources held by the renderer
	Close() error
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidHTML      = "INVALID_HTML"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// validateRequest checks a request before any browser work is done
func validateRequest(req *RenderRequest) error {
	if req == nil {
		return NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	}
	if strings.TrimSpace(req.HTML) == "" {
		return NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}
	if !req.PaperSize.IsValid() {
		return NewRenderError(ErrCodeInvalidPaperSize, "invalid paper size", nil)
	}
	return nil
}
