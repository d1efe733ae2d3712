package md2html

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// Stage identifies the step of a conversion that failed.
type Stage string

// Conversion stages, in pipeline order.
const (
	StageRead   Stage = "read"
	StageRender Stage = "render"
	StageWrite  Stage = "write"
	StagePDF    Stage = "pdf"
)

// Stage sentinels. A *ConversionError matches the sentinel of its stage.
var (
	ErrReadMarkdown   = errors.New("reading markdown failed")
	ErrRenderMarkdown = errors.New("rendering markdown failed")
	ErrWriteHTML      = errors.New("writing HTML failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)

// Browser errors, reported under StagePDF.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)

// Construction errors returned by NewConverter.
var (
	ErrUnknownExtension      = pipeline.ErrUnknownExtension
	ErrInvalidTemplate       = pipeline.ErrInvalidTemplate
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing page template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)

// Page validation errors.
var (
	ErrInvalidDirection = errors.New("invalid text direction")
	ErrInvalidSourceURL = errors.New("invalid source URL")
)

// ConversionError reports a failed conversion together with the stage and
// path involved. errors.Is matches both the stage sentinel and the
// underlying cause.
type ConversionError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", e.Stage.sentinel(), e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", e.Stage.sentinel(), e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of the error's stage.
func (e *ConversionError) Is(target error) bool {
	s := e.Stage.sentinel()
	return s != nil && target == s
}

// sentinel returns the error value matching s, or nil for an unknown stage.
func (s Stage) sentinel() error {
	switch s {
	case StageRead:
		return ErrReadMarkdown
	case StageRender:
		return ErrRenderMarkdown
	case StageWrite:
		return ErrWriteHTML
	case StagePDF:
		return ErrPDFGeneration
	}
	return nil
}

// StageOf returns the stage of the first *ConversionError in err's chain.
func StageOf(err error) (Stage, bool) {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Stage, true
	}
	return "", false
}

func stageError(stage Stage, path string, err error) error {
	return &ConversionError{Stage: stage, Path: path, Err: err}
}
