package main

import (
	"errors"
	"os"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
)

// Exit codes for md2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2html.ErrPDFGeneration) ||
		errors.Is(err, md2html.ErrBrowserConnect) ||
		errors.Is(err, md2html.ErrPageCreate) ||
		errors.Is(err, md2html.ErrPageLoad) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, md2html.ErrUnknownExtension) ||
		errors.Is(err, md2html.ErrInvalidTemplate) ||
		errors.Is(err, md2html.ErrStyleNotFound) ||
		errors.Is(err, md2html.ErrTemplateSetNotFound) ||
		errors.Is(err, md2html.ErrIncompleteTemplateSet) ||
		errors.Is(err, md2html.ErrInvalidAssetPath) ||
		errors.Is(err, md2html.ErrInvalidDirection) ||
		errors.Is(err, md2html.ErrInvalidSourceURL) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrOutputIsFile) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, md2html.ErrReadMarkdown) ||
		errors.Is(err, md2html.ErrWriteHTML) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoMarkdownFiles) {
		return ExitIO
	}

	return ExitGeneral
}
