package main

import (
	"context"
	"errors"
	"os"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/hints"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// withHint returns the error message followed by an actionable hint when
// one applies.
func withHint(err error) string {
	return err.Error() + hintFor(err)
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, md2html.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, md2html.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, md2html.ErrReadMarkdown) && errors.Is(err, os.ErrNotExist):
		var ce *md2html.ConversionError
		if errors.As(err, &ce) {
			return hints.ForInputNotFound(ce.Path, config.DefaultInputPath)
		}
	case errors.Is(err, md2html.ErrWriteHTML):
		return hints.ForOutputDirectory()
	case errors.Is(err, md2html.ErrStyleNotFound):
		return hints.ForStyleNotFound(md2html.BuiltinStyles())
	case errors.Is(err, md2html.ErrTemplateSetNotFound):
		return hints.ForTemplateNotFound(md2html.BuiltinTemplateSets())
	case errors.Is(err, md2html.ErrUnknownExtension):
		return hints.ForUnknownExtension(pipeline.KnownExtensions())
	}
	return ""
}
