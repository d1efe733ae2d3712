package md2html

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Outcome describes a reported conversion. Err is nil on success.
type Outcome struct {
	Input    string
	Output   string
	PDF      string // PDF path, empty unless one was written
	Err      error
	Duration time.Duration
}

// OK reports whether the conversion succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Stage returns the failing stage, or "" on success or for errors raised
// before conversion started (invalid options, missing assets).
func (o Outcome) Stage() Stage {
	s, _ := StageOf(o.Err)
	return s
}

// ConvertAndReport converts inputPath to outputPath and prints the result to
// w: "Created <output>" on success, "error: <cause>" otherwise. It never
// panics and never returns an error; callers inspect the Outcome.
func ConvertAndReport(ctx context.Context, w io.Writer, inputPath, outputPath string, opts ...Option) (out Outcome) {
	start := time.Now()
	out = Outcome{Input: inputPath, Output: outputPath}

	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("internal error: %v", r)
		}
		out.Duration = time.Since(start)
		Report(w, out)
	}()

	conv, err := NewConverter(opts...)
	if err != nil {
		out.Err = err
		return out
	}
	defer conv.Close()

	out.PDF, out.Err = conv.convertFile(ctx, inputPath, outputPath)
	return out
}

// Report prints one line per written file for a successful outcome, or the
// error otherwise.
func Report(w io.Writer, o Outcome) {
	if w == nil {
		return
	}
	if o.Err != nil {
		fmt.Fprintf(w, "error: %v\n", o.Err)
		return
	}
	fmt.Fprintf(w, "Created %s\n", o.Output)
	if o.PDF != "" {
		fmt.Fprintf(w, "Created %s\n", o.PDF)
	}
}
