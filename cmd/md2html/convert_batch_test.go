package main

// Notes:
// - convertBatch runs against a mock pool so ordering, acquire failures and
//   cancellation are checked without goldmark or a browser
// - printResults is checked on its Stdout/Stderr split

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	md2html "github.com/alnah/go-md2html"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock pool and converter
// ---------------------------------------------------------------------------

type mockFileConverter struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (m *mockFileConverter) ConvertFile(ctx context.Context, in, out string) error {
	m.mu.Lock()
	m.calls = append(m.calls, in)
	m.mu.Unlock()
	if err := m.fail[in]; err != nil {
		return err
	}
	return os.WriteFile(out, []byte("<html>"+in+"</html>"), 0o600)
}

type mockPool struct {
	conv       *mockFileConverter
	size       int
	acquireErr error
	released   int
	mu         sync.Mutex
}

func (p *mockPool) Acquire() (FileConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *mockPool) Release(FileConverter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int { return p.size }

func makeFiles(t *testing.T, n int) []FileToConvert {
	t.Helper()
	dir := t.TempDir()
	files := make([]FileToConvert, n)
	for i := range files {
		name := string(rune('a'+i)) + ".md"
		files[i] = FileToConvert{
			InputPath:  name,
			OutputPath: filepath.Join(dir, "nested", strings.TrimSuffix(name, ".md")+".html"),
		}
	}
	return files
}

// ---------------------------------------------------------------------------
// TestConvertBatch
// ---------------------------------------------------------------------------

func TestConvertBatch_KeepsOrder(t *testing.T) {
	t.Parallel()

	files := makeFiles(t, 6)
	conv := &mockFileConverter{fail: map[string]error{"c.md": errors.New("bad input")}}
	pool := &mockPool{conv: conv, size: 3}

	results := convertBatch(context.Background(), pool, files, false, time.Now)

	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.InputPath != files[i].InputPath {
			t.Errorf("results[%d].InputPath = %q, want %q", i, r.InputPath, files[i].InputPath)
		}
		if (r.Err != nil) != (r.InputPath == "c.md") {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
	}
	if len(conv.calls) != len(files) {
		t.Errorf("converter called %d times, want %d", len(conv.calls), len(files))
	}
	if pool.released != 3 {
		t.Errorf("released %d converters, want 3", pool.released)
	}
	if _, err := os.Stat(files[0].OutputPath); err != nil {
		t.Errorf("output directory should be created: %v", err)
	}
}

func TestConvertBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := convertBatch(context.Background(), &mockPool{size: 2}, nil, false, time.Now); got != nil {
		t.Errorf("convertBatch(nil) = %v, want nil", got)
	}
}

func TestConvertBatch_AcquireError(t *testing.T) {
	t.Parallel()

	files := makeFiles(t, 3)
	pool := &mockPool{size: 2, acquireErr: md2html.ErrUnknownExtension}

	for _, r := range convertBatch(context.Background(), pool, files, false, time.Now) {
		if !errors.Is(r.Err, md2html.ErrUnknownExtension) {
			t.Errorf("%s: Err = %v, want ErrUnknownExtension", r.InputPath, r.Err)
		}
	}
}

func TestConvertBatch_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := &mockFileConverter{}
	results := convertBatch(ctx, &mockPool{conv: conv, size: 1}, makeFiles(t, 3), false, time.Now)

	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) || !strings.Contains(r.Err.Error(), "not started") {
			t.Errorf("%s: Err = %v, want not started canceled", r.InputPath, r.Err)
		}
	}
	if len(conv.calls) != 0 {
		t.Errorf("converter called %d times after cancel", len(conv.calls))
	}
}

func TestConvertFile_PDFPath(t *testing.T) {
	t.Parallel()

	f := makeFiles(t, 1)[0]
	r := convertFile(context.Background(), &mockFileConverter{}, f, true, time.Now)
	if r.Err != nil {
		t.Fatalf("Err = %v", r.Err)
	}
	if want := strings.TrimSuffix(f.OutputPath, ".html") + ".pdf"; r.PDFPath != want {
		t.Errorf("PDFPath = %q, want %q", r.PDFPath, want)
	}
}

func TestConvertFile_OutputDirError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	writeFile(t, blocker, "x")

	f := FileToConvert{InputPath: "a.md", OutputPath: filepath.Join(blocker, "sub", "a.html")}
	r := convertFile(context.Background(), &mockFileConverter{}, f, false, time.Now)
	if !errors.Is(r.Err, md2html.ErrWriteHTML) {
		t.Errorf("Err = %v, want ErrWriteHTML", r.Err)
	}
}

func TestConvertFile_DurationUsesClock(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var ticks int
	clock := func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * 250 * time.Millisecond)
	}

	r := convertFile(context.Background(), &mockFileConverter{}, makeFiles(t, 1)[0], false, clock)
	if r.Err != nil {
		t.Fatalf("Err = %v", r.Err)
	}
	if r.Duration != 250*time.Millisecond {
		t.Errorf("Duration = %v, want 250ms", r.Duration)
	}
}

// ---------------------------------------------------------------------------
// TestPrintResults
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.md", OutputPath: "a.html", PDFPath: "a.pdf", Duration: 1500 * time.Microsecond},
		{InputPath: "b.md", OutputPath: "b.html", Err: &md2html.ConversionError{Stage: md2html.StageRead, Path: "b.md", Err: os.ErrPermission}},
		{InputPath: "c.md", OutputPath: "c.html", Err: errors.New("pool closed")},
	}

	tests := []struct {
		name       string
		quiet      bool
		verbose    bool
		wantStdout []string
		noStdout   []string
	}{
		{name: "normal", wantStdout: []string{"Created a.html\n", "Created a.pdf\n", "1 succeeded, 2 failed"}},
		{name: "verbose", verbose: true, wantStdout: []string{"a.md -> a.html (2ms)"}},
		{name: "quiet", quiet: true, noStdout: []string{"Created", "succeeded"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			if failed := printResults(results, tt.quiet, tt.verbose, env); failed != 2 {
				t.Errorf("failed = %d, want 2", failed)
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout = %q, want %q", stdout.String(), want)
				}
			}
			for _, unwanted := range tt.noStdout {
				if strings.Contains(stdout.String(), unwanted) {
					t.Errorf("stdout = %q, should not contain %q", stdout.String(), unwanted)
				}
			}
			errOut := stderr.String()
			if !strings.Contains(errOut, "error: reading markdown failed: b.md") {
				t.Errorf("stderr = %q, want the staged error", errOut)
			}
			if !strings.Contains(errOut, "error: c.md: pool closed") {
				t.Errorf("stderr = %q, want unstaged errors prefixed with the input", errOut)
			}
		})
	}
}

func TestBatchError(t *testing.T) {
	t.Parallel()

	first := &md2html.ConversionError{Stage: md2html.StageWrite, Path: "x.html", Err: os.ErrPermission}
	err := error(&batchError{failed: 2, total: 5, first: first})

	if err.Error() != "2 of 5 conversion(s) failed" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, md2html.ErrWriteHTML) {
		t.Error("batchError should unwrap to the first failure")
	}

	results := []ConversionResult{{}, {Err: first}, {Err: errors.New("later")}}
	if firstError(results) != first {
		t.Error("firstError should follow input order")
	}
}
