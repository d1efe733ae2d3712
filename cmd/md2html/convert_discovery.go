package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/config"
)

// Sentinel errors for file discovery.
var (
	ErrNoMarkdownFiles = errors.New("no markdown files found")
	ErrOutputIsFile    = errors.New("directory input needs an output directory")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all markdown files to convert.
//
// A file input, whatever its extension, is written to outputPath, or into it
// when outputPath is a directory. An input that cannot be stat'ed is kept as
// a single file so its read failure is reported by the batch. A directory
// input is walked recursively for .md and .markdown files and its tree
// mirrored under outputPath with .html files; with the default output path
// each page is written next to its source.
func discoverFiles(inputPath, outputPath string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil || !info.IsDir() {
		return []FileToConvert{{InputPath: inputPath, OutputPath: singleOutputPath(inputPath, outputPath)}}, nil
	}

	outputDir := outputPath
	if strings.EqualFold(filepath.Ext(outputPath), ".html") {
		if outputPath != config.DefaultOutputPath {
			return nil, fmt.Errorf("%w: %s", ErrOutputIsFile, outputPath)
		}
		outputDir = ""
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !looksLikeMarkdown(path) {
			return nil
		}
		files = append(files, FileToConvert{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, inputPath),
		})
		return nil
	})

	return files, err
}

// singleOutputPath places a single page at outputPath, or inside it when
// outputPath is an existing directory or ends with a separator.
func singleOutputPath(inputPath, outputPath string) string {
	if outputPath == "" {
		return resolveOutputPath(inputPath, "", "")
	}
	if strings.HasSuffix(outputPath, "/") || strings.HasSuffix(outputPath, string(filepath.Separator)) {
		return resolveOutputPath(inputPath, outputPath, "")
	}
	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		return resolveOutputPath(inputPath, outputPath, "")
	}
	return outputPath
}

// resolveOutputPath determines the HTML output path for a markdown file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".html")
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".html")
		}
	}

	return filepath.Join(outputDir, base+".html")
}
