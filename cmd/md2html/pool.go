package main

import (
	"context"
	"fmt"

	md2html "github.com/alnah/go-md2html"
)

// FileConverter converts one Markdown file to one HTML page.
type FileConverter interface {
	ConvertFile(ctx context.Context, inputPath, outputPath string) error
}

// Compile-time interface implementation check.
var _ FileConverter = (*md2html.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (FileConverter, error)
	Release(FileConverter)
	Size() int
}

// poolAdapter exposes *md2html.ConverterPool through the Pool interface.
type poolAdapter struct {
	pool *md2html.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire() (FileConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics on a converter the pool did not hand out.
func (a *poolAdapter) Release(c FileConverter) {
	conv, ok := c.(*md2html.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}
