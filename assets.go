package md2html

import (
	"errors"

	"github.com/alnah/go-md2html/internal/assets"
)

// Asset name constants for built-in styles and templates.
const (
	// DefaultStyle is the name of the built-in CSS style.
	DefaultStyle = assets.DefaultStyleName

	// DefaultTemplateSet is the name of the built-in template set.
	DefaultTemplateSet = assets.DefaultTemplateSetName
)

// AssetLoader defines the contract for loading CSS styles and page templates.
// Implementations may load from filesystem, embedded assets, a database, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the page template by name.
	// Returns ErrTemplateSetNotFound if the template set doesn't exist.
	// Returns ErrIncompleteTemplateSet if page.html is missing or empty.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the page template wrapping each rendered document.
type TemplateSet struct {
	Name string // Identifier (name or path)
	Page string // html/template source referencing {{.Body}}
}

// NewTemplateSet creates a TemplateSet from page template content.
func NewTemplateSet(name, page string) *TemplateSet {
	return &TemplateSet{Name: name, Page: page}
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for CSS styles
//   - templates/{name}/page.html for template sets
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// BuiltinStyles lists the embedded style names.
func BuiltinStyles() []string {
	return assets.NewEmbeddedLoader().StyleNames()
}

// BuiltinTemplateSets lists the embedded template set names.
func BuiltinTemplateSets() []string {
	return assets.NewEmbeddedLoader().TemplateSetNames()
}

// assetLoaderAdapter wraps internal AssetResolver to return public types.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, convertTemplateError(err)
	}
	return &TemplateSet{Name: ts.Name, Page: ts.Page}, nil
}

// embeddedAdapter exposes the embedded loader through public types.
type embeddedAdapter struct {
	loader *assets.EmbeddedLoader
}

func (e *embeddedAdapter) LoadStyle(name string) (string, error) {
	content, err := e.loader.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (e *embeddedAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := e.loader.LoadTemplateSet(name)
	if err != nil {
		return nil, convertTemplateError(err)
	}
	return &TemplateSet{Name: ts.Name, Page: ts.Page}, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return wrapError(ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// convertTemplateError is convertAssetError for template set lookups, where an
// invalid name means the template set is not found.
func convertTemplateError(err error) error {
	if errors.Is(err, assets.ErrInvalidAssetName) {
		return wrapError(ErrTemplateSetNotFound, err)
	}
	return convertAssetError(err)
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}

// Compile-time interface checks.
var (
	_ AssetLoader = (*assetLoaderAdapter)(nil)
	_ AssetLoader = (*embeddedAdapter)(nil)
)
