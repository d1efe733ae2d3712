package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// refAttrs lists the element attributes that may hold local file references
// a browser needs when the page is loaded from outside its output directory.
var refAttrs = map[atom.Atom]string{
	atom.Img:  "src",
	atom.A:    "href",
	atom.Link: "href",
}

// ResolveLocalRefs rewrites relative img, a and link references in page to
// file:// URLs rooted at baseDir. References escaping baseDir, anchors,
// absolute paths and URLs with a scheme are kept as written.
// An empty baseDir returns page unchanged.
func ResolveLocalRefs(page, baseDir string) (string, error) {
	if baseDir == "" {
		return page, nil
	}

	root, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	if !isFullDocument(page) {
		return resolveFragment(page, root)
	}

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", err
	}
	walkRefs(doc, root)

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func resolveFragment(fragment, root string) (string, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, n := range nodes {
		walkRefs(n, root)
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func isFullDocument(s string) bool {
	head := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

func walkRefs(n *html.Node, root string) {
	if n.Type == html.ElementNode {
		if key, ok := refAttrs[n.DataAtom]; ok {
			for i := range n.Attr {
				if n.Attr[i].Key != key {
					continue
				}
				if resolved, ok := resolveRef(n.Attr[i].Val, root); ok {
					n.Attr[i].Val = resolved
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkRefs(c, root)
	}
}

// resolveRef returns the file:// URL for ref, or false when ref is not a
// relative local path under root.
func resolveRef(ref, root string) (string, bool) {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return "", false
	}
	if u, err := url.Parse(ref); err != nil || u.Scheme != "" {
		return "", false
	}
	if filepath.IsAbs(ref) || strings.HasPrefix(ref, "/") {
		return "", false
	}

	target := filepath.Join(root, filepath.FromSlash(ref))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(target)}
	if !strings.HasPrefix(u.Path, "/") {
		// Windows drive paths: file:///C:/...
		u.Path = "/" + u.Path
	}
	return u.String(), true
}
