package pipeline

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths turns relative img[src] and a[href] values of an HTML
// body fragment into absolute file:// URLs resolved against sourceDir. It is
// used when a document is written outside the directory of its source, so
// local images keep resolving. An empty sourceDir returns the input as is.
//
// URLs, anchors, absolute paths and paths escaping sourceDir are left alone.
func RewriteRelativePaths(fragment, sourceDir string) (string, error) {
	if sourceDir == "" {
		return fragment, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, n := range nodes {
		rewriteNode(n, absSourceDir)
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func rewriteNode(n *html.Node, sourceDir string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", sourceDir)
		case atom.A:
			rewriteAttr(n, "href", sourceDir)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, sourceDir)
	}
}

func rewriteAttr(n *html.Node, key, sourceDir string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}
		absPath := filepath.Join(sourceDir, filepath.FromSlash(attr.Val))
		if !isPathUnderDir(absPath, sourceDir) {
			continue
		}
		n.Attr[i].Val = FileURL(absPath)
	}
}

// http:, file:, data:, mailto: and other URI schemes.
var uriScheme = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

// isRelativePath reports whether path is a local relative reference.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if uriScheme.MatchString(path) {
		return false
	}
	return !filepath.IsAbs(path) && !strings.HasPrefix(path, "/")
}

// isPathUnderDir checks if absPath is inside dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// FileURL converts an absolute path to a file:// URL, escaping as needed.
// Windows paths gain the leading slash browsers expect (file:///C:/x).
func FileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
