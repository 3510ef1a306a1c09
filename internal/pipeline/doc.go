// Package pipeline implements the markdown stages shared by the exporters.
//
//   - Heading extraction and table-of-contents generation (toc.go)
//   - Markdown preprocessing: line endings, ==highlight== (mdtransform.go)
//   - Markdown to sanitized HTML fragment via goldmark and bluemonday
//     (md2html.go, sanitize.go)
//   - Relative link rewriting and file:// URLs (pathrewrite.go)
//
// Heading ids in the HTML and anchors in the table of contents come from the
// same function, Slugify, so every table-of-contents link resolves.
//
// Wrapping the fragment in a page and printing it are handled by the root
// mdexport package.
package pipeline
