// Package assets provides the stylesheet and page template used for HTML export.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// The embedded set holds one style, "default", and one template, "document".
// A custom directory may override either file; whatever it lacks falls back
// to the embedded copy.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── default.css
//	└── templates/
//	    └── document.html
//
// The document template is an html/template receiving Title, CSS, TOC, Body
// and Author. CSS, TOC and Body are pre-rendered and inserted unescaped.
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
