// Package ui provides the embedded web frontend.
//
// The server falls back to these assets when no static directory is
// configured, so a bare binary still offers the resolve form.
package ui

import (
	_ "embed"
)

// IndexHTML is the single page frontend. It posts to /api/get-video and
// links each format through /api/download.
//
//go:embed index.html
var IndexHTML []byte
