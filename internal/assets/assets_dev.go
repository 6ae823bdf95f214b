// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

//go:build dev

// Package assets serves static files from the source tree in development
// so edits show up without a rebuild.
package assets

import (
	"net/http"
)

// CSSPath returns the path to the main CSS file (unhashed in dev mode).
func CSSPath() string {
	return "/static/css/styles.css"
}

// JSPath returns the path to the JS file (unhashed in dev mode).
func JSPath() string {
	return "/static/js/app.js"
}

// FileServer returns an http.Handler that serves static files from the filesystem.
func FileServer() http.Handler {
	return http.FileServer(http.Dir("internal/assets/static"))
}
