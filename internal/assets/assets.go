// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

//go:build !dev

// Package assets provides embedded static assets with content-hashed filenames.
package assets

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

//go:embed static
var staticFS embed.FS

var (
	cssPath string
	jsPath  string
	// hashed maps a fingerprinted name to the embedded file it serves.
	hashed = map[string]string{}
)

func init() {
	cssPath = fingerprint("css/styles.css")
	jsPath = fingerprint("js/app.js")
	slog.Debug("loaded asset paths", "css", cssPath, "js", jsPath)
}

// fingerprint returns the public URL of an embedded file with the first
// eight hex digits of its SHA-256 inserted before the extension.
func fingerprint(name string) string {
	data, err := staticFS.ReadFile("static/" + name)
	if err != nil {
		slog.Error("missing embedded asset", "name", name, "error", err)
		return "/static/" + name
	}

	sum := sha256.Sum256(data)
	ext := path.Ext(name)
	fp := strings.TrimSuffix(name, ext) + "." + hex.EncodeToString(sum[:])[:8] + ext
	hashed[fp] = name
	return "/static/" + fp
}

// CSSPath returns the path to the main CSS file.
func CSSPath() string {
	return cssPath
}

// JSPath returns the path to the JS file.
func JSPath() string {
	return jsPath
}

// FileServer returns an http.Handler that serves embedded static files
// relative to the static root, under both plain and fingerprinted names.
func FileServer() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("failed to create sub filesystem: " + err.Error())
	}
	files := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if name, ok := hashed[strings.TrimPrefix(r.URL.Path, "/")]; ok {
			r = r.Clone(r.Context())
			r.URL.Path = "/" + name
		}
		files.ServeHTTP(w, r)
	})
}
