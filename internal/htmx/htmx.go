// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package htmx reads htmx request headers and writes its response headers.
package htmx

import (
	"net/http"
)

// Request headers sent by htmx.
const (
	HeaderRequest    = "HX-Request"
	HeaderBoosted    = "HX-Boosted"
	HeaderCurrentURL = "HX-Current-URL"
	HeaderTarget     = "HX-Target"
)

// Response headers understood by htmx.
const (
	HeaderRedirect = "HX-Redirect"
	HeaderRefresh  = "HX-Refresh"
)

// Request contains information about an htmx request.
type Request struct {
	IsHtmx     bool
	IsBoosted  bool
	CurrentURL string
	Target     string
}

// ParseRequest extracts htmx information from request headers.
func ParseRequest(r *http.Request) *Request {
	return &Request{
		IsHtmx:     r.Header.Get(HeaderRequest) == "true",
		IsBoosted:  r.Header.Get(HeaderBoosted) == "true",
		CurrentURL: r.Header.Get(HeaderCurrentURL),
		Target:     r.Header.Get(HeaderTarget),
	}
}

// PartialSwap reports whether htmx will swap the response into a fragment
// of the page. Such requests must be redirected with HX-Redirect instead of
// a 3xx status.
func (r *Request) PartialSwap() bool {
	return r.IsHtmx && !r.IsBoosted
}

// Redirect asks htmx to perform a full page navigation.
func Redirect(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderRedirect, url)
	w.WriteHeader(http.StatusOK)
}
