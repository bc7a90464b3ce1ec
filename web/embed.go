// Package web embeds the page templates and static assets.
package web

import "embed"

// TemplatesFS holds the html/template page sources.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds css, js and image assets served under /static/.
//
//go:embed all:static
var StaticFS embed.FS
