package templates

import "embed"

// FS holds the page templates. Every page is parsed together with base.html.
//
//go:embed *.html
var FS embed.FS
