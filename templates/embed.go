package templates

import "embed"

// FS embeds the HTML page templates into the binary.
//
//go:embed *.html
var FS embed.FS
