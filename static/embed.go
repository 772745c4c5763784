package static

import "embed"

// FS embeds the site assets (CSS, JS, icons, PWA shell) so the server
// runs standalone.
//
//go:embed css js icons manifest.json sw.js
var FS embed.FS
