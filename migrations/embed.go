package migrations

import "embed"

// FS embeds the SQL migration files so the server can bootstrap its
// schema without external files.
//
//go:embed *.sql
var FS embed.FS
