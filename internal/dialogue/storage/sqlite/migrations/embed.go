package migrations

import "embed"

// FS contains embedded SQLite migrations for dialogue storage.
//
//go:embed *.sql
var FS embed.FS
