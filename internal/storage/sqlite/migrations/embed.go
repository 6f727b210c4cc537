package migrations

import "embed"

// FS contains the embedded preset store migrations.
//
//go:embed *.sql
var FS embed.FS
