// Package migrations embeds the schema migrations for the document and
// asset tables.
package migrations

import "embed"

// FS holds the ordered .sql migration files, embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
