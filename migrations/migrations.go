// Package migrations embeds the SQL schema scripts so the binary and tests
// share a single schema definition regardless of working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
