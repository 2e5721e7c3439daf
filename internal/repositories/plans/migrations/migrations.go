// Package migrations holds the goose migrations for the postgres plan store
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
