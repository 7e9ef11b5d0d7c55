// Package migrations embeds the goose SQL migrations applied at startup by pg.Migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
