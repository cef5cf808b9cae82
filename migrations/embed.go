// Package migrations embeds the versioned SQL schema applied by golang-migrate.
package migrations

import "embed"

// FS holds the *.up.sql / *.down.sql pairs
//
//go:embed *.sql
var FS embed.FS
