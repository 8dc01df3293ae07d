package migrations

import "embed"

// Migrations holds the ordered golang-migrate files applied at startup.
//
//go:embed *.sql
var Migrations embed.FS
