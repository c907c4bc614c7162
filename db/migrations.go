// Package db embeds the SQL migrations applied at service startup.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
