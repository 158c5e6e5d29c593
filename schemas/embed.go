// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the SQL migration files, one directory per database driver
// (migrations/mysql, migrations/sqlite3). Files are applied in name order.
//
//go:embed migrations
var Migrations embed.FS
