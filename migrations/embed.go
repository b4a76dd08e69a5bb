// Package migrations embeds the numbered schema migrations for each
// supported database backend.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
