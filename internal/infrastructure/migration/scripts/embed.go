// Package scripts embeds the versioned SQL migrations, one directory per
// dialect.
package scripts

import "embed"

//go:embed mysql/*.sql postgres/*.sql
var FS embed.FS
