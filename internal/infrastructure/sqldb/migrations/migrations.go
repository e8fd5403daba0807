// Package migrations embeds the goose migrations for every supported dialect.
// Each dialect lives in its own directory named after the driver.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
