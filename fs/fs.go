// Package appfs embeds the assets the binaries need at runtime.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
