package restbell

import "embed"

// WebFS holds the built web frontend, embedded so the binary is
// self-contained.
//
//go:embed web/dist
var WebFS embed.FS
