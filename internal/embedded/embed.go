package embedded

import (
	"embed"
)

// Content holds the embedded default scenario, used when no model file is
// given on the command line or the given path does not exist.
//
//go:embed config/*.yaml
var Content embed.FS
