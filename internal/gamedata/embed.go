// Package gamedata provides the embedded ability roster and encounter timelines
// and the registries the planner resolves ids against.
package gamedata

import (
	"embed"
	"io/fs"
	"os"
)

// dataFS embeds all JSON files from the data directory at build time.
//
//go:embed data/*.json
var dataFS embed.FS

// Source returns the filesystem reference data is read from.
// A non-empty dataDir overrides the embedded copy so rosters can be patched without a rebuild.
func Source(dataDir string) fs.FS {
	if dataDir != "" {
		return os.DirFS(dataDir)
	}

	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		// only fails on a malformed path literal
		panic(err)
	}
	return sub
}
