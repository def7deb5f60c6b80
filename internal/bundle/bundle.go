// Package bundle holds the resources compiled into the assetd binary.
package bundle

import (
	"embed"
	"io/fs"
)

//go:embed all:assets
var files embed.FS

// FS returns the bundled resources rooted at the assets directory.
func FS() fs.FS {
	sub, err := fs.Sub(files, "assets")
	if err != nil {
		// "assets" is a constant, valid path
		panic(err)
	}
	return sub
}
