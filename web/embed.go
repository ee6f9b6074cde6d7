// Package web holds the static site served next to the API.
package web

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed static
var content embed.FS

// Static returns the embedded site rooted at its document root.
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Assets returns dir when set, so a deployment can override the embedded
// site, and the embedded copy otherwise.
func Assets(dir string) fs.FS {
	if dir == "" {
		return Static()
	}
	return os.DirFS(dir)
}
