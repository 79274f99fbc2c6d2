// Package web embeds the static front page served outside /api.
package web

import (
	"embed"
	"io/fs"
)

//go:embed dist
var dist embed.FS

// Dist returns the embedded page rooted at dist/.
func Dist() (fs.FS, error) {
	return fs.Sub(dist, "dist")
}
