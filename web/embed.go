// Package web holds the single-page frontend served at "/".
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

func Static() (fs.FS, error) {
	return fs.Sub(static, "static")
}
