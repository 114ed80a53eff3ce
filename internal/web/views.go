// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templates embed.FS

// NewEngine builds the view engine over the embedded templates. mapTilerKey
// is exposed to pages that draw maps.
func NewEngine(mapTilerKey string) *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("mapTilerKey", func() string { return mapTilerKey })
	engine.AddFunc("add", func(a, b int) int { return a + b })
	return engine
}
