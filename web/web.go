// Package web holds the HTML templates of the CRUD application.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

// Layout is the default layout every view renders into.
const Layout = "layouts/main"

//go:embed templates
var templates embed.FS

// Engine returns the template engine over the embedded templates.
//
// With reload set (development), templates are instead read from dir on disk
// and re-parsed on every render, so edits show up without a rebuild.
func Engine(reload bool, dir string) *html.Engine {
	if reload {
		engine := html.New(dir, ".html")
		engine.Reload(true)
		return engine
	}

	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
