package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/johnwards/colombomap/internal/catalog"
	"github.com/johnwards/colombomap/web"
)

// RegisterRoutes registers the HTML pages and static assets on r. It also
// installs the HTML not-found page as r's fallback.
func RegisterRoutes(r chi.Router, cat *catalog.Catalog, opts Options) error {
	h, err := NewHandler(cat, opts)
	if err != nil {
		return err
	}

	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return err
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, MapPath, http.StatusFound)
	})
	r.Get(MapPath, h.Map)
	r.Get(MasterIndexPath, h.MasterIndex)
	r.Get(CondoPathPrefix+"{slug}", h.Condo)
	r.Get(LaunchesPath, h.Launches)
	r.Get(LaunchesPath+"/{slug}", h.Launch)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.NotFound(h.NotFound)
	return nil
}
