// Package ui serves the server-rendered pages: the condominium map, the
// master index, the new-launch listing and the detail pages.
package ui

import (
	"cmp"
	"html/template"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/johnwards/colombomap/internal/catalog"
	"github.com/johnwards/colombomap/internal/domain"
	"github.com/johnwards/colombomap/internal/filter"
	"github.com/johnwards/colombomap/internal/mapview"
)

// Page paths.
const (
	MapPath         = "/colombo-map"
	MasterIndexPath = "/master-index"
	CondoPathPrefix = "/condominiums/"
	LaunchesPath    = "/new-property-launch"
)

// Options carries the settings the browser map needs.
type Options struct {
	MapboxToken string
	MapboxStyle string
}

// Handler renders the HTML pages.
type Handler struct {
	catalog *catalog.Catalog
	opts    Options
	pages   map[string]*template.Template
}

// MapBoot is handed to the browser map script as JSON.
type MapBoot struct {
	Token         string            `json:"token"`
	Style         string            `json:"style"`
	Dataset       domain.Dataset    `json:"dataset"`
	GeoJSONURL    string            `json:"geojsonUrl"`
	ExpansionURL  string            `json:"expansionUrl"`
	DetailPrefix  string            `json:"detailPrefix"`
	Config        mapview.MapConfig `json:"config"`
	ClusterLayer  string            `json:"clusterLayer"`
	PointLayer    string            `json:"pointLayer"`
	Camera        mapview.Camera    `json:"camera"`
	InitialMode   mapview.Mode      `json:"initialMode"`
	SelectedParam string            `json:"selectedParam"`
}

type basePage struct {
	Title  string
	Active string
	Query  url.Values
}

type mapPage struct {
	basePage
	Criteria filter.Criteria
	Facets   filter.Facets
	Statuses []domain.Status
	Total    int
	Boot     MapBoot
	Selected *domain.Property
	Drawer   bool
}

type indexPage struct {
	basePage
	Criteria filter.Criteria
	Facets   filter.Facets
	Statuses []domain.Status
	Sort     string
	Desc     bool
	Records  []*domain.Property
}

type detailPage struct {
	basePage
	Property *domain.Property
}

type launchesPage struct {
	basePage
	Criteria filter.Criteria
	Facets   filter.Facets
	View     mapview.ViewMode
	Records  []*domain.Property
	Boot     MapBoot
	Selected *domain.Property
	Drawer   bool
}

type errorPage struct {
	basePage
	Heading string
	Message string
	Back    string
}

// NewHandler parses the page templates.
func NewHandler(cat *catalog.Catalog, opts Options) (*Handler, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{catalog: cat, opts: opts, pages: pages}, nil
}

// Map renders the condominium map page.
func (h *Handler) Map(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, records, ok := h.filtered(w, r, domain.DatasetCondos)
	if !ok {
		return
	}
	boot, plan := h.boot(domain.DatasetCondos, q, c, records)
	h.render(w, r, http.StatusOK, "map.html", mapPage{
		basePage: basePage{Title: "Colombo Condo Map", Active: MapPath, Query: q},
		Criteria: c,
		Facets:   filter.Options(h.catalog.Records(domain.DatasetCondos)),
		Statuses: domain.CondoStatuses(),
		Total:    len(records),
		Boot:     boot,
		Selected: plan.Selected,
		Drawer:   plan.DrawerOpen,
	})
}

// MasterIndex renders the sortable condominium table.
func (h *Handler) MasterIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, records, ok := h.filtered(w, r, domain.DatasetCondos)
	if !ok {
		return
	}
	key, desc := parseSort(q.Get("sort"))
	records = sortRecords(records, key, desc)
	h.render(w, r, http.StatusOK, "master_index.html", indexPage{
		basePage: basePage{Title: "Master Index", Active: MasterIndexPath, Query: q},
		Criteria: c,
		Facets:   filter.Options(h.catalog.Records(domain.DatasetCondos)),
		Statuses: domain.CondoStatuses(),
		Sort:     key,
		Desc:     desc,
		Records:  records,
	})
}

// Condo renders a condominium detail page.
func (h *Handler) Condo(w http.ResponseWriter, r *http.Request) {
	p, ok := h.catalog.BySlug(domain.DatasetCondos, chi.URLParam(r, "slug"))
	if !ok {
		h.notFound(w, r, MapPath, "Back to map")
		return
	}
	h.render(w, r, http.StatusOK, "condo.html", detailPage{
		basePage: basePage{Title: p.Name, Active: MapPath},
		Property: p,
	})
}

// Launches renders the new-launch grid or map.
func (h *Handler) Launches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, records, ok := h.filtered(w, r, domain.DatasetLaunches)
	if !ok {
		return
	}
	boot, plan := h.boot(domain.DatasetLaunches, q, c, records)
	h.render(w, r, http.StatusOK, "launches.html", launchesPage{
		basePage: basePage{Title: "New Property Launch", Active: LaunchesPath, Query: q},
		Criteria: c,
		Facets:   filter.Options(h.catalog.Records(domain.DatasetLaunches)),
		View:     mapview.ParseViewMode(q.Get("view"), mapview.ViewGrid),
		Records:  records,
		Boot:     boot,
		Selected: plan.Selected,
		Drawer:   plan.DrawerOpen,
	})
}

// Launch renders a new-launch detail page.
func (h *Handler) Launch(w http.ResponseWriter, r *http.Request) {
	p, ok := h.catalog.BySlug(domain.DatasetLaunches, chi.URLParam(r, "slug"))
	if !ok {
		h.notFound(w, r, LaunchesPath, "Back to launches")
		return
	}
	h.render(w, r, http.StatusOK, "launch.html", detailPage{
		basePage: basePage{Title: p.Name, Active: LaunchesPath},
		Property: p,
	})
}

// NotFound renders the HTML not-found page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r, MapPath, "Back to map")
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, back, label string) {
	h.render(w, r, http.StatusNotFound, "error.html", errorPage{
		basePage: basePage{Title: "Not found"},
		Heading:  "Not found",
		Message:  label,
		Back:     back,
	})
}

func (h *Handler) filtered(w http.ResponseWriter, r *http.Request, d domain.Dataset) (filter.Criteria, []*domain.Property, bool) {
	c, err := filter.ParseQuery(r.URL.Query(), d)
	if err != nil {
		back := MapPath
		if d == domain.DatasetLaunches {
			back = LaunchesPath
		}
		h.render(w, r, http.StatusBadRequest, "error.html", errorPage{
			basePage: basePage{Title: "Invalid filter"},
			Heading:  "Invalid filter",
			Message:  err.Error(),
			Back:     back,
		})
		return filter.Criteria{}, nil, false
	}
	return c, filter.Apply(h.catalog.Records(d), c), true
}

// boot runs a headless session over records so the page can render the
// focused or selected record's drawer server-side, and returns the settings
// the browser map starts from.
func (h *Handler) boot(d domain.Dataset, q url.Values, c filter.Criteria, records []*domain.Property) (MapBoot, mapview.Plan) {
	cfg := mapview.ConfigFor(d)
	plan := mapview.Render(cfg, records, mapview.Viewport{
		Focus:    q.Get("focus"),
		Selected: q.Get("selected"),
	})

	base := "/api/v1/" + string(d)
	geojsonURL := base + "/geojson"
	if enc := filter.Encode(c).Encode(); enc != "" {
		geojsonURL += "?" + enc
	}
	detail := CondoPathPrefix
	if d == domain.DatasetLaunches {
		detail = LaunchesPath + "/"
	}
	return MapBoot{
		Token:         h.opts.MapboxToken,
		Style:         h.opts.MapboxStyle,
		Dataset:       d,
		GeoJSONURL:    geojsonURL,
		ExpansionURL:  base + "/clusters/{id}/expansion-zoom",
		DetailPrefix:  detail,
		Config:        cfg,
		ClusterLayer:  mapview.LayerClusters,
		PointLayer:    mapview.LayerPoints,
		Camera:        mapview.Camera{Center: plan.Center, Zoom: plan.Zoom},
		InitialMode:   plan.Mode,
		SelectedParam: "selected",
	}, plan
}

// Sort keys accepted by the master index.
const (
	SortName   = "name"
	SortFloors = "floors"
	SortUnits  = "units"
)

func parseSort(s string) (key string, desc bool) {
	key, desc = strings.CutPrefix(s, "-")
	switch key {
	case SortName, SortFloors, SortUnits:
		return key, desc
	}
	return "", false
}

// sortRecords returns a sorted copy. Missing floor and unit counts sort as
// zero; ties keep fixture order.
func sortRecords(records []*domain.Property, key string, desc bool) []*domain.Property {
	if key == "" {
		return records
	}
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b *domain.Property) int {
		var n int
		switch key {
		case SortName:
			n = strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		case SortFloors:
			n = cmp.Compare(a.Floors.OrZero(), b.Floors.OrZero())
		case SortUnits:
			n = cmp.Compare(a.Units.OrZero(), b.Units.OrZero())
		}
		if desc {
			return -n
		}
		return n
	})
	return out
}
