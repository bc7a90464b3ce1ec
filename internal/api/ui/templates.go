package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/johnwards/colombomap/internal/domain"
	"github.com/johnwards/colombomap/internal/format"
	"github.com/johnwards/colombomap/web"
)

var pageFiles = []string{
	"map.html",
	"master_index.html",
	"condo.html",
	"launches.html",
	"launch.html",
	"error.html",
}

var funcs = template.FuncMap{
	"lkr":         format.LKR,
	"priceRange":  format.PriceRange,
	"placeholder": format.Placeholder,
	"int":         format.Int,
	"ints":        format.Ints,
	"bedrooms":    format.Bedrooms,
	"count":       format.Count,
	"statusClass": statusClass,
	"withParam":   withParam,
	"drop":        drop,
	"query":       query,
	"sortLink":    sortLink,
	"bedroomChoices": func() []int {
		return []int{0, 1, 2, 3, 4}
	},
	"bedroomLabel": func(n int) string {
		return format.Bedrooms(domain.Some([]int{n}))
	},
	"pathEscape":  url.PathEscape,
	"first":       first[string],
}

func parseTemplates() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		t, err := template.New(name).Funcs(funcs).ParseFS(web.TemplatesFS,
			"templates/layout.html", "templates/partials.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	t, ok := h.pages[page]
	if !ok {
		slog.Error("unknown page template", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("render page", "page", page, "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func statusClass(s domain.Status) string {
	switch s {
	case domain.StatusCompleted:
		return "tag-green"
	case domain.StatusUnderConstruction:
		return "tag-orange"
	case domain.StatusStalled:
		return "tag-red"
	default:
		return "tag-blue"
	}
}

// withParam returns "?query" with key set to value, or removed when value is
// empty.
func withParam(q url.Values, key, value string) string {
	out := drop(q)
	if value == "" {
		out.Del(key)
	} else {
		out.Set(key, value)
	}
	if len(out) == 0 {
		return "?"
	}
	return "?" + out.Encode()
}

// query renders q as a query string with its leading "?", or "" when empty.
func query(q url.Values) string {
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// SortLink is a sortable column header.
type SortLink struct {
	Href   string
	Label  string
	Active bool
	Desc   bool
}

// sortLink links a column header to its sort. Clicking the active ascending
// column flips it to descending.
func sortLink(q url.Values, key, label, current string, desc bool) SortLink {
	active := key == current
	next := key
	if active && !desc {
		next = "-" + key
	}
	return SortLink{Href: withParam(q, "sort", next), Label: label, Active: active, Desc: active && desc}
}

// drop returns a copy of q without keys.
func drop(q url.Values, keys ...string) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = v
	}
	for _, k := range keys {
		out.Del(k)
	}
	return out
}

func first[T any](xs []T, n int) []T {
	if len(xs) > n {
		return xs[:n]
	}
	return xs
}
