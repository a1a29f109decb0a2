package main

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"net/url"

	"github.com/pkg/errors"
)

//go:embed assets/dashboard.html.tmpl
var templateFS embed.FS

// Renderer draws a ViewModel as the full dashboard page.
type Renderer struct {
	tmpl   *template.Template
	mapCfg MapConfig
}

func NewRenderer(mapCfg MapConfig) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"dashboardURL": dashboardURL,
	}).ParseFS(templateFS, "assets/dashboard.html.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "could not parse dashboard template")
	}
	return &Renderer{tmpl: tmpl, mapCfg: mapCfg}, nil
}

type pageData struct {
	Map  MapConfig
	View ViewModel
}

// Render executes into a buffer first so a template failure never leaves a
// half-written page on w.
func (r *Renderer) Render(w io.Writer, vm ViewModel) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "dashboard", pageData{Map: r.mapCfg, View: vm}); err != nil {
		return errors.Wrap(err, "could not render dashboard")
	}
	_, err := buf.WriteTo(w)
	return err
}

// dashboardURL is the no-script fallback link for a tab or a selection.
func dashboardURL(mode string, selected string) string {
	q := url.Values{}
	if mode != "" && mode != string(ModeList) {
		q.Set("tab", mode)
	}
	if selected != "" {
		q.Set("selected", selected)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
