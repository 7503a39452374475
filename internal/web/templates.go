package web

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"
)

type Templates struct {
	fs   fs.FS
	base *template.Template
}

func NewTemplates(fsys fs.FS) (*Templates, error) {
	base, err := template.ParseFS(fsys, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, err
	}
	return &Templates{fs: fsys, base: base}, nil
}

func (t *Templates) Render(w http.ResponseWriter, name string, data any) error {
	return t.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus executes the page into a buffer first so a template error
// never leaves a half-written response behind.
func (t *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data any) error {
	tmpl, err := t.base.Clone()
	if err != nil {
		return err
	}
	if _, err := tmpl.ParseFS(t.fs, "templates/"+name); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

func (t *Templates) RenderPartial(w http.ResponseWriter, name string, data any) error {
	tmpl, err := t.base.Clone()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}
