package web

import (
	"net/http"
	"strings"
)

func isHTMX(r *http.Request) bool {
	return strings.ToLower(r.Header.Get("HX-Request")) == "true"
}

// renderSwap answers htmx requests with the partial that replaces the target
// element and everything else with the full page.
func (s *Server) renderSwap(w http.ResponseWriter, r *http.Request, page, partial string, data any) {
	var err error
	if isHTMX(r) {
		w.Header().Set("Vary", "HX-Request")
		err = s.templates.RenderPartial(w, partial, data)
	} else {
		err = s.templates.Render(w, page, data)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
