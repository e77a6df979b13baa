package server

import (
	"bytes"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yosssi/gohtml"

	"github.com/backyonatan-alt/launchboard/internal/screen"
)

var pageTemplate = template.Must(template.New("screen").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Launchboard</title></head>
<body>
<main>
<h1 class="time">{{.TimeLabel}}</h1>
{{if .DropdownOpen}}<ul class="countries">
{{range .Countries}}<li><img src="/assets/{{.Image}}" alt="{{.Name}} flag"><span>{{.Flag}} {{.Name}}</span></li>
{{end}}</ul>{{end}}
<button>Select Location</button>
<hr>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<section class="launches">
{{range .Cards}}<article class="card">
<p>{{.MissionName}}</p>
<p>{{.LaunchYear}}</p>
<p>{{.Details}}</p>
<p class="outcome">{{.Outcome}}</p>
</article>
{{end}}</section>
</main>
</body>
</html>`))

// renderPage writes the HTML form of a screen view.
func renderPage(v screen.View) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, v); err != nil {
		return nil, err
	}
	return gohtml.FormatBytes(buf.Bytes()), nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	scr, ok := s.lookupScreen(w, r)
	if !ok {
		return
	}
	page, err := renderPage(scr.View())
	if err != nil {
		slog.Error("failed to render screen", "screen", scr.ID(), "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	if _, err := w.Write(page); err != nil {
		slog.Error("failed to write screen page", "screen", scr.ID(), "error", err)
	}
}

// assetHandler serves the bundled flag images referenced by the page.
func assetHandler(images fs.FS) http.Handler {
	files := http.StripPrefix("/assets/", http.FileServer(http.FS(images)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := fs.Stat(images, strings.TrimPrefix(r.URL.Path, "/assets/")); err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		files.ServeHTTP(w, r)
	})
}
