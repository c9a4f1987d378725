package httpserver

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/ej8899/homelab-web-server/internal/config"
	"github.com/ej8899/homelab-web-server/internal/sysinfo"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

type RouterDeps struct {
	Config config.Config
	Sys    *sysinfo.Collector
}

type Server struct {
	cfg config.Config
	sys *sysinfo.Collector
	tpl *template.Template
}

func NewRouter(deps RouterDeps) (http.Handler, error) {
	s := &Server{
		cfg: deps.Config,
		sys: deps.Sys,
	}

	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s.tpl = tpl

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(3 * time.Second))

	// NOTE: middleware.RealIP is intentionally absent. The classifier owns
	// X-Forwarded-For interpretation; rewriting RemoteAddr here would make
	// the private/public decision depend on middleware ordering.

	if len(s.cfg.AllowedSubnets) > 0 {
		allow, err := newSubnetAllowlist(s.cfg.AllowedSubnets)
		if err != nil {
			return nil, err
		}
		r.Use(allow.middleware)
	}

	// HTML dashboard
	r.Get("/", s.handleReportPage)

	// Raw API endpoint (JSON)
	r.Get("/api/system", s.handleSystem)

	return r, nil
}
