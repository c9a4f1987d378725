package httpserver

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/ej8899/homelab-web-server/internal/sysinfo"
)

func (s *Server) requestMeta(r *http.Request) sysinfo.RequestMeta {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	httpsInd := "off"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		httpsInd = "on"
	}

	return sysinfo.RequestMeta{
		ForwardedFor:   r.Header.Get("X-Forwarded-For"),
		RemoteAddr:     host,
		ServerName:     r.Host,
		ScriptPath:     r.URL.Path,
		HTTPSIndicator: httpsInd,
	}
}

func (s *Server) handleReportPage(w http.ResponseWriter, r *http.Request) {
	report := s.sys.Build(s.requestMeta(r))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Robots-Tag", "noindex, nofollow")

	if err := s.tpl.ExecuteTemplate(w, "report.html", newReportView(report)); err != nil {
		http.Error(w, "template render error: "+err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleSystem(w http.ResponseWriter, r *http.Request) {
	report := s.sys.Build(s.requestMeta(r))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Robots-Tag", "noindex, nofollow")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
}
