package httpserver

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// subnetAllowlist hard-gates the whole service to configured prefixes.
// Separate from viewer classification: classification redacts, this rejects.
type subnetAllowlist struct {
	prefixes []netip.Prefix
}

func newSubnetAllowlist(cidrs []string) (*subnetAllowlist, error) {
	a := &subnetAllowlist{}
	for _, c := range cidrs {
		p, err := netip.ParsePrefix(strings.TrimSpace(c))
		if err != nil {
			return nil, err
		}
		a.prefixes = append(a.prefixes, p.Masked())
	}
	return a, nil
}

func (a *subnetAllowlist) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		addr, err := netip.ParseAddr(host)
		if err != nil {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		addr = addr.Unmap()
		for _, p := range a.prefixes {
			if p.Contains(addr) {
				next.ServeHTTP(w, r)
				return
			}
		}
		http.Error(w, "forbidden", http.StatusForbidden)
	})
}
