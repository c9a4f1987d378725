package sysinfo

import (
	"net"
	"strings"
)

// ViewerClass labels a requester as LAN-private or public. It decides which
// parts of the report are redacted.
type ViewerClass string

const (
	ViewerPrivate ViewerClass = "private"
	ViewerPublic  ViewerClass = "public"
)

// Classify picks the candidate address (first X-Forwarded-For token when the
// header is present, otherwise the connection address) and maps it to a
// viewer class. Unparseable input classifies as public: unknown gets the
// restrictive class.
func Classify(forwardedFor, remoteAddr string) ViewerClass {
	cand := strings.TrimSpace(remoteAddr)
	if ff := strings.TrimSpace(forwardedFor); ff != "" {
		cand = strings.TrimSpace(strings.Split(ff, ",")[0])
	}

	ip := net.ParseIP(cand)
	if ip == nil {
		return ViewerPublic
	}

	if ip4 := ip.To4(); ip4 != nil {
		switch {
		case ip4[0] == 10:
			return ViewerPrivate
		case ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31:
			return ViewerPrivate
		case ip4[0] == 192 && ip4[1] == 168:
			return ViewerPrivate
		case ip4.Equal(net.IPv4(127, 0, 0, 1).To4()):
			return ViewerPrivate
		}
		return ViewerPublic
	}

	if ip.Equal(net.IPv6loopback) {
		return ViewerPrivate
	}
	return ViewerPublic
}
