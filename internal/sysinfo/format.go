package sysinfo

import "fmt"

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes renders an optional byte count for display. nil means the
// underlying probe failed and renders as "n/a". Values scale by 1024 up the
// unit ladder until the scaled value drops below 1024 or PB is reached.
func FormatBytes(n *uint64) string {
	if n == nil {
		return "n/a"
	}
	v := float64(*n)
	i := 0
	for v >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", v, byteUnits[i])
}

// formatUptime renders whole seconds as "{d}d {h}h {m}m". Days and hours are
// shown only when a higher nonzero unit is present; minutes always are.
func formatUptime(secs uint64) string {
	d := secs / 86400
	h := secs % 86400 / 3600
	m := secs % 3600 / 60
	if d > 0 {
		return fmt.Sprintf("%dd %dh %dm", d, h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
