package oled

import (
	"bytes"
	"fmt"

	"github.com/ej8899/homelab-web-server/internal/sysinfo"
)

// FormatStatus renders the OLED payload for a report: one short line per
// headline stat. A trailing blank line commits the frame on the display
// side. Absent probes drop their line rather than showing "n/a" on a
// four-line screen.
func FormatStatus(r sysinfo.Report) string {
	var b bytes.Buffer

	if r.Load != nil {
		fmt.Fprintf(&b, "LOAD: %.2f %.2f %.2f\n", r.Load.Load1, r.Load.Load5, r.Load.Load15)
	}
	if r.Memory.AvailableBytes != nil {
		fmt.Fprintf(&b, "MEM: %s free\n", sysinfo.FormatBytes(r.Memory.AvailableBytes))
	}
	if r.Disk != nil {
		fmt.Fprintf(&b, "DISK: %.0f%% used\n", r.Disk.UsedPercent)
	}
	if r.Uptime != nil {
		fmt.Fprintf(&b, "UP: %s\n", r.Uptime.Human)
	}

	if b.Len() == 0 {
		return ""
	}
	b.WriteByte('\n') // commit
	return b.String()
}
