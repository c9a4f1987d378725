package httpserver

import (
	"fmt"

	"github.com/ej8899/homelab-web-server/internal/sysinfo"
)

// reportView pre-formats every optional field so the template stays free of
// nil checks. Absent facts render as "n/a".
type reportView struct {
	GeneratedAt    string
	ViewerAddr     string
	ViewerClass    string
	Kernel         string
	RuntimeVersion string
	ServerSoftware string
	CPUModel       string
	CPUCores       int
	MemTotal       string
	MemAvailable   string
	MemFree        string
	DiskTotal      string
	DiskFree       string
	DiskUsed       string
	DiskPercent    string
	Uptime         string
	Load           string
	VCSRevision    string
	Request        *sysinfo.RequestInfo
}

func newReportView(r sysinfo.Report) reportView {
	v := reportView{
		GeneratedAt:    r.GeneratedAt.Format("2006-01-02 15:04:05") + " " + r.Timezone,
		ViewerAddr:     r.ViewerAddr,
		ViewerClass:    string(r.ViewerClass),
		Kernel:         fmt.Sprintf("%s %s (%s)", r.OS.KernelName, r.OS.KernelRelease, r.OS.Architecture),
		RuntimeVersion: r.RuntimeVersion,
		ServerSoftware: r.ServerSoftware,
		CPUModel:       "n/a",
		CPUCores:       r.CPU.Cores,
		MemTotal:       sysinfo.FormatBytes(r.Memory.TotalBytes),
		MemAvailable:   sysinfo.FormatBytes(r.Memory.AvailableBytes),
		MemFree:        sysinfo.FormatBytes(r.Memory.FreeBytes),
		DiskTotal:      "n/a",
		DiskFree:       "n/a",
		DiskUsed:       "n/a",
		DiskPercent:    "n/a",
		Uptime:         "n/a",
		Load:           "n/a",
		VCSRevision:    r.VCSRevision,
		Request:        r.Request,
	}

	if r.CPU.Model != nil {
		v.CPUModel = *r.CPU.Model
	}
	if d := r.Disk; d != nil {
		v.DiskTotal = sysinfo.FormatBytes(&d.TotalBytes)
		v.DiskFree = sysinfo.FormatBytes(&d.FreeBytes)
		v.DiskUsed = sysinfo.FormatBytes(&d.UsedBytes)
		v.DiskPercent = fmt.Sprintf("%.1f%%", d.UsedPercent)
	}
	if r.Uptime != nil {
		v.Uptime = r.Uptime.Human
	}
	if l := r.Load; l != nil {
		v.Load = fmt.Sprintf("%.2f / %.2f / %.2f", l.Load1, l.Load5, l.Load15)
	}
	if v.VCSRevision == "" {
		v.VCSRevision = "n/a"
	}
	return v
}
