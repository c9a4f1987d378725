// Package sysinfo builds a per-request snapshot of host facts: OS identity,
// CPU, memory, disk, uptime, load average, VCS revision. Every probe is
// independent and read-only; a probe that cannot read its source degrades to
// an absent value or documented default, never an error. The report must
// always render.
package sysinfo

import (
	"os"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
)

// Report is an immutable snapshot built once per request and discarded after
// the response. Request is non-nil only for private viewers; that is the
// sole access-control invariant of the service.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Timezone    string    `json:"timezone"`

	ViewerAddr  string      `json:"viewer_addr"`
	ViewerClass ViewerClass `json:"viewer_class"`

	OS             OSInfo  `json:"os"`
	RuntimeVersion string  `json:"runtime_version"`
	ServerSoftware string  `json:"server_software"`
	CPU            CPUInfo `json:"cpu"`
	Memory         MemInfo `json:"memory"`

	Disk        *DiskInfo   `json:"disk,omitempty"`
	Uptime      *UptimeInfo `json:"uptime,omitempty"`
	Load        *LoadInfo   `json:"load,omitempty"`
	VCSRevision string      `json:"vcs_revision,omitempty"`

	Request *RequestInfo `json:"request,omitempty"`
}

type OSInfo struct {
	KernelName    string `json:"kernel_name"`
	KernelRelease string `json:"kernel_release"`
	Architecture  string `json:"architecture"`
}

type CPUInfo struct {
	Model *string `json:"model,omitempty"`
	Cores int     `json:"cores"` // always >= 1
}

type MemInfo struct {
	TotalBytes     *uint64 `json:"total_bytes,omitempty"`
	AvailableBytes *uint64 `json:"available_bytes,omitempty"`
	FreeBytes      *uint64 `json:"free_bytes,omitempty"`
}

// DiskInfo fields are present or absent as a group: a failed filesystem
// query yields a nil *DiskInfo, never partial numbers.
type DiskInfo struct {
	TotalBytes  uint64  `json:"total_bytes"`
	FreeBytes   uint64  `json:"free_bytes"`
	UsedBytes   uint64  `json:"used_bytes"`
	UsedPercent float64 `json:"used_percent"`
}

type UptimeInfo struct {
	Seconds uint64 `json:"seconds"`
	Human   string `json:"human"`
}

type LoadInfo struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// RequestInfo is the advanced request metadata shown to LAN viewers only.
type RequestInfo struct {
	ServerName   string `json:"server_name"`
	DocumentRoot string `json:"document_root"`
	ScriptPath   string `json:"script_path"`
	HTTPSEnabled bool   `json:"https_enabled"`
}

// RequestMeta carries the untrusted request-context inputs the builder
// consumes. The HTTP layer fills it; tests fill it directly.
type RequestMeta struct {
	ForwardedFor   string
	RemoteAddr     string
	ServerName     string
	ScriptPath     string
	HTTPSIndicator string // HTTPS is enabled when non-empty and not "off"
}

// Collector gathers host facts. All system reads sit behind injectable
// funcs so tests can substitute fixture data for /proc sources and the
// gopsutil-backed queries.
type Collector struct {
	mountPath string
	docRoot   string

	readFile  func(path string) (string, error)
	diskUsage func(path string) (*disk.UsageStat, error)
	loadAvg   func() (*load.AvgStat, error)
	hostInfo  func() (*host.InfoStat, error)
	getenv    func(key string) string
}

// NewCollector creates a collector probing mountPath for disk usage and
// docRoot for VCS metadata.
func NewCollector(mountPath, docRoot string) *Collector {
	if mountPath == "" {
		mountPath = "/"
	}
	return &Collector{
		mountPath: mountPath,
		docRoot:   docRoot,
		readFile: func(path string) (string, error) {
			b, err := os.ReadFile(path)
			return string(b), err
		},
		diskUsage: disk.Usage,
		loadAvg:   load.Avg,
		hostInfo:  host.Info,
		getenv:    os.Getenv,
	}
}

// Build classifies the requester, runs every probe exactly once, and
// assembles the report. It never fails: probe failures become the documented
// absent/default values.
func (c *Collector) Build(meta RequestMeta) Report {
	now := time.Now()
	zone, _ := now.Zone()

	r := Report{
		GeneratedAt:    now,
		Timezone:       zone,
		ViewerAddr:     viewerAddr(meta),
		ViewerClass:    Classify(meta.ForwardedFor, meta.RemoteAddr),
		OS:             c.probeOS(),
		RuntimeVersion: runtime.Version(),
		ServerSoftware: c.probeServerSoftware(),
		CPU:            c.probeCPU(),
		Memory:         c.probeMemory(),
		Disk:           c.probeDisk(),
		Uptime:         c.probeUptime(),
		Load:           c.probeLoad(),
		VCSRevision:    gitRevision(c.docRoot, c.readFile),
	}

	if r.ViewerClass == ViewerPrivate {
		ind := strings.TrimSpace(meta.HTTPSIndicator)
		r.Request = &RequestInfo{
			ServerName:   meta.ServerName,
			DocumentRoot: c.docRoot,
			ScriptPath:   meta.ScriptPath,
			HTTPSEnabled: ind != "" && !strings.EqualFold(ind, "off"),
		}
	}
	return r
}

func viewerAddr(meta RequestMeta) string {
	if ff := strings.TrimSpace(meta.ForwardedFor); ff != "" {
		return strings.TrimSpace(strings.Split(ff, ",")[0])
	}
	return strings.TrimSpace(meta.RemoteAddr)
}

func (c *Collector) probeOS() OSInfo {
	o := OSInfo{KernelName: "unknown", KernelRelease: "unknown", Architecture: "unknown"}
	info, err := c.hostInfo()
	if err != nil || info == nil {
		return o
	}
	if info.OS != "" {
		o.KernelName = info.OS
	}
	if info.KernelVersion != "" {
		o.KernelRelease = info.KernelVersion
	}
	if info.KernelArch != "" {
		o.Architecture = info.KernelArch
	}
	return o
}

// Leading product token only; the full banner (version, build info) is never
// reported, to any viewer class.
var serverTokenRe = regexp.MustCompile(`^[A-Za-z0-9._-]+`)

func (c *Collector) probeServerSoftware() string {
	raw := strings.TrimSpace(c.getenv("SERVER_SOFTWARE"))
	if m := serverTokenRe.FindString(raw); m != "" {
		return m
	}
	return "unknown"
}

func (c *Collector) probeCPU() CPUInfo {
	out := CPUInfo{Cores: 1}
	raw, err := c.readFile("/proc/cpuinfo")
	if err != nil {
		return out
	}
	cores := 0
	for _, line := range strings.Split(raw, "\n") {
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		switch {
		case strings.EqualFold(key, "processor"):
			cores++
		case out.Model == nil && strings.EqualFold(key, "model name"):
			if v := strings.TrimSpace(val); v != "" {
				out.Model = &v
			}
		}
	}
	if cores > 0 {
		out.Cores = cores
	}
	return out
}

func (c *Collector) probeMemory() MemInfo {
	var mi MemInfo
	raw, err := c.readFile("/proc/meminfo")
	if err != nil {
		return mi
	}
	for _, line := range strings.Split(raw, "\n") {
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields := strings.Fields(val)
		if len(fields) == 0 {
			continue
		}
		kb, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		b := kb * 1024
		switch strings.TrimSpace(key) {
		case "MemTotal":
			mi.TotalBytes = &b
		case "MemAvailable":
			mi.AvailableBytes = &b
		case "MemFree":
			mi.FreeBytes = &b
		}
	}
	return mi
}

func (c *Collector) probeDisk() *DiskInfo {
	u, err := c.diskUsage(c.mountPath)
	if err != nil || u == nil || u.Total == 0 {
		return nil
	}
	di := &DiskInfo{
		TotalBytes: u.Total,
		FreeBytes:  u.Free,
	}
	if u.Free <= u.Total {
		di.UsedBytes = u.Total - u.Free
	}
	di.UsedPercent = float64(di.UsedBytes) / float64(di.TotalBytes) * 100
	return di
}

func (c *Collector) probeUptime() *UptimeInfo {
	raw, err := c.readFile("/proc/uptime")
	if err != nil {
		return nil
	}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || secs < 0 {
		return nil
	}
	whole := uint64(secs)
	return &UptimeInfo{Seconds: whole, Human: formatUptime(whole)}
}

func (c *Collector) probeLoad() *LoadInfo {
	avg, err := c.loadAvg()
	if err != nil || avg == nil {
		return nil
	}
	return &LoadInfo{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}
}
