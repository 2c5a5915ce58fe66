package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

var startTime = time.Now()

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	diskPath string
}

// NewHealthHandler creates a new health handler. diskPath selects the
// filesystem reported by Stats.
func NewHealthHandler(diskPath string) *HealthHandler {
	if diskPath == "" {
		diskPath = "/"
	}
	return &HealthHandler{
		diskPath: diskPath,
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Live handles GET /api/health - liveness probe.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{
		Status:  "OK",
		Message: "Server is running",
	})
}

// SystemStats contains process and host resource statistics.
type SystemStats struct {
	Uptime        int64  `json:"uptime_seconds"`
	UptimeHuman   string `json:"uptime_human"`
	MemAllocMB    int64  `json:"mem_alloc_mb"`
	MemSysMB      int64  `json:"mem_sys_mb"`
	MemHeapMB     int64  `json:"mem_heap_mb"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`

	ProcessRSSMB int64 `json:"process_rss_mb,omitempty"`

	Hostname       string  `json:"hostname,omitempty"`
	OS             string  `json:"os,omitempty"`
	Platform       string  `json:"platform,omitempty"`
	HostUptime     uint64  `json:"host_uptime_seconds,omitempty"`
	HostMemTotalMB uint64  `json:"host_mem_total_mb,omitempty"`
	HostMemUsedPct float64 `json:"host_mem_used_pct,omitempty"`

	DiskPath       string  `json:"disk_path"`
	DiskUsedBytes  uint64  `json:"disk_used_bytes"`
	DiskFreeBytes  uint64  `json:"disk_free_bytes"`
	DiskTotalBytes uint64  `json:"disk_total_bytes"`
	DiskUsedPct    float64 `json:"disk_used_pct"`
}

// Stats handles GET /api/stats - system statistics. Host figures that cannot
// be read are left at zero.
func (h *HealthHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(startTime)

	stats := SystemStats{
		Uptime:        int64(uptime.Seconds()),
		UptimeHuman:   formatUptime(uptime),
		MemAllocMB:    int64(m.Alloc / 1024 / 1024),
		MemSysMB:      int64(m.Sys / 1024 / 1024),
		MemHeapMB:     int64(m.HeapAlloc / 1024 / 1024),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		DiskPath:      h.diskPath,
	}

	if proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if memInfo, err := proc.MemoryInfoWithContext(ctx); err == nil {
			stats.ProcessRSSMB = int64(memInfo.RSS / 1024 / 1024)
		}
	}

	if info, err := host.InfoWithContext(ctx); err == nil {
		stats.Hostname = info.Hostname
		stats.OS = info.OS
		stats.Platform = info.Platform
		stats.HostUptime = info.Uptime
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.HostMemTotalMB = vm.Total / 1024 / 1024
		stats.HostMemUsedPct = vm.UsedPercent
	}

	if usage, err := disk.UsageWithContext(ctx, h.diskPath); err == nil {
		stats.DiskTotalBytes = usage.Total
		stats.DiskFreeBytes = usage.Free
		stats.DiskUsedBytes = usage.Used
		stats.DiskUsedPct = usage.UsedPercent
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(stats)
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
