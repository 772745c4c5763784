package monitoring

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemStats is a point-in-time snapshot of host and process health,
// served on the admin monitoring endpoint.
type SystemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemUsedMB     float64 `json:"mem_used_mb"`
	MemTotalMB    float64 `json:"mem_total_mb"`
	DiskUsedGB    float64 `json:"disk_used_gb"`
	DiskTotalGB   float64 `json:"disk_total_gb"`
	Goroutines    int     `json:"goroutines"`
	HeapAllocMB   float64 `json:"heap_alloc_mb"`
	NumGC         uint32  `json:"num_gc"`
	CollectedAt   string  `json:"collected_at"`
	UptimeSeconds int64   `json:"uptime_seconds"`
}

var startedAt = time.Now()

// CollectSystemStats gathers a system snapshot. Individual probe
// failures leave their fields zero rather than failing the whole call.
func CollectSystemStats() SystemStats {
	stats := SystemStats{
		Goroutines:    runtime.NumGoroutine(),
		CollectedAt:   time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(startedAt).Seconds()),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemUsedMB = float64(vm.Used) / 1024 / 1024
		stats.MemTotalMB = float64(vm.Total) / 1024 / 1024
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskUsedGB = float64(du.Used) / 1024 / 1024 / 1024
		stats.DiskTotalGB = float64(du.Total) / 1024 / 1024 / 1024
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats.HeapAllocMB = float64(memStats.Alloc) / 1024 / 1024
	stats.NumGC = memStats.NumGC

	return stats
}
