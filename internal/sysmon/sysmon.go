// Package sysmon provides system-wide and per-process resource usage
// sampling for the status endpoint.
package sysmon

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	// CPUPercent is the system-wide CPU usage, 0.0 .. 100.0.
	CPUPercent float64 `json:"cpu_percent"`
	// MemPercent is the system-wide memory usage, 0.0 .. 100.0.
	MemPercent float64 `json:"mem_percent"`
	// ProcessRSS is the resident set size of this process in bytes.
	ProcessRSS uint64 `json:"process_rss_bytes"`
	// Uptime is how long this process has been running.
	Uptime time.Duration `json:"uptime_ns"`
}

var startTime = time.Now()

// Sample collects a single resource usage snapshot.
// CPU uses interval=0 (delta since last call). Fields for which sampling
// fails are left at their zero values rather than propagating errors; the
// status endpoint is best-effort by design.
func Sample() Stats {
	s := Stats{Uptime: time.Since(startTime)}

	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}

	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err == nil {
		if minfo, err := proc.MemoryInfo(); err == nil && minfo != nil {
			s.ProcessRSS = minfo.RSS
		}
	}

	return s
}
