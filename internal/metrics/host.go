// Package metrics reports the platform of the machine the host runs on.
package metrics

import (
	"context"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostInfo describes the host machine.
type HostInfo struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Arch            string `json:"arch"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	KernelVersion   string `json:"kernel_version"`
	Uptime          uint64 `json:"uptime"` // seconds
	MemoryTotal     uint64 `json:"memory_total"`
	CPUCores        int    `json:"cpu_cores"`
}

// GetHostInfo collects host information. Fields gopsutil cannot read on this
// platform stay zero; only a canceled context is an error.
func GetHostInfo(ctx context.Context) (*HostInfo, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	info := &HostInfo{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
	var wg sync.WaitGroup
	var mu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		h, err := host.InfoWithContext(ctx)
		if err != nil {
			return
		}
		mu.Lock()
		info.Hostname = h.Hostname
		info.Platform = h.Platform
		info.PlatformVersion = h.PlatformVersion
		info.KernelVersion = h.KernelVersion
		info.Uptime = h.Uptime
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		cores, err := cpu.CountsWithContext(ctx, true)
		if err == nil {
			mu.Lock()
			info.CPUCores = cores
			mu.Unlock()
		}
		vmem, err := mem.VirtualMemoryWithContext(ctx)
		if err == nil {
			mu.Lock()
			info.MemoryTotal = vmem.Total
			mu.Unlock()
		}
	}()

	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return info, nil
}
