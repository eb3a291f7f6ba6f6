// Package sysinfo reports host hardware used to size the worker pool.
package sysinfo

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Info describes the machine a render runs on
type Info struct {
	CPUModel      string  `json:"cpuModel"`
	LogicalCores  int     `json:"logicalCores"`
	PhysicalCores int     `json:"physicalCores"`
	ClockGHz      float64 `json:"clockGHz"`
	TotalRAMGB    uint64  `json:"totalRamGB"`
}

// String formats the info for a log line
func (i Info) String() string {
	return fmt.Sprintf("%s (%d physical / %d logical cores @ %.2f GHz, %d GB RAM)",
		i.CPUModel, i.PhysicalCores, i.LogicalCores, i.ClockGHz, i.TotalRAMGB)
}

// Detect queries the host. Fields that cannot be read fall back to what the
// Go runtime knows; the error reports the first failed query.
func Detect() (Info, error) {
	info := Info{
		CPUModel:      "unknown",
		LogicalCores:  runtime.NumCPU(),
		PhysicalCores: runtime.NumCPU(),
	}

	var firstErr error
	record := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if cpuInfo, err := cpu.Info(); err != nil {
		record(err)
	} else if len(cpuInfo) > 0 {
		if cpuInfo[0].ModelName != "" {
			info.CPUModel = cpuInfo[0].ModelName
		}
		info.ClockGHz = cpuInfo[0].Mhz / 1000 // Convert MHz to GHz
	}

	if n, err := cpu.Counts(true); err != nil {
		record(err)
	} else if n > 0 {
		info.LogicalCores = n
	}

	if n, err := cpu.Counts(false); err != nil {
		record(err)
	} else if n > 0 {
		info.PhysicalCores = n
	}

	if memInfo, err := mem.VirtualMemory(); err != nil {
		record(err)
	} else {
		info.TotalRAMGB = memInfo.Total / (1024 * 1024 * 1024) // Convert bytes to GB
	}

	return info, firstErr
}

// DefaultWorkers returns the number of render workers to use when the caller
// does not choose: one per physical core, or the runtime CPU count if the
// core count is unavailable
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
