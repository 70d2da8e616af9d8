// Package sysmon samples host CPU and memory load. The verbose console
// header and the dashboard status line both show a snapshot, so readers can
// judge whether a slow run was the algorithm or a busy machine.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one host-wide load snapshot. Percentages are 0..100.
type Stats struct {
	CPUPercent float64
	MemPercent float64
}

// Sample takes a snapshot of host CPU and memory utilization. Sampling is
// best-effort: a probe that fails leaves its field at zero rather than
// failing the caller, since load display is never worth aborting a run.
func Sample() Stats {
	return Stats{
		CPUPercent: cpuPercent(),
		MemPercent: memPercent(),
	}
}

// cpuPercent reports overall CPU utilization since the previous call
// (interval 0 measures the delta, not a blocking window).
func cpuPercent() float64 {
	pcts, err := cpu.Percent(0, false)
	if err != nil || len(pcts) == 0 {
		return 0
	}
	return pcts[0]
}

func memPercent() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil {
		return 0
	}
	return vm.UsedPercent
}
