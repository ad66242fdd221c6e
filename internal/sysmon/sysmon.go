// Package sysmon samples system-wide and per-process resource usage while a
// cross-check runs. The dashboard plots the samples as sparklines.
package sysmon

import (
	"os"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // system-wide, 0.0 .. 100.0
	MemPercent float64 // system-wide, 0.0 .. 100.0
	ProcessRSS uint64  // resident set of this process in bytes
	NumThreads int32   // OS threads of this process
}

// Sampler collects Stats. The zero value samples system-wide figures only.
type Sampler struct {
	proc *process.Process
}

// NewSampler returns a sampler that also reports on the current process.
// Process figures stay zero if the process cannot be inspected.
func NewSampler() *Sampler {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return &Sampler{}
	}
	return &Sampler{proc: p}
}

// Sample collects a single snapshot. CPU uses interval=0 (delta since the
// last call). Figures that cannot be read are left at zero.
func (s *Sampler) Sample() Stats {
	var st Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		st.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		st.MemPercent = vmem.UsedPercent
	}
	if s != nil && s.proc != nil {
		if mi, err := s.proc.MemoryInfo(); err == nil && mi != nil {
			st.ProcessRSS = mi.RSS
		}
		if n, err := s.proc.NumThreads(); err == nil {
			st.NumThreads = n
		}
	}
	return st
}

// Sample collects a system-wide snapshot without process figures.
func Sample() Stats {
	var s *Sampler
	return s.Sample()
}
