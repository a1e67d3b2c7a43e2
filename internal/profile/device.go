package profile

import (
	"fmt"
	"math"
	"runtime"

	"github.com/shirou/gopsutil/v3/mem"
)

// Capability is what the device prober reports.
type Capability struct {
	MemoryGB float64 // Approximate RAM in GB, capped at 8
	Cores    int
}

// Prober inspects the host to pick an initial preset.
type Prober interface {
	Probe() (Capability, error)
}

// ProberFunc adapts a function to Prober.
type ProberFunc func() (Capability, error)

func (f ProberFunc) Probe() (Capability, error) { return f() }

const maxReportedMemoryGB = 8

// SystemProber reads total memory through gopsutil and the CPU count from
// the runtime.
type SystemProber struct{}

// Probe implements Prober.
func (SystemProber) Probe() (Capability, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Capability{}, fmt.Errorf("probe memory: %w", err)
	}
	gb := float64(vm.Total) / (1 << 30)
	// Round down to a power of two the way deviceMemory does.
	if gb >= 1 {
		gb = math.Pow(2, math.Floor(math.Log2(gb)))
	}
	if gb > maxReportedMemoryGB {
		gb = maxReportedMemoryGB
	}
	return Capability{MemoryGB: gb, Cores: runtime.NumCPU()}, nil
}

// Tier picks a preset key for a capability: low memory or few cores is
// power saving, a middle tier is balanced, anything better is high
// performance.
func Tier(c Capability) string {
	memGB := c.MemoryGB
	if memGB <= 0 {
		memGB = 2
	}
	cores := c.Cores
	if cores <= 0 {
		cores = 2
	}
	switch {
	case memGB <= 2 || cores <= 4:
		return LowEnd
	case memGB <= 4 || cores <= 6:
		return Balanced
	default:
		return HighPerformance
	}
}

// Detect probes the device and returns the matching preset. A failing or
// panicking prober yields the balanced preset.
func Detect(p Prober) (key string) {
	if p == nil {
		return Balanced
	}
	defer func() {
		if recover() != nil {
			key = Balanced
		}
	}()
	c, err := p.Probe()
	if err != nil {
		return Balanced
	}
	return Tier(c)
}
