// Package monitor surfaces host/process stats for /api/monitoring,
// grounded on the teacher's api-coordinator/internal/monitoring package
// (cpu.Percent/mem.VirtualMemory/host.SensorsTemperatures via gopsutil).
// This is an ambient observability endpoint, not part of the spec's
// required HTTP surface (§10 DOMAIN STACK), the same role the teacher's
// own monitoring package plays alongside its required API.
package monitor

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Status is the snapshot returned by Collect, shaped like the teacher's
// MonitoringStatus.
type Status struct {
	CPUPercent     float64            `json:"cpuPercent"`
	MemoryUsedPct  float64            `json:"memoryUsedPercent"`
	MemoryUsedMB   uint64             `json:"memoryUsedMb"`
	MemoryTotalMB  uint64             `json:"memoryTotalMb"`
	Temperatures   map[string]float64 `json:"temperatures,omitempty"`
	UptimeSeconds  uint64             `json:"uptimeSeconds"`
}

// Service is the capability the HTTP handler depends on, mirroring the
// teacher's monitoringService interface behind its Handler.
type Service interface {
	Collect() (Status, error)
}

type gopsutilService struct{}

// NewService returns the default gopsutil-backed Service.
func NewService() Service { return gopsutilService{} }

func (gopsutilService) Collect() (Status, error) {
	var st Status

	percents, err := cpu.Percent(200*time.Millisecond, false)
	if err == nil && len(percents) > 0 {
		st.CPUPercent = percents[0]
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		st.MemoryUsedPct = vm.UsedPercent
		st.MemoryUsedMB = vm.Used / (1024 * 1024)
		st.MemoryTotalMB = vm.Total / (1024 * 1024)
	}

	if temps, err := host.SensorsTemperatures(); err == nil {
		st.Temperatures = make(map[string]float64, len(temps))
		for _, t := range temps {
			st.Temperatures[t.SensorKey] = t.Temperature
		}
	}

	if info, err := host.Info(); err == nil {
		st.UptimeSeconds = info.Uptime
	}

	return st, nil
}
