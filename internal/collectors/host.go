package collectors

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// HostFacts identifies the host the report was collected on.
type HostFacts struct {
	Hostname        string `json:"hostname" yaml:"hostname"`
	OSType          string `json:"osType" yaml:"osType"`
	Platform        string `json:"platform,omitempty" yaml:"platform,omitempty"`
	PlatformVersion string `json:"platformVersion,omitempty" yaml:"platformVersion,omitempty"`
	KernelVersion   string `json:"kernelVersion,omitempty" yaml:"kernelVersion,omitempty"`
	Architecture    string `json:"architecture" yaml:"architecture"`
}

// HostCollector collects identifying host facts
type HostCollector struct{}

func NewHostCollector() *HostCollector {
	return &HostCollector{}
}

func (c *HostCollector) Collect() (*HostFacts, error) {
	facts := &HostFacts{
		Architecture: runtime.GOARCH,
	}

	info, err := host.Info()
	if err != nil {
		return facts, err
	}

	facts.Hostname = info.Hostname
	facts.OSType = info.OS
	facts.Platform = info.Platform
	facts.PlatformVersion = info.PlatformVersion
	facts.KernelVersion = info.KernelVersion
	if info.KernelArch != "" {
		facts.Architecture = info.KernelArch
	}

	return facts, nil
}
