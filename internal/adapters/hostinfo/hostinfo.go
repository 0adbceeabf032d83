// Package hostinfo collects facts about the machine for the session log and banner.
package hostinfo

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/revelare/toolbelt/internal/ports"
)

// Facts describes the host a session runs on.
type Facts struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	Arch            string `json:"arch"`
}

// Collect reads host facts. On error the returned Facts still carry the
// operating system and architecture the binary was built for.
func Collect(ctx context.Context) (Facts, error) {
	facts := Facts{OS: runtime.GOOS, Arch: runtime.GOARCH}

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return facts, fmt.Errorf("failed to read host info: %w", err)
	}

	facts.Hostname = info.Hostname
	if info.OS != "" {
		facts.OS = info.OS
	}
	facts.Platform = info.Platform
	facts.PlatformVersion = info.PlatformVersion
	if info.KernelArch != "" {
		facts.Arch = info.KernelArch
	}
	return facts, nil
}

// Describe returns a one-line description such as "Microsoft Windows 11 Pro 10.0.22631 (x86_64)".
func (f Facts) Describe() string {
	parts := make([]string, 0, 2)
	if f.Platform != "" {
		parts = append(parts, f.Platform)
	} else {
		parts = append(parts, f.OS)
	}
	if f.PlatformVersion != "" {
		parts = append(parts, f.PlatformVersion)
	}
	return fmt.Sprintf("%s (%s)", strings.Join(parts, " "), f.Arch)
}

// Fields returns the facts as log fields.
func (f Facts) Fields() []ports.Field {
	return []ports.Field{
		ports.F("hostname", f.Hostname),
		ports.F("os", f.OS),
		ports.F("platform", f.Platform),
		ports.F("platform_version", f.PlatformVersion),
		ports.F("arch", f.Arch),
	}
}
