package mocks

import (
	"context"
	"sync"

	"github.com/revelare/toolbelt/internal/ports"
)

// PresenceChecker is a test double for ports.PresenceChecker backed by a set of
// executable names.
type PresenceChecker struct {
	mu      sync.Mutex
	present map[string]bool
	probes  []string
}

// NewPresenceChecker creates a checker reporting names as present.
func NewPresenceChecker(names ...string) *PresenceChecker {
	p := &PresenceChecker{present: make(map[string]bool)}
	for _, n := range names {
		p.present[n] = true
	}
	return p
}

// Add marks names as present.
func (p *PresenceChecker) Add(names ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, n := range names {
		p.present[n] = true
	}
}

// Exists records the probe and reports whether name was added.
func (p *PresenceChecker) Exists(_ context.Context, name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probes = append(p.probes, name)
	return p.present[name]
}

// Probes returns every name that was probed, in order.
func (p *PresenceChecker) Probes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.probes))
	copy(out, p.probes)
	return out
}

var _ ports.PresenceChecker = (*PresenceChecker)(nil)
