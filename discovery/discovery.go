// Package discovery lets bridge daemons announce themselves so control
// clients can find a running instance without hardcoding an address. It
// is entirely optional: a nil Registry disables it and the daemon serves
// on its configured host:port alone.
package discovery

import (
	"fmt"
	"sync"
)

// ServiceName is the key every bridge daemon registers under.
const ServiceName = "livebridge"

// Instance describes one announced bridge daemon.
type Instance struct {
	Addr    string `json:"addr"`
	Version string `json:"version,omitempty"`
}

// Registry announces and resolves bridge daemon instances.
type Registry interface {
	Register(instance Instance, ttlSeconds int64) error
	Deregister(addr string) error
	Discover() ([]Instance, error)
	Watch() <-chan []Instance
}

// Picker cycles through discovered instances round-robin, so several
// control clients spread across daemons when more than one is running.
type Picker struct {
	mu   sync.Mutex
	next int
}

// Pick returns one instance from the list, advancing the rotation.
func (p *Picker) Pick(instances []Instance) (Instance, error) {
	if len(instances) == 0 {
		return Instance{}, fmt.Errorf("no %s instances registered", ServiceName)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	inst := instances[p.next%len(instances)]
	p.next++
	return inst, nil
}

// Resolve discovers the current instances and picks one.
func Resolve(reg Registry, picker *Picker) (string, error) {
	instances, err := reg.Discover()
	if err != nil {
		return "", fmt.Errorf("discover %s: %w", ServiceName, err)
	}
	inst, err := picker.Pick(instances)
	if err != nil {
		return "", err
	}
	return inst.Addr, nil
}
