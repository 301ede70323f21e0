package storage

import (
	"fmt"
	"sync"

	"github.com/shashiranjanraj/vitrine/config"
)

// Manager holds the configured disks and knows which one is the default.
type Manager struct {
	mu      sync.RWMutex
	disks   map[string]Disk
	defName string
}

// NewManager boots the disks from cfg. The local disk is always available;
// the s3 disk is added only when a bucket is configured. An S3 boot failure
// is returned so the caller can decide whether to warn or abort.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		disks:   map[string]Disk{},
		defName: cfg.StorageDisk,
	}
	m.disks["local"] = newLocalDisk(cfg.StorageLocalRoot, cfg.StorageURL)

	if cfg.S3Bucket != "" {
		d, err := newS3Disk(cfg)
		if err != nil {
			return m, err
		}
		m.disks["s3"] = d
	}

	if _, ok := m.disks[m.defName]; !ok {
		m.defName = "local"
	}
	return m, nil
}

// Disk returns the default disk.
func (m *Manager) Disk() Disk {
	return m.Use(m.defName)
}

// Use returns the named disk; panics on an unconfigured name, which is a
// wiring bug rather than a runtime condition.
func (m *Manager) Use(name string) Disk {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.disks[name]
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// Register plugs in a custom Disk, mainly for tests.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	m.disks[name] = d
	m.mu.Unlock()
}
